package state

// Entry is one selectable port.
type Entry struct {
	ID   string
	Name string
}

// PortList is the ordered, id-keyed option list behind a port selector. It
// behaves like a single-choice list control: the first entry added to an
// empty list becomes selected, and removing the selected entry falls back to
// the first remaining one. The selection is therefore always a present id, or
// empty when the list is.
type PortList struct {
	entries  []Entry
	selected int
}

// NewPortList returns an empty list with nothing selected.
func NewPortList() *PortList {
	return &PortList{selected: -1}
}

// Entries returns a copy of the entries in display order.
func (l *PortList) Entries() []Entry {
	if len(l.entries) == 0 {
		return nil
	}
	dup := make([]Entry, len(l.entries))
	copy(dup, l.entries)
	return dup
}

// Len reports the number of entries.
func (l *PortList) Len() int {
	return len(l.entries)
}

// Index returns the position of id, or -1.
func (l *PortList) Index(id string) int {
	for i, e := range l.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Selected returns the chosen id, or "" when the list is empty.
func (l *PortList) Selected() string {
	if l.selected < 0 || l.selected >= len(l.entries) {
		return ""
	}
	return l.entries[l.selected].ID
}

// SelectedEntry returns the chosen entry.
func (l *PortList) SelectedEntry() (Entry, bool) {
	if l.selected < 0 || l.selected >= len(l.entries) {
		return Entry{}, false
	}
	return l.entries[l.selected], true
}

// SelectedIndex returns the chosen position, or -1.
func (l *PortList) SelectedIndex() int {
	return l.selected
}

// Select chooses id. Unknown ids leave the selection untouched.
func (l *PortList) Select(id string) bool {
	idx := l.Index(id)
	if idx < 0 || idx == l.selected {
		return false
	}
	l.selected = idx
	return true
}

// Cycle moves the selection by delta, wrapping at either end.
func (l *PortList) Cycle(delta int) bool {
	n := len(l.entries)
	if n < 2 || delta == 0 {
		return false
	}
	next := ((l.selected+delta)%n + n) % n
	if next == l.selected {
		return false
	}
	l.selected = next
	return true
}

func (l *PortList) append(id, name string) {
	l.entries = append(l.entries, Entry{ID: id, Name: name})
	if l.selected < 0 {
		l.selected = 0
	}
}

func (l *PortList) rename(idx int, name string) bool {
	if l.entries[idx].Name == name {
		return false
	}
	l.entries[idx].Name = name
	return true
}

func (l *PortList) removeAt(idx int) {
	l.entries = append(l.entries[:idx], l.entries[idx+1:]...)
	switch {
	case len(l.entries) == 0:
		l.selected = -1
	case idx == l.selected:
		l.selected = 0
	case idx < l.selected:
		l.selected--
	}
}
