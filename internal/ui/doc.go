// Package ui contains the Bubble Tea program that powers the SysEx shell.
// The Model focuses on message orchestration while dedicated packages own the
// domain: internal/shell keeps scrollback and history, internal/ui/command
// interprets submitted lines, and internal/session binds the chosen ports.
//
// Message flow:
//   - Init requests MIDI access through the configured Requester. The result
//     arrives as an accessMsg; its handler attaches or fails the session,
//     prints the startup warnings and arms the two event pumps.
//   - waitForTransportEvent forwards hot-plug changes from the access. Each
//     change is routed through session.HandleStateChange, which updates the
//     selectors and rebinds ports as a side effect.
//   - Incoming MIDI is queued by the session's receive hook on a buffered
//     channel (never blocking the driver) and drained by waitForReceived.
//     Stale deliveries from a previous binding and messages rejected by the
//     display filter are dropped before they reach the scrollback.
//   - Every other tea.Msg is routed through a typed handler registry keyed by
//     reflect.Type, so key presses and window resizes each get a focused
//     function.
//
// All model state, including selector changes, is mutated on the event loop.
package ui
