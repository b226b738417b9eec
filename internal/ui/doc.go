// Package ui implements the speakerctl terminal interface on Bubble Tea.
//
// The main view has two panes. The device pane lists the mounted storage
// devices reported by the control server and marks the selected one. The song
// pane lists the catalog of the last loaded device. Enter on a device selects
// it and loads its catalog; enter on a song plays it on whichever device is
// selected at that moment.
//
// Transport and volume keys dispatch through the controller and return
// immediately. Outcomes reach the model through the Results channel and are
// shown in the status line. A ticker re-reads the session store so refreshes
// started elsewhere (the poller) show up without input.
//
// Press L for the diagnostics view, which tails the client's log file.
package ui
