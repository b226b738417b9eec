// Package state holds the session state shared by the dispatch layer, the
// poller and the UI.
//
// # Overview
//
// A [Store] keeps the two client-side caches (the mounted device list and the
// song catalog of one device), the currently selected device, and a record of
// the last failed call. Nothing is persisted; the store lives as long as the
// process.
//
// # Concurrency Model
//
// The Store uses a readers-writer lock. Writers are the control package
// (list loads, command outcomes) and the poller; readers are the UI and the
// playback trigger. The lock is held only while copying, never during network
// I/O.
//
// # Request Tokens
//
// Each list has a monotonically increasing [Token]. A caller takes a token
// before it issues a request and hands it back with the response:
//
//	tok := store.BeginDevices()
//	devices, _, err := client.FetchDevices(ctx)
//	if err == nil {
//		store.ApplyDevices(tok, devices) // false if a newer request was issued
//	}
//
// A response carrying anything but the latest token is discarded, so the most
// recently issued request wins even when responses arrive out of order.
//
// # Writes Are Full Replacements
//
// ApplyDevices and ApplyCatalog replace their list wholesale. There is no
// incremental diff. BeginCatalog can optionally empty the catalog before the
// request is sent.
//
// # Selection
//
// The selected device is owned by the store and changes only through
// [Store.Select] or as a consequence of ApplyDevices:
//
//   - still listed: kept
//   - no longer listed: first device of the new list
//   - empty list: no selection
//
// # Error Handling
//
// Failed calls never clear cached data. Record(err) keeps the lists, stores
// the error and increments ConsecutiveFailures. Any success resets the
// counter. [Snapshot.IsOffline] reports two or more failures in a row.
package state
