// Package control is the device and media dispatch layer of speakerctl.
//
// # Overview
//
// A [Controller] turns operator actions into control server requests and
// keeps the session [state.Store] in step with the server. It has four parts:
//
//   - Command dispatcher: SendAction, SendReset, SetVolume, PlayStream
//   - Device registry: RefreshDevices, SelectDevice
//   - Media catalog: LoadCatalog, Controls
//   - Playback trigger: PlaySong
//
// # Best-Effort Control Plane
//
// Commands are fire-and-forget. Each call sends exactly one request on its
// own goroutine and returns immediately. Nothing is returned to the caller,
// failures are logged and never retried. The speaker itself is the source of
// truth for playback state; the client does not mirror it.
//
// List loads block the calling goroutine (the UI runs them as commands) and
// write their result to the store. A failed load is logged and leaves the
// cached list as it was. Responses to superseded requests are discarded.
//
// A new catalog is staged and swapped in only when its load succeeds. The
// older behaviour, where the song area is emptied as soon as a load is
// issued and stays empty if the load fails, is opt-in: build the controller
// with [Options.EagerClear] (config key eager_clear = true).
//
// The only error surfaced to callers is [ErrNoDeviceSelected] from PlaySong,
// returned before any request is sent.
//
// # Observing Outcomes
//
// Callers that want to know how a call went set [Options.Observer]. It
// receives one [Result] per remote call, after logging. The CLI uses it to
// turn a failed one-shot command into a non-zero exit status; the TUI uses it
// for its status line.
//
//	ctrl := control.New(control.Options{
//		Client:   client,
//		Store:    store,
//		Logger:   logger,
//		Observer: func(r control.Result) { results <- r },
//	})
//	ctrl.SendAction(ctx, speaker.ActionPause)
//	ctrl.Wait()
package control
