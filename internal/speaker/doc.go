// Package speaker provides an HTTP client for the smart speaker control server.
//
// # Overview
//
// The control server runs on the speaker appliance and exposes a small set of
// endpoints for transport commands, volume, mounted storage devices and their
// offline song catalogs, and streaming playback of a link.
//
// # Architecture
//
//   - client.go: HTTP client, path building and request/response handling
//   - types.go: Payloads mirroring the control server schema and the known
//     action names
//
// # Client Usage
//
//	client, err := speaker.NewClient("192.168.4.1:7070", 0)
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	devices, _, err := client.FetchDevices(ctx)
//	if err != nil {
//		log.Printf("device fetch failed: %v", err)
//	}
//
// # API Endpoints
//
//   - POST /{action}: transport command (pause, resume, next, ...)
//   - POST /reset_smart_speaker/{sub}: hard, soft or AP reset
//   - POST /volume/{level}: absolute level or up/down
//   - GET /getdevice: {"status": [{"name": ...}]}
//   - GET /getOfflineSong/{device}: {"status": [{"name": ...}]}
//   - PUT /playOfflineSong/{device}/{song}: play a stored file
//   - PATCH /playyoutube: {"link": ...} stream a networked link
//
// Command responses are drained and ignored. List responses are decoded into
// typed slices.
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation
//   - Set a User-Agent identifying speakerctl
//   - Carry an X-Request-ID (uuid v4) which is also returned in [Call]
//
// # Error Handling
//
// Errors wrap the underlying cause:
//   - "execute request: ..." for transport failures
//   - [ErrUnexpectedStatus] for HTTP status >= 400
//   - [ErrDecode] for bodies that are not the expected JSON
//
// The client never retries. Deciding what to do with a failure belongs to the
// caller; the control package logs and drops them.
package speaker
