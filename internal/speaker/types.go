package speaker

import (
	"slices"
	"strings"
)

// Device is a mounted removable-storage unit reported by /getdevice.
type Device struct {
	Name string `json:"name"`
}

// Song is an offline media file reported by /getOfflineSong/{device}.
type Song struct {
	Name string `json:"name"`
}

// DeviceListResponse mirrors /getdevice.
type DeviceListResponse struct {
	Status []Device `json:"status"`
}

// SongListResponse mirrors /getOfflineSong/{device}.
type SongListResponse struct {
	Status []Song `json:"status"`
}

// StreamRequest is the PATCH /playyoutube body.
type StreamRequest struct {
	Link string `json:"link"`
}

// Transport actions understood by the control server.
const (
	ActionPause             = "pause"
	ActionResume            = "resume"
	ActionStop              = "stop"
	ActionNext              = "next"
	ActionPrevious          = "previous"
	ActionRestart           = "restart"
	ActionShuffle           = "shuffle"
	ActionStatus            = "status"
	ActionSaveSoftVolume    = "save_softvolume"
	ActionRestoreSoftVolume = "restore_softvolume"
	ActionSaveHardVolume    = "save_hardvolume"
	ActionRestoreHardVolume = "restore_hardvolume"
)

// Reset sub-actions accepted under /reset_smart_speaker/.
const (
	ResetHard        = "hard"
	ResetSoft        = "soft"
	ResetAccessPoint = "AP"
)

// KnownActions lists the transport actions in display order.
func KnownActions() []string {
	return []string{
		ActionPause, ActionResume, ActionStop, ActionNext, ActionPrevious,
		ActionRestart, ActionShuffle, ActionStatus,
		ActionSaveSoftVolume, ActionRestoreSoftVolume,
		ActionSaveHardVolume, ActionRestoreHardVolume,
	}
}

// QueryActions lists the action forms whose argument travels as a query
// value, e.g. "play?ytb=" followed by a video id.
func QueryActions() []string {
	return []string{"play?ytb=", "play?mrl=", "say?mrl=", "beep?mrl="}
}

// IsKnownAction reports whether action is a transport action or one of the
// query forms with its value filled in.
func IsKnownAction(action string) bool {
	if slices.Contains(KnownActions(), action) {
		return true
	}
	for _, prefix := range QueryActions() {
		if strings.HasPrefix(action, prefix) {
			return true
		}
	}
	return false
}

// KnownResets lists the reset sub-actions.
func KnownResets() []string {
	return []string{ResetHard, ResetSoft, ResetAccessPoint}
}
