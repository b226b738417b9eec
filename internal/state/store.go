package state

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/five82/speakerctl/internal/speaker"
)

// ErrUnknownDevice is returned by Select for a name that is not listed.
var ErrUnknownDevice = errors.New("unknown device")

// Token orders requests for one list. Only the latest token may apply.
type Token uint64

// Catalog is the song list of one device.
type Catalog struct {
	Device string
	Songs  []speaker.Song
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Devices             []speaker.Device
	Selected            string
	HasSelection        bool
	Catalog             Catalog
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // consecutive failed calls of any kind
}

// IsOffline returns true when the server has been unreachable for multiple calls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu           sync.RWMutex
	snapshot     Snapshot
	deviceToken  Token
	catalogToken Token
}

// BeginDevices issues the token for a new device list request.
func (s *Store) BeginDevices() Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deviceToken++
	return s.deviceToken
}

// ApplyDevices replaces the device list if tok is still the latest device
// token. The selection is kept when the device is still listed, otherwise it
// moves to the first device, or is cleared for an empty list. It reports
// whether the list was applied.
func (s *Store) ApplyDevices(tok Token, devices []speaker.Device) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok != s.deviceToken {
		return false
	}

	s.snapshot.Devices = cloneDevices(devices)
	selected, ok := "", false
	if s.snapshot.HasSelection && containsDevice(devices, s.snapshot.Selected) {
		selected, ok = s.snapshot.Selected, true
	} else if len(devices) > 0 {
		selected, ok = devices[0].Name, true
	}
	s.snapshot.Selected = selected
	s.snapshot.HasSelection = ok
	s.markSuccess()
	return true
}

// BeginCatalog issues the token for a new catalog request. With clear set the
// current catalog is emptied immediately.
func (s *Store) BeginCatalog(clear bool) Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalogToken++
	if clear {
		s.snapshot.Catalog = Catalog{}
	}
	return s.catalogToken
}

// ApplyCatalog swaps in the catalog for device if tok is still the latest
// catalog token. It reports whether the catalog was applied.
func (s *Store) ApplyCatalog(tok Token, device string, songs []speaker.Song) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok != s.catalogToken {
		return false
	}
	s.snapshot.Catalog = Catalog{Device: device, Songs: cloneSongs(songs)}
	s.markSuccess()
	return true
}

// Select makes name the current device.
func (s *Store) Select(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !containsDevice(s.snapshot.Devices, name) {
		return fmt.Errorf("select %q: %w", name, ErrUnknownDevice)
	}
	s.snapshot.Selected = name
	s.snapshot.HasSelection = true
	return nil
}

// Selected returns the current device, if any.
func (s *Store) Selected() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Selected, s.snapshot.HasSelection
}

// Record notes the outcome of a call that carries no list data.
func (s *Store) Record(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.markFailure(err)
		return
	}
	s.markSuccess()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Devices = cloneDevices(s.snapshot.Devices)
	snap.Catalog.Songs = cloneSongs(s.snapshot.Catalog.Songs)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func (s *Store) markSuccess() {
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

func (s *Store) markFailure(err error) {
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures++
}

func containsDevice(devices []speaker.Device, name string) bool {
	for _, d := range devices {
		if d.Name == name {
			return true
		}
	}
	return false
}

func cloneDevices(items []speaker.Device) []speaker.Device {
	if len(items) == 0 {
		return nil
	}
	dup := make([]speaker.Device, len(items))
	copy(dup, items)
	return dup
}

func cloneSongs(items []speaker.Song) []speaker.Song {
	if len(items) == 0 {
		return nil
	}
	dup := make([]speaker.Song, len(items))
	copy(dup, items)
	return dup
}
