package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/speakerctl/internal/speaker"
)

func devices(names ...string) []speaker.Device {
	out := make([]speaker.Device, 0, len(names))
	for _, n := range names {
		out = append(out, speaker.Device{Name: n})
	}
	return out
}

func TestStore_ApplyDevicesAndSnapshotClone(t *testing.T) {
	var s Store

	before := time.Now()
	tok := s.BeginDevices()
	if !s.ApplyDevices(tok, devices("usb1", "usb2")) {
		t.Fatalf("ApplyDevices = false, want true for latest token")
	}

	snap := s.Snapshot()
	if len(snap.Devices) != 2 || snap.Devices[0].Name != "usb1" || snap.Devices[1].Name != "usb2" {
		t.Fatalf("Devices = %#v, want usb1, usb2", snap.Devices)
	}
	if !snap.HasSelection || snap.Selected != "usb1" {
		t.Fatalf("Selected = %q (%v), want usb1", snap.Selected, snap.HasSelection)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}

	snap.Devices[0].Name = "mutated"
	if got := s.Snapshot().Devices[0].Name; got != "usb1" {
		t.Fatalf("Snapshot should clone devices; got %q want usb1", got)
	}
}

func TestStore_ApplyDevicesReplacesWholesale(t *testing.T) {
	var s Store

	s.ApplyDevices(s.BeginDevices(), devices("old1", "old2", "old3"))
	s.ApplyDevices(s.BeginDevices(), devices("usb1", "usb2"))

	got := s.Snapshot().Devices
	if !reflect.DeepEqual(got, devices("usb1", "usb2")) {
		t.Fatalf("Devices = %#v, want exactly usb1, usb2", got)
	}

	// Same response twice yields the same list.
	s.ApplyDevices(s.BeginDevices(), devices("usb1", "usb2"))
	if again := s.Snapshot().Devices; !reflect.DeepEqual(again, got) {
		t.Fatalf("Devices after repeat = %#v, want %#v", again, got)
	}
}

func TestStore_SelectionFollowsRefresh(t *testing.T) {
	var s Store

	s.ApplyDevices(s.BeginDevices(), devices("usb1", "usb2"))
	if err := s.Select("usb2"); err != nil {
		t.Fatalf("Select returned error: %v", err)
	}

	s.ApplyDevices(s.BeginDevices(), devices("usb0", "usb2"))
	if name, ok := s.Selected(); !ok || name != "usb2" {
		t.Fatalf("Selected = %q (%v), want usb2 kept", name, ok)
	}

	s.ApplyDevices(s.BeginDevices(), devices("usb3"))
	if name, ok := s.Selected(); !ok || name != "usb3" {
		t.Fatalf("Selected = %q (%v), want usb3", name, ok)
	}

	s.ApplyDevices(s.BeginDevices(), nil)
	if name, ok := s.Selected(); ok || name != "" {
		t.Fatalf("Selected = %q (%v), want no selection", name, ok)
	}
}

func TestStore_SelectUnknownDevice(t *testing.T) {
	var s Store
	s.ApplyDevices(s.BeginDevices(), devices("usb1"))

	err := s.Select("usb9")
	if !errors.Is(err, ErrUnknownDevice) {
		t.Fatalf("Select error = %v, want ErrUnknownDevice", err)
	}
	if name, _ := s.Selected(); name != "usb1" {
		t.Fatalf("Selected = %q, want usb1 unchanged", name)
	}
}

func TestStore_StaleTokensAreDiscarded(t *testing.T) {
	var s Store

	first := s.BeginDevices()
	second := s.BeginDevices()
	if !s.ApplyDevices(second, devices("new")) {
		t.Fatalf("ApplyDevices(second) = false, want true")
	}
	if s.ApplyDevices(first, devices("old")) {
		t.Fatalf("ApplyDevices(first) = true, want stale response discarded")
	}
	if got := s.Snapshot().Devices; len(got) != 1 || got[0].Name != "new" {
		t.Fatalf("Devices = %#v, want new", got)
	}

	a := s.BeginCatalog(false)
	b := s.BeginCatalog(false)
	if s.ApplyCatalog(a, "usbA", []speaker.Song{{Name: "a.mp3"}}) {
		t.Fatalf("ApplyCatalog(a) = true, want false before b resolves")
	}
	if !s.ApplyCatalog(b, "usbB", []speaker.Song{{Name: "b.mp3"}}) {
		t.Fatalf("ApplyCatalog(b) = false, want true")
	}
	if cat := s.Snapshot().Catalog; cat.Device != "usbB" || len(cat.Songs) != 1 || cat.Songs[0].Name != "b.mp3" {
		t.Fatalf("Catalog = %#v, want usbB/b.mp3", cat)
	}
}

func TestStore_BeginCatalogClear(t *testing.T) {
	var s Store
	s.ApplyCatalog(s.BeginCatalog(false), "usb1", []speaker.Song{{Name: "a.mp3"}})

	s.BeginCatalog(false)
	if len(s.Snapshot().Catalog.Songs) != 1 {
		t.Fatalf("BeginCatalog(false) cleared the catalog")
	}

	s.BeginCatalog(true)
	if cat := s.Snapshot().Catalog; cat.Device != "" || len(cat.Songs) != 0 {
		t.Fatalf("Catalog = %#v, want empty after BeginCatalog(true)", cat)
	}
}

func TestStore_RecordErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.ApplyDevices(s.BeginDevices(), devices("usb1"))
	s.ApplyCatalog(s.BeginCatalog(false), "usb1", []speaker.Song{{Name: "a.mp3"}})

	origErr := errors.New("boom")
	s.Record(origErr)

	snap := s.Snapshot()
	if len(snap.Devices) != 1 || len(snap.Catalog.Songs) != 1 {
		t.Fatalf("data changed on error: %#v", snap)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	if snap := s.Snapshot(); snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("fresh store = %d failures offline=%v, want 0/false", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Record(errors.New("fail 1"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after 1 failure = %d offline=%v, want 1/false", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Record(errors.New("fail 2"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("after 2 failures = %d offline=%v, want 2/true", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Record(nil)
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 0 || snap.IsOffline() || snap.LastError != nil {
		t.Fatalf("after success = %#v, want reset", snap)
	}
}
