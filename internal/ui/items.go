package ui

import (
	"github.com/charmbracelet/bubbles/list"

	"github.com/five82/speakerctl/internal/control"
	"github.com/five82/speakerctl/internal/speaker"
	"github.com/five82/speakerctl/internal/state"
)

var (
	_ list.DefaultItem = deviceItem{}
	_ list.DefaultItem = songItem{}
)

// deviceItem wraps [speaker.Device] to implement [list.Item].
type deviceItem struct {
	device   speaker.Device
	selected bool
}

func (i deviceItem) FilterValue() string { return i.device.Name }
func (i deviceItem) Title() string {
	if i.selected {
		return "● " + i.device.Name
	}
	return "  " + i.device.Name
}
func (i deviceItem) Description() string {
	if i.selected {
		return "  selected"
	}
	return "  mounted storage"
}

// songItem wraps a [control.SongControl] to implement [list.Item].
type songItem struct {
	control control.SongControl
	device  string
}

func (i songItem) FilterValue() string { return i.control.Name }
func (i songItem) Title() string       { return "♪ " + i.control.Label() }
func (i songItem) Description() string { return "on " + i.device }

func deviceItems(snap state.Snapshot) []list.Item {
	items := make([]list.Item, len(snap.Devices))
	for i, d := range snap.Devices {
		items[i] = deviceItem{device: d, selected: snap.HasSelection && d.Name == snap.Selected}
	}
	return items
}

func songItems(cat state.Catalog) []list.Item {
	controls := control.Controls(cat)
	items := make([]list.Item, len(controls))
	for i, c := range controls {
		items[i] = songItem{control: c, device: cat.Device}
	}
	return items
}
