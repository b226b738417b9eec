package control

import (
	"context"

	"github.com/five82/speakerctl/internal/state"
)

// SongControl is the actionable entry rendered for one song. It carries the
// song name for the playback trigger.
type SongControl struct {
	Name string
}

// Label is the text shown for the control.
func (s SongControl) Label() string { return s.Name }

// Controls builds one control per song in catalog order. An empty catalog
// yields no controls.
func Controls(cat state.Catalog) []SongControl {
	if len(cat.Songs) == 0 {
		return nil
	}
	out := make([]SongControl, len(cat.Songs))
	for i, song := range cat.Songs {
		out[i] = SongControl{Name: song.Name}
	}
	return out
}

// LoadCatalog fetches the offline songs of deviceID. The new catalog is
// swapped in only once the response decoded; a failure keeps the previous
// catalog unless the controller was built with EagerClear.
func (c *Controller) LoadCatalog(ctx context.Context, deviceID string) {
	tok := c.store.BeginCatalog(c.eagerClear)
	songs, call, err := c.api.FetchSongs(ctx, deviceID)
	if err != nil {
		c.store.Record(err)
		c.report(OpCatalog, call, err, false)
		return
	}
	applied := c.store.ApplyCatalog(tok, deviceID, songs)
	c.report(OpCatalog, call, nil, !applied)
}
