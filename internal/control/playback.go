package control

import (
	"context"
	"errors"

	"github.com/five82/speakerctl/internal/speaker"
)

// ErrNoDeviceSelected is returned by PlaySong when no device is selected.
var ErrNoDeviceSelected = errors.New("no device selected")

// PlaySong plays song on the device selected at call time, which may differ
// from the device the song was listed for. Without a selection nothing is
// sent and ErrNoDeviceSelected is returned; otherwise the request is fired
// and PlaySong returns nil immediately.
func (c *Controller) PlaySong(ctx context.Context, song SongControl) error {
	device, ok := c.store.Selected()
	if !ok || device == "" {
		c.logger.Warn("play ignored", "song", song.Name, "err", ErrNoDeviceSelected)
		return ErrNoDeviceSelected
	}
	c.fire(ctx, OpPlay, func(ctx context.Context) (speaker.Call, error) {
		return c.api.PlayOfflineSong(ctx, device, song.Name)
	})
	return nil
}
