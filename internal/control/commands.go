package control

import (
	"context"
	"fmt"

	"github.com/five82/speakerctl/internal/speaker"
)

// SendAction posts /{action}. It returns immediately.
func (c *Controller) SendAction(ctx context.Context, action string) {
	c.fire(ctx, OpAction, func(ctx context.Context) (speaker.Call, error) {
		return c.api.SendAction(ctx, action)
	})
}

// SendReset posts /reset_smart_speaker/{subAction}. It returns immediately.
func (c *Controller) SendReset(ctx context.Context, subAction string) {
	c.fire(ctx, OpReset, func(ctx context.Context) (speaker.Call, error) {
		return c.api.SendReset(ctx, subAction)
	})
}

// SetVolume posts /volume/{level}. The level is formatted with %v and sent
// without validation, so 40, "40" and "up" are all forwarded as given.
func (c *Controller) SetVolume(ctx context.Context, level any) {
	formatted := fmt.Sprint(level)
	c.fire(ctx, OpVolume, func(ctx context.Context) (speaker.Call, error) {
		return c.api.SetVolume(ctx, formatted)
	})
}

// PlayStream asks the speaker to stream link. It returns immediately.
func (c *Controller) PlayStream(ctx context.Context, link string) {
	c.fire(ctx, OpStream, func(ctx context.Context) (speaker.Call, error) {
		return c.api.PlayStream(ctx, link)
	})
}
