package app

import (
	"context"
	"time"

	"github.com/five82/speakerctl/internal/control"
)

// StartPoller launches a background goroutine that refreshes the device list
// at a fixed cadence so hot-plugged storage shows up. A non-positive interval
// disables polling. It returns immediately.
func StartPoller(ctx context.Context, ctrl *control.Controller, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				ctrl.RefreshDevices(ctx)
			}
		}
	}()
}
