package control

import "context"

// RefreshDevices reloads the mounted device list. On success the list is
// replaced wholesale; on failure the previous list stays. Responses to
// superseded requests are dropped.
func (c *Controller) RefreshDevices(ctx context.Context) {
	tok := c.store.BeginDevices()
	devices, call, err := c.api.FetchDevices(ctx)
	if err != nil {
		c.store.Record(err)
		c.report(OpDevices, call, err, false)
		return
	}
	applied := c.store.ApplyDevices(tok, devices)
	c.report(OpDevices, call, nil, !applied)
}

// SelectDevice makes name the current device.
func (c *Controller) SelectDevice(name string) error {
	return c.store.Select(name)
}
