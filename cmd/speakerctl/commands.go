package main

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/five82/speakerctl/internal/app"
	"github.com/five82/speakerctl/internal/control"
	"github.com/five82/speakerctl/internal/speaker"
)

func (r *Runner) command() *cli.Command {
	return &cli.Command{
		Name:      "speakerctl",
		Usage:     "Control a smart speaker over its HTTP control server",
		Version:   version,
		Writer:    r.output,
		ErrWriter: r.errOutput,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file (default ~/.config/speakerctl/config.toml)",
			},
			&cli.StringFlag{
				Name:  "server",
				Usage: "Control server address, host:port or URL",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
		},
		Action: r.TUI,
		Commands: []*cli.Command{
			tuiCommand(r),
			actionCommand(r),
			resetCommand(r),
			volumeCommand(r),
			streamCommand(r),
			devicesCommand(r),
			songsCommand(r),
			playCommand(r),
		},
	}
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Open the interactive client (default)",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "poll",
				Usage: "Refresh the device list at this interval (0 uses the config value)",
			},
		},
		Action: r.TUI,
	}
}

func actionCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "action",
		Usage:     "Send a playback command (" + strings.Join(speaker.KnownActions(), ", ") + ")",
		ArgsUsage: "<name>",
		Description: "The name is appended to the server URL as written, so query forms work too:\n" +
			"  " + strings.Join(speaker.QueryActions(), "<value>, ") + "<value>\n" +
			"Quote it in the shell, e.g. speakerctl action 'play?ytb=dQw4w9WgXcQ'.",
		Action: r.Action,
	}
}

func resetCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "reset",
		Usage:     "Reset the speaker (" + strings.Join(speaker.KnownResets(), ", ") + ")",
		ArgsUsage: "<kind>",
		Action:    r.Reset,
	}
}

func volumeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "volume",
		Usage:     "Set the volume to a level, or step it with up/down",
		ArgsUsage: "<level>",
		Action:    r.Volume,
	}
}

func streamCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "stream",
		Usage:     "Play a networked link",
		ArgsUsage: "<link>",
		Action:    r.Stream,
	}
}

func devicesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "devices",
		Usage: "List mounted storage devices",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Output JSON"},
		},
		Action: r.Devices,
	}
}

func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "songs",
		Usage:     "List the offline songs of a device",
		ArgsUsage: "<device>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Output JSON"},
		},
		Action: r.Songs,
	}
}

func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     "Play an offline song on a device",
		ArgsUsage: "<device> <song>",
		Action:    r.Play,
	}
}

// TUI launches the interactive client.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	return r.tui(ctx, app.Options{
		ConfigPath: cmd.String("config"),
		Server:     cmd.String("server"),
		LogLevel:   cmd.String("log-level"),
		PollEvery:  cmd.Duration("poll"),
	})
}

// Action sends one playback command. Names outside the known set are still
// forwarded.
func (r *Runner) Action(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, "name")
	if err != nil {
		return err
	}
	name := args[0]
	return r.dispatch(cmd, func(s *app.Session) {
		if !speaker.IsKnownAction(name) {
			s.Logger.Warn("unknown action, sending anyway", "action", name)
		}
		s.Controller.SendAction(ctx, name)
	})
}

// Reset sends a reset of the given kind.
func (r *Runner) Reset(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, "kind")
	if err != nil {
		return err
	}
	return r.dispatch(cmd, func(s *app.Session) {
		s.Controller.SendReset(ctx, args[0])
	})
}

// Volume forwards the level verbatim.
func (r *Runner) Volume(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, "level")
	if err != nil {
		return err
	}
	return r.dispatch(cmd, func(s *app.Session) {
		s.Controller.SetVolume(ctx, args[0])
	})
}

// Stream asks the speaker to play a networked link.
func (r *Runner) Stream(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, "link")
	if err != nil {
		return err
	}
	return r.dispatch(cmd, func(s *app.Session) {
		s.Controller.PlayStream(ctx, args[0])
	})
}

type deviceJSON struct {
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

// Devices prints the mounted devices, marking the one a session would select.
func (r *Runner) Devices(ctx context.Context, cmd *cli.Command) error {
	session, seen, err := r.open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()

	session.Controller.RefreshDevices(ctx)
	if err := seen.err(); err != nil {
		return err
	}

	snap := session.Store.Snapshot()
	if cmd.Bool("json") {
		out := make([]deviceJSON, len(snap.Devices))
		for i, d := range snap.Devices {
			out[i] = deviceJSON{Name: d.Name, Selected: snap.HasSelection && d.Name == snap.Selected}
		}
		return r.writeJSON(out)
	}
	for _, d := range snap.Devices {
		mark := " "
		if snap.HasSelection && d.Name == snap.Selected {
			mark = "*"
		}
		if err := r.writeLine("%s %s", mark, d.Name); err != nil {
			return err
		}
	}
	return nil
}

// Songs prints the catalog of one device.
func (r *Runner) Songs(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, "device")
	if err != nil {
		return err
	}
	session, seen, err := r.open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()

	session.Controller.LoadCatalog(ctx, args[0])
	if err := seen.err(); err != nil {
		return err
	}

	controls := control.Controls(session.Store.Snapshot().Catalog)
	if cmd.Bool("json") {
		names := make([]string, len(controls))
		for i, c := range controls {
			names[i] = c.Label()
		}
		return r.writeJSON(names)
	}
	for _, c := range controls {
		if err := r.writeLine("%s", c.Label()); err != nil {
			return err
		}
	}
	return nil
}

// Play selects device from a fresh listing and plays song on it.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, "device", "song")
	if err != nil {
		return err
	}
	session, seen, err := r.open(cmd)
	if err != nil {
		return err
	}

	session.Controller.RefreshDevices(ctx)
	if err := seen.err(); err != nil {
		_ = session.Close()
		return err
	}
	if err := session.Controller.SelectDevice(args[0]); err != nil {
		_ = session.Close()
		return err
	}
	if err := session.Controller.PlaySong(ctx, control.SongControl{Name: args[1]}); err != nil {
		_ = session.Close()
		return err
	}
	if err := session.Close(); err != nil {
		return err
	}
	return seen.err()
}
