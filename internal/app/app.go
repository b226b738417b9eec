package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/speakerctl/internal/config"
	"github.com/five82/speakerctl/internal/control"
	"github.com/five82/speakerctl/internal/logging"
	"github.com/five82/speakerctl/internal/prefs"
	"github.com/five82/speakerctl/internal/speaker"
	"github.com/five82/speakerctl/internal/state"
	"github.com/five82/speakerctl/internal/ui"
)

// Options configure a speakerctl session. Non-zero fields override the
// config file.
type Options struct {
	ConfigPath string
	Server     string
	LogLevel   string
	PollEvery  time.Duration
	// Logger replaces the configured log file. The TUI leaves it nil so
	// logging stays off the terminal.
	Logger   *log.Logger
	Observer control.Observer
}

// Session bundles the wired dependencies shared by the CLI and the TUI.
type Session struct {
	Config     config.Config
	Client     *speaker.Client
	Store      *state.Store
	Controller *control.Controller
	Logger     *log.Logger
	closer     io.Closer
}

// Open loads configuration and wires client, store and controller.
func Open(opts Options) (*Session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if server := strings.TrimSpace(opts.Server); server != "" {
		cfg.Server = server
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.LogLevel = level
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = opts.PollEvery
	}

	logger := opts.Logger
	var closer io.Closer
	if logger == nil {
		logger, closer, err = logging.NewFile(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("init log file: %w", err)
		}
	} else {
		logger.SetLevel(logging.ParseLevel(cfg.LogLevel))
	}

	client, err := speaker.NewClient(cfg.Server, cfg.RequestTimeout)
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, fmt.Errorf("init speaker client: %w", err)
	}

	store := &state.Store{}
	ctrl := control.New(control.Options{
		Client:     client,
		Store:      store,
		Logger:     logger,
		Observer:   opts.Observer,
		EagerClear: cfg.EagerClear,
	})

	return &Session{
		Config:     cfg,
		Client:     client,
		Store:      store,
		Controller: ctrl,
		Logger:     logger,
		closer:     closer,
	}, nil
}

// Close waits for in-flight commands and releases the log file.
func (s *Session) Close() error {
	s.Controller.Wait()
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// Run boots the speakerctl TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	results := make(chan control.Result, resultBuffer)
	next := opts.Observer
	opts.Observer = func(r control.Result) {
		if next != nil {
			next(r)
		}
		select {
		case results <- r:
		default:
			// UI is behind; the result is still in the log.
		}
	}

	session, err := Open(opts)
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()

	session.Logger.Info("tui started", "server", session.Client.BaseURL())

	StartPoller(ctx, session.Controller, session.Config.PollInterval)

	return ui.Run(ui.Options{
		Context:    ctx,
		Controller: session.Controller,
		Store:      session.Store,
		Results:    results,
		Server:     session.Client.BaseURL(),
		LogFile:    session.Config.LogFile,
		ThemeName:  prefs.Load(prefs.DefaultPath()).Theme,
		PrefsPath:  prefs.DefaultPath(),
	})
}

const resultBuffer = 64
