package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/speakerctl/internal/control"
	"github.com/five82/speakerctl/internal/logtail"
	"github.com/five82/speakerctl/internal/prefs"
	"github.com/five82/speakerctl/internal/state"
)

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type devicesRefreshedMsg struct{}

type catalogLoadedMsg struct {
	device string
}

type resultMsg control.Result

type diagnosticsMsg struct {
	lines []string
	err   error
}

type prefsSavedMsg struct {
	err error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func refreshDevicesCmd(ctx context.Context, ctrl *control.Controller) tea.Cmd {
	return func() tea.Msg {
		ctrl.RefreshDevices(ctx)
		return devicesRefreshedMsg{}
	}
}

func loadCatalogCmd(ctx context.Context, ctrl *control.Controller, device string) tea.Cmd {
	return func() tea.Msg {
		ctrl.LoadCatalog(ctx, device)
		return catalogLoadedMsg{device: device}
	}
}

func waitForResult(results <-chan control.Result) tea.Cmd {
	if results == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-results
		if !ok {
			return nil
		}
		return resultMsg(r)
	}
}

func loadDiagnosticsCmd(path string, failuresOnly bool) tea.Cmd {
	return func() tea.Msg {
		opts := logtail.Options{Lines: diagnosticLines}
		if failuresOnly {
			opts.Levels = []string{"warn", "error"}
		}
		lines, err := logtail.Tail(path, opts)
		return diagnosticsMsg{lines: lines, err: err}
	}
}

func savePrefsCmd(path, theme string) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		return prefsSavedMsg{err: prefs.Save(path, prefs.Prefs{Theme: theme})}
	}
}
