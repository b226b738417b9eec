package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/speakerctl/internal/control"
	"github.com/five82/speakerctl/internal/speaker"
	"github.com/five82/speakerctl/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewMain View = iota
	ViewDiagnostics
)

type pane int

const (
	paneDevices pane = iota
	paneSongs
)

const (
	defaultPollTick = time.Second
	diagnosticLines = 500
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *control.Controller
	Store      *state.Store
	Results    <-chan control.Result
	Server     string
	LogFile    string
	ThemeName  string
	// PrefsPath receives the theme whenever it is cycled. Empty disables saving.
	PrefsPath string
	PollTick  time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	ctrl      *control.Controller
	store     *state.Store
	results   <-chan control.Result
	server    string
	logFile   string
	prefsPath string
	pollTick  time.Duration

	// UI state
	theme       Theme
	keys        keyMap
	help        help.Model
	currentView View
	focus       pane
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Data state
	snapshot       state.Snapshot
	devices        list.Model
	songs          list.Model
	loadingDevices bool
	loadingCatalog string

	// Stream prompt
	prompting   bool
	streamInput textinput.Model

	// Diagnostics
	diag             viewport.Model
	diagFailuresOnly bool
	diagErr          error

	// Last outcome shown in the footer
	status      string
	statusLevel statusLevel
}

type statusLevel int

const (
	statusInfo statusLevel = iota
	statusOK
	statusWarn
	statusError
)

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = defaultPollTick
	}

	store := opts.Store
	if store == nil && opts.Controller != nil {
		store = opts.Controller.Store()
	}

	devices := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	devices.Title = "Devices"
	devices.SetShowHelp(false)
	devices.SetShowStatusBar(false)
	devices.SetFilteringEnabled(false)
	devices.DisableQuitKeybindings()

	songs := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	songs.Title = "Songs"
	songs.SetShowHelp(false)
	songs.DisableQuitKeybindings()

	input := textinput.New()
	input.Prompt = "stream link: "
	input.Placeholder = "https://www.youtube.com/watch?v=..."
	input.CharLimit = 2048

	return Model{
		ctx:         ctx,
		ctrl:        opts.Controller,
		store:       store,
		results:     opts.Results,
		server:      opts.Server,
		logFile:     opts.LogFile,
		prefsPath:   opts.PrefsPath,
		pollTick:    pollTick,
		theme:       GetTheme(opts.ThemeName),
		keys:        DefaultKeyMap(),
		help:        help.New(),
		currentView: ViewMain,
		focus:       paneDevices,
		devices:     devices,
		songs:       songs,
		streamInput: input,
		diag:        viewport.New(0, 0),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		refreshDevicesCmd(m.ctx, m.ctrl),
		tickCmd(m.pollTick),
		waitForResult(m.results),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case tickMsg:
		return m, tea.Batch(fetchSnapshotCmd(m.store), tickCmd(m.pollTick))

	case snapshotMsg:
		cmd := m.applySnapshot(state.Snapshot(msg))
		return m, cmd

	case devicesRefreshedMsg:
		m.loadingDevices = false
		cmd := m.applySnapshot(m.store.Snapshot())
		return m, cmd

	case catalogLoadedMsg:
		if m.loadingCatalog == msg.device {
			m.loadingCatalog = ""
		}
		cmd := m.applySnapshot(m.store.Snapshot())
		return m, cmd

	case resultMsg:
		m.noteResult(control.Result(msg))
		return m, waitForResult(m.results)

	case prefsSavedMsg:
		if msg.err != nil {
			m.setStatus(statusWarn, "theme not saved: "+msg.err.Error())
		}
		return m, nil

	case diagnosticsMsg:
		m.diagErr = msg.err
		m.diag.SetContent(strings.Join(msg.lines, "\n"))
		m.diag.GotoBottom()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.prompting {
		return m.handlePromptKey(msg)
	}
	if m.currentView == ViewDiagnostics {
		return m.handleDiagnosticsKey(msg)
	}
	// Typing into the song filter must not trigger commands.
	if m.focus == paneSongs && m.songs.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.songs, cmd = m.songs.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		return m, savePrefsCmd(m.prefsPath, m.theme.Name)
	case key.Matches(msg, m.keys.Tab):
		if m.focus == paneDevices {
			m.focus = paneSongs
		} else {
			m.focus = paneDevices
		}
		return m, nil
	case key.Matches(msg, m.keys.Diagnostics):
		m.currentView = ViewDiagnostics
		return m, loadDiagnosticsCmd(m.logFile, m.diagFailuresOnly)
	case key.Matches(msg, m.keys.Refresh):
		m.loadingDevices = true
		return m, refreshDevicesCmd(m.ctx, m.ctrl)
	case key.Matches(msg, m.keys.Confirm):
		if m.focus == paneDevices {
			return m.selectDevice()
		}
		return m.playSong()
	case key.Matches(msg, m.keys.Stream):
		m.prompting = true
		m.streamInput.SetValue("")
		cmd := m.streamInput.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.VolumeUp):
		m.ctrl.SetVolume(m.ctx, "up")
		m.setStatus(statusInfo, "volume up")
		return m, nil
	case key.Matches(msg, m.keys.VolumeDown):
		m.ctrl.SetVolume(m.ctx, "down")
		m.setStatus(statusInfo, "volume down")
		return m, nil
	}

	if action, ok := m.transportAction(msg); ok {
		m.ctrl.SendAction(m.ctx, action)
		m.setStatus(statusInfo, action)
		return m, nil
	}

	// Everything else navigates the focused list.
	var cmd tea.Cmd
	if m.focus == paneDevices {
		m.devices, cmd = m.devices.Update(msg)
	} else {
		m.songs, cmd = m.songs.Update(msg)
	}
	return m, cmd
}

func (m Model) transportAction(msg tea.KeyMsg) (string, bool) {
	switch {
	case key.Matches(msg, m.keys.Pause):
		return speaker.ActionPause, true
	case key.Matches(msg, m.keys.Resume):
		return speaker.ActionResume, true
	case key.Matches(msg, m.keys.Stop):
		return speaker.ActionStop, true
	case key.Matches(msg, m.keys.Next):
		return speaker.ActionNext, true
	case key.Matches(msg, m.keys.Previous):
		return speaker.ActionPrevious, true
	case key.Matches(msg, m.keys.Restart):
		return speaker.ActionRestart, true
	case key.Matches(msg, m.keys.Shuffle):
		return speaker.ActionShuffle, true
	}
	return "", false
}

// selectDevice makes the highlighted device current and loads its catalog.
func (m Model) selectDevice() (tea.Model, tea.Cmd) {
	item, ok := m.devices.SelectedItem().(deviceItem)
	if !ok {
		m.setStatus(statusWarn, "no devices mounted; press r to refresh")
		return m, nil
	}
	name := item.device.Name
	if err := m.ctrl.SelectDevice(name); err != nil {
		m.setStatus(statusError, err.Error())
		return m, nil
	}
	m.loadingCatalog = name
	m.focus = paneSongs
	cmd := m.applySnapshot(m.store.Snapshot())
	return m, tea.Batch(cmd, loadCatalogCmd(m.ctx, m.ctrl, name))
}

// playSong plays the highlighted song on the currently selected device.
func (m Model) playSong() (tea.Model, tea.Cmd) {
	item, ok := m.songs.SelectedItem().(songItem)
	if !ok {
		return m, nil
	}
	if err := m.ctrl.PlaySong(m.ctx, item.control); err != nil {
		if errors.Is(err, control.ErrNoDeviceSelected) {
			m.setStatus(statusWarn, "no device selected; pick one in the device pane")
			return m, nil
		}
		m.setStatus(statusError, err.Error())
		return m, nil
	}
	device, _ := m.store.Selected()
	m.setStatus(statusInfo, fmt.Sprintf("play %s on %s", item.control.Label(), device))
	return m, nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.prompting = false
		m.streamInput.Blur()
		return m, nil
	case "enter":
		link := strings.TrimSpace(m.streamInput.Value())
		m.prompting = false
		m.streamInput.Blur()
		if link == "" {
			return m, nil
		}
		m.ctrl.PlayStream(m.ctx, link)
		m.setStatus(statusInfo, "stream "+link)
		return m, nil
	}
	var cmd tea.Cmd
	m.streamInput, cmd = m.streamInput.Update(msg)
	return m, cmd
}

func (m Model) handleDiagnosticsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Diagnostics):
		m.currentView = ViewMain
		return m, nil
	case key.Matches(msg, m.keys.FailuresOnly):
		m.diagFailuresOnly = !m.diagFailuresOnly
		return m, loadDiagnosticsCmd(m.logFile, m.diagFailuresOnly)
	case key.Matches(msg, m.keys.Refresh):
		return m, loadDiagnosticsCmd(m.logFile, m.diagFailuresOnly)
	}
	var cmd tea.Cmd
	m.diag, cmd = m.diag.Update(msg)
	return m, cmd
}

// applySnapshot re-renders both lists from snap. Each list is replaced
// wholesale when its content changed.
func (m *Model) applySnapshot(snap state.Snapshot) tea.Cmd {
	prev := m.snapshot
	m.snapshot = snap
	var cmds []tea.Cmd

	if !sameDevices(prev, snap) {
		cmds = append(cmds, m.devices.SetItems(deviceItems(snap)))
		if n := len(snap.Devices); m.devices.Index() >= n && n > 0 {
			m.devices.Select(n - 1)
		}
	}
	if !sameCatalog(prev.Catalog, snap.Catalog) {
		cmds = append(cmds, m.songs.SetItems(songItems(snap.Catalog)))
		if prev.Catalog.Device != snap.Catalog.Device {
			m.songs.ResetSelected()
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) noteResult(r control.Result) {
	switch {
	case r.Stale:
		return
	case r.Err != nil:
		m.setStatus(statusError, fmt.Sprintf("%s %s failed: %v", r.Method, r.Path, r.Err))
	default:
		m.setStatus(statusOK, fmt.Sprintf("%s %s ok", r.Method, r.Path))
	}
}

func (m *Model) setStatus(level statusLevel, text string) {
	m.statusLevel = level
	m.status = text
}

func (m *Model) resize() {
	if !m.ready {
		return
	}
	// header + footer (status, help)
	bodyHeight := m.height - 3
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	left := m.width / 3
	right := m.width - left
	// pane border and padding
	m.devices.SetSize(max(left-4, 1), max(bodyHeight-2, 1))
	m.songs.SetSize(max(right-4, 1), max(bodyHeight-2, 1))
	m.diag.Width = m.width
	m.diag.Height = max(m.height-3, 1)
	m.streamInput.Width = max(m.width-len(m.streamInput.Prompt)-2, 10)
}

func sameDevices(a, b state.Snapshot) bool {
	if a.Selected != b.Selected || a.HasSelection != b.HasSelection || len(a.Devices) != len(b.Devices) {
		return false
	}
	for i := range a.Devices {
		if a.Devices[i] != b.Devices[i] {
			return false
		}
	}
	return true
}

func sameCatalog(a, b state.Catalog) bool {
	if a.Device != b.Device || len(a.Songs) != len(b.Songs) {
		return false
	}
	for i := range a.Songs {
		if a.Songs[i] != b.Songs[i] {
			return false
		}
	}
	return true
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
