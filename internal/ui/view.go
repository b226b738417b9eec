package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.currentView == ViewDiagnostics {
		return m.renderDiagnostics()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderBody(),
		m.renderStatus(),
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	snap := m.snapshot

	parts := []string{styles.AccentText.Render("speakerctl"), styles.MutedText.Render(m.server)}
	parts = append(parts, fmt.Sprintf("%d devices", len(snap.Devices)))
	if snap.HasSelection {
		parts = append(parts, "on "+styles.SuccessText.Render(snap.Selected))
	} else {
		parts = append(parts, styles.WarningText.Render("no device"))
	}
	switch {
	case m.loadingDevices:
		parts = append(parts, styles.FaintText.Render("refreshing..."))
	case m.loadingCatalog != "":
		parts = append(parts, styles.FaintText.Render("loading "+m.loadingCatalog+"..."))
	}
	if snap.IsOffline() {
		parts = append(parts, styles.DangerText.Render("OFFLINE"))
	}
	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderBody() string {
	styles := m.theme.Styles()
	left := m.width / 3
	right := m.width - left
	height := max(m.height-3, 3)

	devStyle, songStyle := styles.Pane, styles.Pane
	if m.focus == paneDevices {
		devStyle = styles.PaneOn
	} else {
		songStyle = styles.PaneOn
	}

	// Borders count toward the outer size.
	devices := devStyle.Width(max(left-2, 1)).Height(max(height-2, 1)).Render(m.listView(m.devices.View(), len(m.devices.Items())))
	songs := songStyle.Width(max(right-2, 1)).Height(max(height-2, 1)).Render(m.listView(m.songs.View(), len(m.songs.Items())))
	return lipgloss.JoinHorizontal(lipgloss.Top, devices, songs)
}

// listView leaves an empty list blank instead of showing a placeholder.
func (m Model) listView(view string, n int) string {
	if n == 0 {
		return ""
	}
	return view
}

func (m Model) renderStatus() string {
	styles := m.theme.Styles()
	if m.prompting {
		return m.streamInput.View()
	}
	style := styles.MutedText
	switch m.statusLevel {
	case statusOK:
		style = styles.SuccessText
	case statusWarn:
		style = styles.WarningText
	case statusError:
		style = styles.DangerText
	}
	return style.Width(m.width).Render(truncate(m.status, m.width))
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	return styles.Footer.Width(m.width).Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	title := styles.AccentText.Render("Keys")
	body := m.help.FullHelpView(m.keys.FullHelp())
	hint := styles.FaintText.Render("press any key to close")
	return lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", hint)
}

func (m Model) renderDiagnostics() string {
	styles := m.theme.Styles()
	title := "diagnostics: " + m.logFile
	if m.diagFailuresOnly {
		title += " (warnings and errors)"
	}
	header := styles.Header.Width(m.width).Render(title)

	body := m.diag.View()
	if m.diagErr != nil {
		body = styles.DangerText.Render(m.diagErr.Error())
	}
	footer := styles.Footer.Width(m.width).Render("esc back  f warnings/errors  r reload  ↑/↓ scroll")
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if width <= 1 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
