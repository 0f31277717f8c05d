package app

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/blockgrid/internal/config"
	"github.com/Gaurav-Gosain/blockgrid/internal/grid"
	"github.com/Gaurav-Gosain/blockgrid/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

func (m *Editor) renderOverlays() []*lipgloss.Layer {
	var layers []*lipgloss.Layer

	if len(m.Store.Rects()) == 0 && !m.ShowHelp {
		layers = append(layers, m.renderWelcome())
	}

	layers = append(layers, lipgloss.NewLayer(m.renderStatusBar()).
		X(0).Y(m.CanvasHeight()).Z(config.ZIndexStatus).ID("status"))

	if len(m.Notifications) > 0 {
		n := m.Notifications[len(m.Notifications)-1]
		content := m.renderNotification(n)
		x := max(m.Width-lipgloss.Width(content), 0)
		layers = append(layers, lipgloss.NewLayer(content).
			X(x).Y(m.CanvasHeight()).Z(config.ZIndexNotification).ID("notification"))
	}

	if m.ShowHelp {
		layers = append(layers, lipgloss.NewLayer(m.RenderHelpMenu(m.Width, m.Height)).
			X(0).Y(0).Z(config.ZIndexHelp).ID("help"))
	}
	return layers
}

func (m *Editor) renderWelcome() *lipgloss.Layer {
	newKeys := m.KeybindRegistry.GetKeysForDisplay(config.ActionNewBlock)
	helpKeys := m.KeybindRegistry.GetKeysForDisplay(config.ActionHelp)

	title := lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true).Render("blockgrid")
	instruction := lipgloss.NewStyle().Foreground(lipgloss.Color("7")).
		Render(fmt.Sprintf("Press '%s' to add a block, '%s' for help", newKeys, helpKeys))

	box := lipgloss.NewStyle().
		Border(getBorder()).
		BorderForeground(lipgloss.Color("6")).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Center, title, "", instruction))

	w, h := lipgloss.Width(box), lipgloss.Height(box)
	x := max((m.Width-w)/2, 0)
	y := max((m.CanvasHeight()-h)/2, 0)
	return lipgloss.NewLayer(box).X(x).Y(y).Z(config.ZIndexGhost).ID("welcome")
}

func (m *Editor) renderStatusBar() string {
	cfg := m.Store.Config()

	badge := lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#000000"))
	if cfg.Mode == grid.ModePreview {
		badge = badge.Background(theme.ModePreview())
	} else {
		badge = badge.Background(theme.ModeDesign())
	}

	name := m.Store.Data().Name
	if name == "" {
		name = m.Path
	}
	if name == "" {
		name = "untitled"
	}
	if m.Store.Dirty() {
		name += " *"
	}

	parts := []string{name, fmt.Sprintf("%d blocks", len(m.Store.Rects()))}
	if n := len(m.Controller.Selection); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	if h := m.Controller.State.HoveredID; h != "" {
		if r, ok := m.Store.Rects()[h]; ok {
			parts = append(parts, blockLabel(r)+" "+blockInfo(r))
		}
	}
	if m.IsSSHMode && m.SSHSession != nil {
		parts = append(parts, "ssh:"+m.SSHSession.User())
	}
	if phase := m.Controller.State.Phase().String(); phase != "idle" {
		parts = append(parts, phase)
	}

	text := badge.Render(strings.ToUpper(string(cfg.Mode))) + " " + strings.Join(parts, " · ")
	return lipgloss.NewStyle().
		Background(theme.StatusBg()).
		Foreground(theme.StatusFg()).
		Width(m.Width).
		MaxWidth(m.Width).
		Render(ansi.Truncate(text, m.Width, "…"))
}

func (m *Editor) renderNotification(n Notification) string {
	style := lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#000000"))
	switch n.Type {
	case "error", "warning":
		style = style.Background(theme.NotificationError())
	default:
		style = style.Background(theme.NotificationSuccess())
	}
	return style.Render(ansi.Truncate(n.Message, max(m.Width-2, 1), "…"))
}

// RenderHelpMenu renders the keybinding overlay centred in a width x height area.
func (m *Editor) RenderHelpMenu(width, height int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.HelpKeyBadge()).Bold(true).Width(18)
	descStyle := lipgloss.NewStyle().Foreground(theme.HelpGray())
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)

	var lines []string
	for i, section := range config.GetKeybindings(m.KeybindRegistry) {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, titleStyle.Render(section.Title))
		for _, b := range section.Bindings {
			lines = append(lines, keyStyle.Render(ansi.Truncate(b.Key, 17, "…"))+descStyle.Render(b.Description))
		}
	}

	// Drop lines that cannot fit rather than overflow the terminal.
	if maxLines := height - 4; maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}

	box := lipgloss.NewStyle().
		Border(getBorder()).
		BorderForeground(lipgloss.Color("6")).
		Padding(0, 1).
		Width(min(config.HelpWidth, width)).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
