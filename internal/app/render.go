package app

import (
	"image/color"
	"slices"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/blockgrid/internal/config"
	"github.com/Gaurav-Gosain/blockgrid/internal/grid"
	"github.com/Gaurav-Gosain/blockgrid/internal/theme"
)

// GetCanvas composes every visible layer for the current frame.
func (m *Editor) GetCanvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas(m.Width, m.Height)
	if m.Width <= 0 || m.Height <= 0 {
		return canvas
	}

	var layers []*lipgloss.Layer
	if config.ShowGrid {
		if l := m.renderGridLayer(); l != nil {
			layers = append(layers, l)
		}
	}

	state := m.Controller.State
	selection := m.Controller.Selection
	for _, r := range m.Store.Rects().Sorted() {
		var border color.Color
		switch {
		case slices.Contains(selection, r.ID):
			border = theme.BorderSelected()
		case r.ID == state.HoveredID:
			border = theme.BorderHovered()
		default:
			border = theme.BlockColor(blockKey(r))
		}
		if l := m.renderBlock(r, border, config.ZIndexBlocks+r.Z); l != nil {
			layers = append(layers, l)
		}
	}

	if g := state.Ghost; g != nil && g.WasDragged {
		for _, it := range g.Items {
			if l := m.renderBlock(it.Current, theme.GhostBorder(), config.ZIndexGhost); l != nil {
				layers = append(layers, l)
			}
		}
	}

	if mq := state.Marquee; mq != nil {
		x, y, w, h := m.CellBox(mq.Bounds())
		layers = append(layers, m.outline(x, y, w, h, theme.MarqueeBorder(), config.ZIndexMarquee, "marquee")...)
	}

	if m.Store.Config().Editable() && !state.Active() {
		layers = append(layers, m.renderHandles()...)
	}

	layers = append(layers, m.renderOverlays()...)

	for _, layer := range layers {
		canvas.Compose(layer)
	}
	return canvas
}

// View renders the editor.
func (m *Editor) View() tea.View {
	var view tea.View
	view.SetContent(lipgloss.Sprint(m.GetCanvas().Render()))
	view.AltScreen = true
	// Hover needs motion events even with no button held.
	view.MouseMode = tea.MouseModeAllMotion
	view.ReportFocus = true
	return view
}

// renderHandles marks the four corners of each selected block.
func (m *Editor) renderHandles() []*lipgloss.Layer {
	rects := m.Store.Rects()
	cfg := m.Store.Config()
	glyph := lipgloss.NewStyle().Foreground(theme.Handle()).Render(config.GetHandleGlyph())

	var layers []*lipgloss.Layer
	for _, id := range m.Controller.Selection {
		r, ok := rects[id]
		if !ok {
			continue
		}
		x, y, w, h := m.CellBox(grid.PixelBounds(r, cfg))
		corners := [][2]int{{x, y}, {x + w - 1, y}, {x, y + h - 1}, {x + w - 1, y + h - 1}}
		for _, c := range corners {
			if !m.inCanvas(c[0], c[1]) {
				continue
			}
			layers = append(layers, lipgloss.NewLayer(glyph).
				X(c[0]).Y(c[1]).Z(config.ZIndexHandles).ID("handle-"+id))
		}
	}
	return layers
}

func (m *Editor) inCanvas(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.CanvasHeight()
}
