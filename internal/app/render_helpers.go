package app

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/blockgrid/internal/config"
	"github.com/Gaurav-Gosain/blockgrid/internal/grid"
	"github.com/Gaurav-Gosain/blockgrid/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

func getBorder() lipgloss.Border {
	return config.GetBorderForStyle()
}

// blockKey is the color key of a block: blocks showing the same content
// share a color.
func blockKey(r grid.Rect) string {
	if r.ContentID != "" {
		return r.ContentID
	}
	return r.ID
}

// blockLabel returns the display name of a block. Generated ids are shortened.
func blockLabel(r grid.Rect) string {
	label := r.ContentID
	if label == "" {
		label = r.ID
	}
	if len(label) > 12 && strings.Count(label, "-") == 4 {
		return label[:8]
	}
	return label
}

func blockInfo(r grid.Rect) string {
	return fmt.Sprintf("%d,%d %dx%d z%d", r.X, r.Y, r.W, r.H, r.Z)
}

// clipBox trims a cell box to the grid area. ok is false when nothing is left.
func (m *Editor) clipBox(x, y, w, h int) (int, int, bool) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.CanvasHeight() {
		return 0, 0, false
	}
	w = min(w, m.Width-x)
	h = min(h, m.CanvasHeight()-y)
	return w, h, w > 0 && h > 0
}

// renderBlock draws r as a bordered box at stacking level z.
func (m *Editor) renderBlock(r grid.Rect, border color.Color, z int) *lipgloss.Layer {
	cfg := m.Store.Config()
	b := grid.PixelBounds(r, cfg)
	if g := cfg.Gutter / 2; g > 0 {
		b.Left += g
		b.Top += g
		b.Right -= g
		b.Bottom -= g
	}
	x, y, w, h := m.CellBox(b)
	w, h, ok := m.clipBox(x, y, w, h)
	if !ok {
		return nil
	}

	style := lipgloss.NewStyle().
		Foreground(theme.BlockFg()).
		Width(w).
		Height(h).
		MaxWidth(w).
		MaxHeight(h)

	inner := w
	if w >= 2 && h >= 2 {
		style = style.Border(getBorder()).BorderForeground(border)
		inner = w - 2
	} else {
		style = style.Background(border)
	}

	lines := []string{lipgloss.NewStyle().Bold(true).Render(ansi.Truncate(blockLabel(r), inner, "…"))}
	if h > 3 {
		lines = append(lines, ansi.Truncate(blockInfo(r), inner, "…"))
	}
	return lipgloss.NewLayer(style.Render(strings.Join(lines, "\n"))).
		X(x).Y(y).Z(z).ID(r.ID)
}

// outline draws only the edges of a box so the blocks under it stay visible.
func (m *Editor) outline(x, y, w, h int, c color.Color, z int, id string) []*lipgloss.Layer {
	w, h, ok := m.clipBox(x, y, w, h)
	if !ok || w < 2 || h < 2 {
		return nil
	}
	b := getBorder()
	paint := lipgloss.NewStyle().Foreground(c).Render

	top := paint(b.TopLeft + strings.Repeat(b.Top, w-2) + b.TopRight)
	bottom := paint(b.BottomLeft + strings.Repeat(b.Bottom, w-2) + b.BottomRight)
	layers := []*lipgloss.Layer{
		lipgloss.NewLayer(top).X(x).Y(y).Z(z).ID(id + "-top"),
		lipgloss.NewLayer(bottom).X(x).Y(y + h - 1).Z(z).ID(id + "-bottom"),
	}
	if h > 2 {
		left := paint(strings.TrimSuffix(strings.Repeat(b.Left+"\n", h-2), "\n"))
		right := paint(strings.TrimSuffix(strings.Repeat(b.Right+"\n", h-2), "\n"))
		layers = append(layers,
			lipgloss.NewLayer(left).X(x).Y(y+1).Z(z).ID(id+"-left"),
			lipgloss.NewLayer(right).X(x+w-1).Y(y+1).Z(z).ID(id+"-right"),
		)
	}
	return layers
}

// renderGridLayer draws a dot at every column and row line intersection.
func (m *Editor) renderGridLayer() *lipgloss.Layer {
	cfg := m.Store.Config()
	height := m.CanvasHeight()
	if height <= 0 || cfg.StepX <= 0 || cfg.StepY <= 0 {
		return nil
	}

	rows := make([][]rune, height)
	for i := range rows {
		rows[i] = []rune(strings.Repeat(" ", m.Width))
	}
	dot := []rune(config.GetGridDot())[0]
	for r := 0; ; r++ {
		_, cy, _, _ := m.CellBox(grid.Bounds{Top: cfg.Padding + float64(r)*cfg.StepY})
		if cy >= height {
			break
		}
		for c := 0; c <= cfg.Columns; c++ {
			cx, _, _, _ := m.CellBox(grid.Bounds{Left: cfg.Padding + float64(c)*cfg.StepX})
			if cx < m.Width {
				rows[cy][cx] = dot
			}
		}
	}

	lines := make([]string, height)
	for i, row := range rows {
		lines[i] = string(row)
	}
	content := lipgloss.NewStyle().Foreground(theme.GridDot()).Render(strings.Join(lines, "\n"))
	return lipgloss.NewLayer(content).X(0).Y(0).Z(config.ZIndexGrid).ID("grid")
}
