// Package store converts between persisted layout positions and the live rect
// dictionary, and commits finished gestures back into the positions.
//
// The positions list is the source of truth. The rect dictionary and the
// container size are derived from it and refreshed after every commit.
package store

import (
	"fmt"
	"slices"

	"github.com/Gaurav-Gosain/blockgrid/internal/grid"
	"github.com/google/uuid"
)

// Position is one persisted block placement. Missing geometry fields take
// their defaults when the layout is derived.
type Position struct {
	PositionID string `json:"positionId,omitempty" toml:"position_id,omitempty"`
	X          *int   `json:"x,omitempty" toml:"x,omitempty"`
	Y          *int   `json:"y,omitempty" toml:"y,omitempty"`
	W          *int   `json:"w,omitempty" toml:"w,omitempty"`
	H          *int   `json:"h,omitempty" toml:"h,omitempty"`
	Z          *int   `json:"z,omitempty" toml:"z,omitempty"`
	ContentID  string `json:"contentId,omitempty" toml:"content_id,omitempty"`
}

// Layout holds the ordered position list.
type Layout struct {
	Positions []Position `json:"positions" toml:"positions"`
}

// BlockData is a persisted layout document.
type BlockData struct {
	Name   string `json:"name,omitempty" toml:"name,omitempty"`
	Layout Layout `json:"layout" toml:"layout"`
}

// LayoutState is the view derived from BlockData.
type LayoutState struct {
	Rects     grid.Rects
	Container grid.Size
}

// positionKey returns the rect id for the position at index i.
func positionKey(p Position, i int) string {
	if p.PositionID != "" {
		return p.PositionID
	}
	return fmt.Sprintf("pos-%d", i+1)
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// RectFromPosition builds the rect for the position at index i.
func RectFromPosition(p Position, i int) grid.Rect {
	return grid.Rect{
		ID:        positionKey(p, i),
		X:         intOr(p.X, 0),
		Y:         intOr(p.Y, 0),
		W:         intOr(p.W, 1),
		H:         intOr(p.H, 1),
		Z:         intOr(p.Z, i),
		ContentID: p.ContentID,
	}
}

// Derive builds the layout state. A non-nil override is used verbatim as the
// rect dictionary; otherwise the rects are rebuilt from the positions.
func Derive(data BlockData, cfg grid.Config, override grid.Rects) LayoutState {
	rects := override
	if rects == nil {
		rects = make(grid.Rects, len(data.Layout.Positions))
		for i, p := range data.Layout.Positions {
			r := RectFromPosition(p, i)
			rects[r.ID] = r
		}
	}
	return LayoutState{
		Rects:     rects,
		Container: grid.ContainerSize(rects, cfg),
	}
}

// Store owns a layout document and its derived state.
type Store struct {
	cfg   grid.Config
	data  BlockData
	state LayoutState
	dirty bool
}

// New creates a store for data using the given grid metrics.
func New(data BlockData, cfg grid.Config) *Store {
	s := &Store{cfg: cfg, data: data}
	s.state = Derive(s.data, cfg, nil)
	return s
}

// Data returns the persisted document.
func (s *Store) Data() BlockData { return s.data }

// State returns the derived layout state.
func (s *Store) State() LayoutState { return s.state }

// Rects returns the live rect dictionary.
func (s *Store) Rects() grid.Rects { return s.state.Rects }

// Config returns the grid metrics.
func (s *Store) Config() grid.Config { return s.cfg }

// SetConfig replaces the grid metrics and refreshes the container size.
func (s *Store) SetConfig(cfg grid.Config) {
	s.cfg = cfg
	s.state = Derive(s.data, cfg, s.state.Rects)
}

// Dirty reports whether the document changed since the last MarkClean.
func (s *Store) Dirty() bool { return s.dirty }

// MarkClean resets the dirty flag, typically after a save.
func (s *Store) MarkClean() { s.dirty = false }

// Commit merges patches into the rects and rewrites the matching positions.
// Patches for ids with no live rect are dropped.
func (s *Store) Commit(patches []grid.Patch) {
	merged := s.state.Rects.Clone()
	changed := make(map[string]grid.Rect, len(patches))
	for _, p := range patches {
		if _, ok := merged[p.ID]; !ok {
			continue
		}
		r := p.Rect
		r.ID = p.ID
		merged[p.ID] = r
		changed[p.ID] = r
	}
	if len(changed) == 0 {
		return
	}

	positions := slices.Clone(s.data.Layout.Positions)
	for i, pos := range positions {
		r, ok := changed[positionKey(pos, i)]
		if !ok {
			continue
		}
		positions[i] = writePosition(pos, r)
	}
	s.data.Layout.Positions = positions
	s.state = Derive(s.data, s.cfg, merged)
	s.dirty = true
}

func writePosition(p Position, r grid.Rect) Position {
	x, y, w, h, z := r.X, r.Y, r.W, r.H, r.Z
	p.X, p.Y, p.W, p.H, p.Z = &x, &y, &w, &h, &z
	p.ContentID = r.ContentID
	return p
}

// Add appends a new block on top of every existing one and returns its id.
// The rect is clamped to the grid; r.ID and r.Z are ignored.
func (s *Store) Add(r grid.Rect) string {
	r = grid.Clamp(r, s.cfg.Columns)
	r.ID = uuid.New().String()
	r.Z = len(s.state.Rects)

	s.data.Layout.Positions = append(slices.Clone(s.data.Layout.Positions),
		writePosition(Position{PositionID: r.ID}, r))
	merged := s.state.Rects.Clone()
	merged[r.ID] = r
	s.state = Derive(s.data, s.cfg, merged)
	s.dirty = true
	return r.ID
}

// Remove deletes the block with the given id and renumbers the remaining
// rects so z stays dense. It reports whether anything was removed.
func (s *Store) Remove(id string) bool {
	if _, ok := s.state.Rects[id]; !ok {
		return false
	}

	// Synthesized ids depend on the index, so pin them before the list shifts.
	var positions []Position
	for i, p := range s.data.Layout.Positions {
		key := positionKey(p, i)
		if key == id {
			continue
		}
		p.PositionID = key
		positions = append(positions, p)
	}
	s.data.Layout.Positions = positions

	merged := s.state.Rects.Clone()
	delete(merged, id)
	s.state = Derive(s.data, s.cfg, merged)
	s.dirty = true

	var patches []grid.Patch
	for z, r := range merged.Sorted() {
		if r.Z != z {
			r.Z = z
			patches = append(patches, grid.Patch{ID: r.ID, Rect: r})
		}
	}
	s.Commit(patches)
	return true
}
