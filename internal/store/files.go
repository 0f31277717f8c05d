package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// LayoutFile describes a saved layout document.
type LayoutFile struct {
	Name     string // Display name (without extension)
	Path     string
	Size     int64
	Modified time.Time
}

// GetLayoutDirectory returns the XDG data directory for layout documents.
func GetLayoutDirectory() (string, error) {
	keepFile, err := xdg.DataFile("blockgrid/layouts/.keep")
	if err != nil {
		return "", fmt.Errorf("failed to get layout directory: %w", err)
	}
	return filepath.Dir(keepFile), nil
}

// ResolvePath maps a bare layout name to a file in the layout directory.
// Anything containing a path separator or an extension is returned as is.
func ResolvePath(name string) (string, error) {
	if strings.ContainsRune(name, os.PathSeparator) || filepath.Ext(name) != "" {
		return name, nil
	}
	dir, err := GetLayoutDirectory()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+".json"), nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads a layout document. Files ending in .toml are parsed as TOML,
// everything else as JSON.
func Load(path string) (BlockData, error) {
	var data BlockData

	// #nosec G304 - path is chosen by the user
	raw, err := os.ReadFile(path)
	if err != nil {
		return data, fmt.Errorf("failed to read layout: %w", err)
	}

	if isTOML(path) {
		err = toml.Unmarshal(raw, &data)
	} else {
		err = json.Unmarshal(raw, &data)
	}
	if err != nil {
		return data, fmt.Errorf("failed to parse layout %s: %w", filepath.Base(path), err)
	}
	return data, nil
}

// Save writes a layout document, creating parent directories as needed.
func Save(path string, data BlockData) error {
	var (
		raw []byte
		err error
	)
	if isTOML(path) {
		raw, err = toml.Marshal(data)
	} else {
		raw, err = json.MarshalIndent(data, "", "  ")
		raw = append(raw, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create layout directory: %w", err)
	}
	if err := os.WriteFile(path, raw, 0600); err != nil {
		return fmt.Errorf("failed to write layout: %w", err)
	}
	return nil
}

// LoadLayoutFiles lists the layout documents in dir, newest first.
func LoadLayoutFiles(dir string) ([]LayoutFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout directory: %w", err)
	}

	var files []LayoutFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".json" && ext != ".toml" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, LayoutFile{
			Name:     strings.TrimSuffix(name, filepath.Ext(name)),
			Path:     filepath.Join(dir, name),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Modified.After(files[j].Modified)
	})
	return files, nil
}

// NewBlockData returns a document with n blocks laid out left to right,
// wrapping at columns.
func NewBlockData(name string, n, columns, w, h int) BlockData {
	data := BlockData{Name: name}
	if columns < 1 {
		columns = 1
	}
	w = min(max(w, 1), columns)
	h = max(h, 1)
	perRow := max(columns/w, 1)
	for i := range n {
		x, y, z := (i%perRow)*w, (i/perRow)*h, i
		ww, hh := w, h
		data.Layout.Positions = append(data.Layout.Positions, Position{
			PositionID: fmt.Sprintf("block-%d", i+1),
			X:          &x,
			Y:          &y,
			W:          &ww,
			H:          &hh,
			Z:          &z,
		})
	}
	return data
}
