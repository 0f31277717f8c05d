package config

import (
	"slices"
	"strings"
)

// Editor actions that can be bound in [keybindings].
const (
	ActionQuit          = "quit"
	ActionHelp          = "toggle_help"
	ActionNewBlock      = "new_block"
	ActionDeleteBlock   = "delete_block"
	ActionSave          = "save"
	ActionToggleMode    = "toggle_mode"
	ActionBringForward  = "bring_forward"
	ActionSendBackward  = "send_backward"
	ActionSelectAll     = "select_all"
	ActionClearSelect   = "clear_selection"
	ActionNextBlock     = "next_block"
	ActionPrevBlock     = "prev_block"
	ActionNudgeLeft     = "nudge_left"
	ActionNudgeRight    = "nudge_right"
	ActionNudgeUp       = "nudge_up"
	ActionNudgeDown     = "nudge_down"
	ActionToggleGrid    = "toggle_grid"
	ActionCycleBorder   = "cycle_border"
	ActionCancelGesture = "cancel"
)

// Actions returns every bindable action name
func Actions() []string {
	return []string{
		ActionQuit, ActionHelp, ActionNewBlock, ActionDeleteBlock, ActionSave,
		ActionToggleMode, ActionBringForward, ActionSendBackward, ActionSelectAll,
		ActionClearSelect, ActionNextBlock, ActionPrevBlock, ActionNudgeLeft,
		ActionNudgeRight, ActionNudgeUp, ActionNudgeDown, ActionToggleGrid,
		ActionCycleBorder, ActionCancelGesture,
	}
}

// DefaultKeybindings returns the default action to keys mapping
func DefaultKeybindings() map[string][]string {
	return map[string][]string{
		ActionQuit:          {"q", "ctrl+c"},
		ActionHelp:          {"?"},
		ActionNewBlock:      {"n"},
		ActionDeleteBlock:   {"d", "delete", "backspace"},
		ActionSave:          {"s", "ctrl+s"},
		ActionToggleMode:    {"p"},
		ActionBringForward:  {"]"},
		ActionSendBackward:  {"["},
		ActionSelectAll:     {"a", "ctrl+a"},
		ActionClearSelect:   {"x"},
		ActionNextBlock:     {"tab"},
		ActionPrevBlock:     {"shift+tab"},
		ActionNudgeLeft:     {"left", "h"},
		ActionNudgeRight:    {"right", "l"},
		ActionNudgeUp:       {"up", "k"},
		ActionNudgeDown:     {"down", "j"},
		ActionToggleGrid:    {"g"},
		ActionCycleBorder:   {"b"},
		ActionCancelGesture: {"esc"},
	}
}

// KeybindRegistry resolves pressed keys to actions
type KeybindRegistry struct {
	keyToAction map[string]string
	bindings    map[string][]string
}

// NewKeybindRegistry builds a registry from the [keybindings] section. When
// two actions claim the same key, the first in Actions() order wins.
func NewKeybindRegistry(bindings map[string][]string) *KeybindRegistry {
	r := &KeybindRegistry{
		keyToAction: make(map[string]string),
		bindings:    make(map[string][]string),
	}
	for _, action := range Actions() {
		keys, ok := bindings[action]
		if !ok {
			continue
		}
		r.bindings[action] = slices.Clone(keys)
		for _, k := range keys {
			k = normalizeKey(k)
			if _, taken := r.keyToAction[k]; !taken {
				r.keyToAction[k] = action
			}
		}
	}
	return r
}

// normalizeKey lowercases chords such as "Ctrl+S" but leaves bare keys alone,
// so "A" and "a" stay distinct.
func normalizeKey(k string) string {
	k = strings.TrimSpace(k)
	if i := strings.LastIndex(k, "+"); i > 0 && i < len(k)-1 {
		return strings.ToLower(k)
	}
	return k
}

// GetAction returns the action bound to key, or "".
func (r *KeybindRegistry) GetAction(key string) string {
	if r == nil {
		return ""
	}
	return r.keyToAction[normalizeKey(key)]
}

// GetKeysForDisplay returns the keys bound to action, joined for the help view
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	if r == nil {
		return ""
	}
	return strings.Join(r.bindings[action], ", ")
}

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// GetKeybindings returns all keybinding sections for the help overlay
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(DefaultKeybindings())
	}

	blocks := KeybindingSection{Title: "BLOCKS"}
	addBinding(&blocks, registry, ActionNewBlock, "New block")
	addBinding(&blocks, registry, ActionDeleteBlock, "Delete selection")
	addBinding(&blocks, registry, ActionBringForward, "Bring forward")
	addBinding(&blocks, registry, ActionSendBackward, "Send backward")
	addBinding(&blocks, registry, ActionNudgeLeft, "Nudge left")
	addBinding(&blocks, registry, ActionNudgeRight, "Nudge right")
	addBinding(&blocks, registry, ActionNudgeUp, "Nudge up")
	addBinding(&blocks, registry, ActionNudgeDown, "Nudge down")

	selection := KeybindingSection{Title: "SELECTION"}
	addBinding(&selection, registry, ActionSelectAll, "Select all")
	addBinding(&selection, registry, ActionClearSelect, "Clear selection")
	addBinding(&selection, registry, ActionNextBlock, "Next block")
	addBinding(&selection, registry, ActionPrevBlock, "Previous block")
	addBinding(&selection, registry, ActionCancelGesture, "Cancel drag")

	editor := KeybindingSection{Title: "EDITOR"}
	addBinding(&editor, registry, ActionSave, "Save layout")
	addBinding(&editor, registry, ActionToggleMode, "Design / preview")
	addBinding(&editor, registry, ActionToggleGrid, "Toggle grid")
	addBinding(&editor, registry, ActionCycleBorder, "Cycle border style")
	addBinding(&editor, registry, ActionHelp, "Toggle help")
	addBinding(&editor, registry, ActionQuit, "Quit")

	var sections []KeybindingSection
	for _, s := range []KeybindingSection{blocks, selection, editor} {
		if len(s.Bindings) > 0 {
			sections = append(sections, s)
		}
	}
	return append(sections, getStaticHelpSections()...)
}

// addBinding adds a keybinding to a section if the action has keys configured
func addBinding(section *KeybindingSection, registry *KeybindRegistry, action, description string) {
	keys := registry.GetKeysForDisplay(action)
	if keys != "" {
		section.Bindings = append(section.Bindings, Keybinding{
			Key:         keys,
			Description: description,
		})
	}
}

// getStaticHelpSections returns the mouse gestures, which are not rebindable
func getStaticHelpSections() []KeybindingSection {
	return []KeybindingSection{
		{
			Title: "MOUSE",
			Bindings: []Keybinding{
				{"Click", "Select block"},
				{"Click again", "Cycle through stacked blocks"},
				{"Shift/Ctrl+Click", "Toggle in selection"},
				{"Drag block", "Move selection"},
				{"Drag corner", "Resize block"},
				{"Drag empty space", "Marquee select"},
				{"Shift+Drag empty", "Add to selection"},
				{"Wheel up/down", "Bring forward / send backward"},
			},
		},
	}
}
