// Package tape replays scripted pointer gestures against a block editor.
//
// A tape is a plain text file with one command per line. Coordinates are
// terminal cells, the same ones a mouse reports:
//
//	# move block-2 two columns right
//	Click 10 3
//	Drag 10 3 16 3
//	Wheel up
//
// Blank lines and lines starting with # are ignored.
package tape

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CommandType identifies a tape command.
type CommandType string

// Command types
const (
	CommandTypeDown      CommandType = "Down"
	CommandTypeMove      CommandType = "Move"
	CommandTypeUp        CommandType = "Up"
	CommandTypeClick     CommandType = "Click"
	CommandTypeDrag      CommandType = "Drag"
	CommandTypeWheel     CommandType = "Wheel"
	CommandTypeSelect    CommandType = "Select"
	CommandTypeSelectAll CommandType = "SelectAll"
	CommandTypeNudge     CommandType = "Nudge"
	CommandTypeNew       CommandType = "New"
	CommandTypeDelete    CommandType = "Delete"
	CommandTypeMode      CommandType = "Mode"
	CommandTypeLeave     CommandType = "Leave"
)

// ErrUnknownCommand is returned by Parse for a line it cannot read.
var ErrUnknownCommand = errors.New("unknown command")

// argSpec is the accepted argument count of a command. Modifier marks
// commands that take a trailing "mod" flag.
type argSpec struct {
	min, max int
	ints     bool
	modifier bool
}

var commandSpecs = map[CommandType]argSpec{
	CommandTypeDown:      {min: 2, max: 2, ints: true, modifier: true},
	CommandTypeMove:      {min: 2, max: 2, ints: true},
	CommandTypeUp:        {min: 0, max: 2, ints: true},
	CommandTypeClick:     {min: 2, max: 2, ints: true, modifier: true},
	CommandTypeDrag:      {min: 4, max: 4, ints: true, modifier: true},
	CommandTypeWheel:     {min: 1, max: 1},
	CommandTypeSelect:    {min: 0, max: -1},
	CommandTypeSelectAll: {},
	CommandTypeNudge:     {min: 2, max: 2, ints: true},
	CommandTypeNew:       {},
	CommandTypeDelete:    {},
	CommandTypeMode:      {min: 1, max: 1},
	CommandTypeLeave:     {},
}

// Command is one parsed tape line.
type Command struct {
	Type     CommandType
	Args     []string
	Ints     []int
	Modifier bool
	Line     int
}

func (c Command) String() string {
	s := string(c.Type)
	if len(c.Args) > 0 {
		s += " " + strings.Join(c.Args, " ")
	}
	if c.Modifier {
		s += " mod"
	}
	return s
}

// lookupType matches a command name case-insensitively.
func lookupType(name string) (CommandType, bool) {
	for t := range commandSpecs {
		if strings.EqualFold(string(t), name) {
			return t, true
		}
	}
	return "", false
}

// Parse reads every command from r.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		cmd, err := parseLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		cmd.Line = line
		cmds = append(cmds, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tape: %w", err)
	}
	return cmds, nil
}

func parseLine(text string) (Command, error) {
	fields := strings.Fields(text)
	t, ok := lookupType(fields[0])
	if !ok {
		return Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, fields[0])
	}
	spec := commandSpecs[t]
	cmd := Command{Type: t, Args: fields[1:]}

	if spec.modifier && len(cmd.Args) > 0 && strings.EqualFold(cmd.Args[len(cmd.Args)-1], "mod") {
		cmd.Modifier = true
		cmd.Args = cmd.Args[:len(cmd.Args)-1]
	}

	n := len(cmd.Args)
	if n < spec.min || (spec.max >= 0 && n > spec.max) {
		return Command{}, fmt.Errorf("%s takes %s, got %d", t, argCount(spec), n)
	}
	if t == CommandTypeUp && n == 1 {
		return Command{}, fmt.Errorf("%s takes no arguments or x y", t)
	}

	if spec.ints {
		for _, a := range cmd.Args {
			v, err := strconv.Atoi(a)
			if err != nil {
				return Command{}, fmt.Errorf("%s: invalid number %q", t, a)
			}
			cmd.Ints = append(cmd.Ints, v)
		}
	}

	switch t {
	case CommandTypeWheel:
		if d := strings.ToLower(cmd.Args[0]); d != "up" && d != "down" {
			return Command{}, fmt.Errorf("wheel direction must be up or down, got %q", cmd.Args[0])
		}
	case CommandTypeMode:
		if m := strings.ToLower(cmd.Args[0]); m != "design" && m != "preview" {
			return Command{}, fmt.Errorf("mode must be design or preview, got %q", cmd.Args[0])
		}
	}
	return cmd, nil
}

func argCount(s argSpec) string {
	switch {
	case s.max < 0:
		return fmt.Sprintf("at least %d arguments", s.min)
	case s.min == s.max:
		return fmt.Sprintf("%d arguments", s.min)
	default:
		return fmt.Sprintf("%d to %d arguments", s.min, s.max)
	}
}
