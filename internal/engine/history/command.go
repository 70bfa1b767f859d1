package history

import (
	"fmt"

	"github.com/loomtext/loom/internal/engine/grapheme"
	"github.com/loomtext/loom/internal/engine/piecetable"
)

// Range is an alias for piecetable.Range for convenience.
type Range = piecetable.Range

// Command is a self-describing, reversible edit record. The concrete
// types are Insert, Delete, and Compound; applying a command or its
// inverse is the caller's responsibility.
type Command interface {
	// Description returns a human-readable description of the command.
	Description() string
}

// Insert records text inserted at a grapheme offset.
type Insert struct {
	Text   string
	Offset int
}

// Description returns a human-readable description.
func (c Insert) Description() string {
	switch c.Text {
	case "\n", "\r\n", "\r":
		return "Insert newline"
	case "\t":
		return "Insert tab"
	}
	if n := grapheme.Count(c.Text); n > 20 {
		return fmt.Sprintf("Insert %d characters", n)
	}
	return fmt.Sprintf("Insert %q", c.Text)
}

// Delete records text removed from a grapheme range. Text holds the
// removed content so the command can be inverted.
type Delete struct {
	Text  string
	Range Range
}

// Description returns a human-readable description.
func (c Delete) Description() string {
	if n := grapheme.Count(c.Text); n > 20 {
		return fmt.Sprintf("Delete %d characters", n)
	}
	return fmt.Sprintf("Delete %q", c.Text)
}

// Compound wraps an ordered list of commands as one atomic user-visible
// step. Undo applies the inner inverses in reverse order; redo replays
// them in original order.
type Compound struct {
	Name     string
	Commands []Command
}

// Description returns the compound's name, or a summary if unnamed.
func (c Compound) Description() string {
	if c.Name != "" {
		return c.Name
	}
	if len(c.Commands) == 1 {
		return c.Commands[0].Description()
	}
	return fmt.Sprintf("%d operations", len(c.Commands))
}

// IsEmpty returns true if the compound has no commands.
func (c Compound) IsEmpty() bool {
	return len(c.Commands) == 0
}
