package sim

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument marks configuration errors that are rejected before any
// simulation executes. Callers test for it with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// Layout is an ordered sequence of distinct station names. The order is both
// the route every job follows and the variable the optimizer searches over.
type Layout []string

// NewLayout copies names into a Layout and validates it.
func NewLayout(names ...string) (Layout, error) {
	l := make(Layout, len(names))
	copy(l, names)
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Validate checks that the layout is non-empty and that every station name is
// non-blank and unique.
func (l Layout) Validate() error {
	if len(l) == 0 {
		return fmt.Errorf("layout must contain at least one station: %w", ErrInvalidArgument)
	}
	seen := make(map[string]bool, len(l))
	for i, name := range l {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("layout[%d]: station name must not be empty: %w", i, ErrInvalidArgument)
		}
		if seen[name] {
			return fmt.Errorf("layout[%d]: duplicate station %q: %w", i, name, ErrInvalidArgument)
		}
		seen[name] = true
	}
	return nil
}

// Clone returns an independent copy of the layout.
func (l Layout) Clone() Layout {
	out := make(Layout, len(l))
	copy(out, l)
	return out
}

// Swap returns a copy of the layout with positions i and j exchanged.
// The receiver is left untouched.
func (l Layout) Swap(i, j int) Layout {
	if i < 0 || i >= len(l) || j < 0 || j >= len(l) {
		panic(fmt.Sprintf("Swap: positions (%d, %d) out of range for layout of length %d", i, j, len(l)))
	}
	out := l.Clone()
	out[i], out[j] = out[j], out[i]
	return out
}

// IsPermutationOf reports whether l holds exactly the same stations as other,
// in any order.
func (l Layout) IsPermutationOf(other Layout) bool {
	if len(l) != len(other) {
		return false
	}
	counts := make(map[string]int, len(l))
	for _, name := range other {
		counts[name]++
	}
	for _, name := range l {
		counts[name]--
		if counts[name] < 0 {
			return false
		}
	}
	return true
}

func (l Layout) String() string {
	return "[" + strings.Join(l, " ") + "]"
}
