package grid

import (
	"fmt"
	"strings"
)

// Target names the placement area a button is rendered into.
type Target string

const (
	// TargetToolbar places a button in the bar rendered once above the grid.
	TargetToolbar Target = "toolbar"
	// TargetRows places a button in the action cell rendered once per data row.
	TargetRows Target = "rows"
)

// Targets returns the closed set of valid placements.
func Targets() []Target {
	return []Target{TargetToolbar, TargetRows}
}

func (t Target) Valid() bool {
	return t == TargetToolbar || t == TargetRows
}

// ParseTarget maps a configuration string onto a Target.
func ParseTarget(s string) (Target, error) {
	t := Target(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", invalidTarget(t)
	}

	return t, nil
}

func invalidTarget(t Target) error {
	return fmt.Errorf("%w %q: valid targets are %s", ErrInvalidTarget, string(t), targetList())
}

func targetList() string {
	names := make([]string, 0, len(Targets()))
	for _, t := range Targets() {
		names = append(names, string(t))
	}

	return strings.Join(names, ", ")
}
