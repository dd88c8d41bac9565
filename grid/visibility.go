package grid

type visibilityKind int

const (
	visibleAlways visibilityKind = iota
	visibleNever
	visibleWhenGenerated
	visibleWhenExportable
)

// Visibility decides whether a button is rendered. It is a closed set of
// predicate variants evaluated lazily against the grid options on every
// render pass. The zero value renders always.
type Visibility struct {
	kind   visibilityKind
	button string
}

// Always renders the button unconditionally.
func Always() Visibility {
	return Visibility{kind: visibleAlways}
}

// Hidden keeps the button in the registry but never renders it.
func Hidden() Visibility {
	return Visibility{kind: visibleNever}
}

// WhenGenerated renders the button only while name is in the grid's
// generation list.
func WhenGenerated(name string) Visibility {
	return Visibility{kind: visibleWhenGenerated, button: name}
}

// WhenExportable renders the button when exporting is allowed on the grid
// or "export" is in the generation list.
func WhenExportable() Visibility {
	return Visibility{kind: visibleWhenExportable}
}

// Visible evaluates the predicate against the given grid options.
func (v Visibility) Visible(opts Options) bool {
	switch v.kind {
	case visibleNever:
		return false
	case visibleWhenGenerated:
		return opts.Generates(v.button)
	case visibleWhenExportable:
		return opts.AllowExport || opts.Generates(ButtonExport)
	default:
		return true
	}
}
