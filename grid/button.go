package grid

import (
	"fmt"
	"sort"
	"strings"
)

// Names of the default buttons materialized by SetDefaultButtons.
const (
	ButtonCreate  = "create"
	ButtonView    = "view"
	ButtonDelete  = "delete"
	ButtonRefresh = "refresh"
	ButtonExport  = "export"
)

// unnamedButton is what a custom button is called when its property bag
// carries no name. Callers should always supply one.
const unnamedButton = "unknown"

// RowItem is the minimal view of a data row that a per-row link resolver
// needs.
type RowItem interface {
	RowID() string
}

// RowLink resolves the URL of a per-row button for one rendered row.
type RowLink func(gridID string, item RowItem, index int) string

// Props is a bag of descriptor field overrides keyed by field name.
// The known keys (name, title, href, rowhref, visibility) patch the
// matching Button field and are type-checked; any other key lands in the
// Attrs extension map.
type Props map[string]any

// Button describes one grid action: its label, its link and its
// visibility rule. Extra properties live in Attrs and are emitted as HTML
// attributes by the rendering layer.
type Button struct {
	Name  string
	Title string
	// Href is the static link of toolbar-style buttons. Ignored while
	// RowHref is set and a row is being rendered.
	Href string
	// RowHref computes the link per rendered row.
	RowHref    RowLink
	Visibility Visibility
	Attrs      map[string]string
}

// NewButton builds a generic button from a property bag. A bag without a
// name yields a button called "unknown".
func NewButton(props Props) (*Button, error) {
	b := &Button{Name: unnamedButton, Attrs: map[string]string{}}
	if err := b.Apply(props); err != nil {
		return nil, err
	}

	return b, nil
}

// Apply patches the button with the given overrides, key by key in sorted
// key order. There is no rollback: keys applied before a failure stay
// applied.
func (b *Button) Apply(props Props) error {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		if err := b.applyProp(k, props[k]); err != nil {
			return err
		}
	}

	return nil
}

func (b *Button) applyProp(key string, value any) error {
	switch strings.ToLower(key) {
	case "name":
		s, err := stringProp(key, value)
		if err != nil {
			return err
		}

		b.Name = s
	case "title":
		s, err := stringProp(key, value)
		if err != nil {
			return err
		}

		b.Title = s
	case "href":
		s, err := stringProp(key, value)
		if err != nil {
			return err
		}

		b.Href = s
	case "rowhref":
		switch fn := value.(type) {
		case RowLink:
			b.RowHref = fn
		case func(string, RowItem, int) string:
			b.RowHref = fn
		default:
			return fmt.Errorf("property %q: expected grid.RowLink, got %T", key, value)
		}
	case "visibility":
		v, ok := value.(Visibility)
		if !ok {
			return fmt.Errorf("property %q: expected grid.Visibility, got %T", key, value)
		}

		b.Visibility = v
	default:
		if b.Attrs == nil {
			b.Attrs = map[string]string{}
		}

		b.Attrs[key] = fmt.Sprint(value)
	}

	return nil
}

func stringProp(key string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("property %q: expected string, got %T", key, value)
	}

	return s, nil
}
