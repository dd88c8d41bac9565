// Package grid implements the server-rendered data grid widget: its
// construction-time options and the two-bucket button registry (toolbar
// and per-row actions) the rendering layer reads.
package grid

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

var (
	// ErrInvalidTarget reports a button placement outside the toolbar/rows set.
	ErrInvalidTarget = errors.New("invalid button target")
	// ErrUnknownButton reports an edit or removal against a slot that holds
	// no button.
	ErrUnknownButton = errors.New("unknown button")
)

// Names further apart than this don't get a "did you mean" suggestion.
const maxSuggestDistance = 2

// Routes carries the named route strings the default buttons link to.
// View and Delete are per-row patterns: "{id}" is replaced with the row id.
type Routes struct {
	Index  string
	Create string
	View   string
	Delete string
	Export string
}

// Column describes one rendered grid column.
type Column struct {
	Key   string
	Title string
}

// Options is the construction-time context of one grid instance.
type Options struct {
	// ID is the stable grid identifier passed to per-row link resolvers.
	ID string
	// Name is the entity display name; default button titles derive from
	// it lower-cased.
	Name    string
	Routes  Routes
	Columns []Column
	// AllowExport enables the export button regardless of the generation
	// list.
	AllowExport bool
	// Generate lists the default buttons to materialize. Nil means all of
	// them; an empty non-nil list means none.
	Generate []string
}

// DefaultGenerate returns the standard generation list.
func DefaultGenerate() []string {
	return []string{ButtonCreate, ButtonView, ButtonDelete, ButtonRefresh, ButtonExport}
}

// Generates reports whether name is in the generation list.
func (o Options) Generates(name string) bool {
	list := o.Generate
	if list == nil {
		list = DefaultGenerate()
	}

	return slices.Contains(list, name)
}

// ButtonConfigurator adjusts a grid's buttons after the defaults are
// populated. New runs it once during construction; implementations call
// the Add/Edit/Remove methods and report the first failure.
type ButtonConfigurator interface {
	ConfigureButtons(g *Grid) error
}

// bucket keeps one target's buttons unique by name while remembering
// first-insertion order for rendering.
type bucket struct {
	order  []string
	byName map[string]*Button
}

func newBucket() *bucket {
	return &bucket{byName: map[string]*Button{}}
}

func (b *bucket) upsert(name string, btn *Button) {
	if _, ok := b.byName[name]; !ok {
		b.order = append(b.order, name)
	}

	b.byName[name] = btn
}

func (b *bucket) remove(name string) {
	if _, ok := b.byName[name]; !ok {
		return
	}

	delete(b.byName, name)

	if i := slices.Index(b.order, name); i >= 0 {
		b.order = slices.Delete(b.order, i, i+1)
	}
}

// Grid owns the button registry of one rendered data grid. An instance is
// built per grid construction, mutated during setup only and read by the
// rendering layer afterwards; it is not safe for concurrent mutation.
type Grid struct {
	opts    Options
	buckets map[Target]*bucket
}

// New builds a grid, populates the default buttons and then runs the
// configurator hook when one is given.
func New(opts Options, conf ButtonConfigurator) (*Grid, error) {
	g := &Grid{opts: opts}
	g.SetDefaultButtons()

	if conf != nil {
		if err := conf.ConfigureButtons(g); err != nil {
			return nil, fmt.Errorf("could not configure grid buttons: %w", err)
		}
	}

	return g, nil
}

// Options returns the construction-time context of the grid.
func (g *Grid) Options() Options {
	return g.opts
}

// SetDefaultButtons resets both buckets to the five standard buttons:
// create, refresh and export on the toolbar, view and delete on the rows.
// New calls it before the configurator hook runs; calling it again wipes
// any custom configuration.
func (g *Grid) SetDefaultButtons() {
	g.buckets = map[Target]*bucket{
		TargetToolbar: newBucket(),
		TargetRows:    newBucket(),
	}

	entity := strings.ToLower(g.opts.Name)

	g.buckets[TargetToolbar].upsert(ButtonCreate, &Button{
		Name:       ButtonCreate,
		Title:      verbTitle("Create", entity),
		Href:       g.opts.Routes.Create,
		Visibility: WhenGenerated(ButtonCreate),
		Attrs:      map[string]string{},
	})
	g.buckets[TargetToolbar].upsert(ButtonRefresh, &Button{
		Name:       ButtonRefresh,
		Title:      "Refresh",
		Href:       g.opts.Routes.Index,
		Visibility: WhenGenerated(ButtonRefresh),
		Attrs:      map[string]string{},
	})
	g.buckets[TargetToolbar].upsert(ButtonExport, &Button{
		Name:       ButtonExport,
		Title:      "Export",
		Href:       g.opts.Routes.Export,
		Visibility: WhenExportable(),
		Attrs:      map[string]string{},
	})

	g.buckets[TargetRows].upsert(ButtonView, &Button{
		Name:       ButtonView,
		Title:      verbTitle("View", entity),
		RowHref:    rowRoute(g.opts.Routes.View),
		Visibility: Always(),
		Attrs:      map[string]string{},
	})
	g.buckets[TargetRows].upsert(ButtonDelete, &Button{
		Name:       ButtonDelete,
		Title:      verbTitle("Delete", entity),
		RowHref:    rowRoute(g.opts.Routes.Delete),
		Visibility: WhenGenerated(ButtonDelete),
		Attrs:      map[string]string{"data-confirm": confirmMessage(entity)},
	})
}

// AddButton inserts or overwrites the (target, name) slot. Other slots in
// the same bucket and in the other bucket stay untouched.
func (g *Grid) AddButton(target Target, name string, b *Button) error {
	if !target.Valid() {
		return invalidTarget(target)
	}

	if name == "" {
		return errors.New("button name cannot be empty")
	}

	if g.buckets == nil {
		g.buckets = map[Target]*bucket{}
	}

	bk, ok := g.buckets[target]
	if !ok {
		bk = newBucket()
		g.buckets[target] = bk
	}

	bk.upsert(name, b)

	return nil
}

// AddToolbarButton inserts b into the toolbar bucket.
func (g *Grid) AddToolbarButton(name string, b *Button) error {
	return g.AddButton(TargetToolbar, name, b)
}

// AddRowButton inserts b into the rows bucket.
func (g *Grid) AddRowButton(name string, b *Button) error {
	return g.AddButton(TargetRows, name, b)
}

// MakeCustomButton builds a button from a property bag and inserts it.
// A position of TargetToolbar routes to the toolbar; any other value,
// including the empty string, routes to the rows bucket. The inserted
// descriptor is returned for further chaining.
func (g *Grid) MakeCustomButton(props Props, position Target) (*Button, error) {
	b, err := NewButton(props)
	if err != nil {
		return nil, err
	}

	if position == TargetToolbar {
		err = g.AddToolbarButton(b.Name, b)
	} else {
		err = g.AddRowButton(b.Name, b)
	}

	if err != nil {
		return nil, err
	}

	return b, nil
}

// EditButtonProperties patches the named button in place, so every
// reference to the descriptor observes the change. Editing a slot that
// holds no button fails with ErrUnknownButton.
func (g *Grid) EditButtonProperties(target Target, name string, props Props) error {
	if !target.Valid() {
		return invalidTarget(target)
	}

	b := g.lookup(target, name)
	if b == nil {
		return g.unknownButton(target, name)
	}

	if err := b.Apply(props); err != nil {
		return fmt.Errorf("could not edit button %q: %w", name, err)
	}

	return nil
}

// EditToolbarButton patches the named toolbar button in place.
func (g *Grid) EditToolbarButton(name string, props Props) error {
	return g.EditButtonProperties(TargetToolbar, name, props)
}

// EditRowButton patches the named row button in place.
func (g *Grid) EditRowButton(name string, props Props) error {
	return g.EditButtonProperties(TargetRows, name, props)
}

// RemoveButton drops the (target, name) slot. Removing a name that is not
// present is a no-op.
func (g *Grid) RemoveButton(target Target, name string) error {
	if !target.Valid() {
		return invalidTarget(target)
	}

	if bk, ok := g.buckets[target]; ok {
		bk.remove(name)
	}

	return nil
}

// Button returns the descriptor in the (target, name) slot, or nil when
// the slot is empty or the target is not a valid bucket.
func (g *Grid) Button(target Target, name string) *Button {
	return g.lookup(target, name)
}

// Buttons returns the bucket's descriptors in insertion order.
func (g *Grid) Buttons(target Target) []*Button {
	bk, ok := g.buckets[target]
	if !ok {
		return nil
	}

	buttons := make([]*Button, 0, len(bk.order))
	for _, name := range bk.order {
		buttons = append(buttons, bk.byName[name])
	}

	return buttons
}

// VisibleButtons evaluates each visibility predicate against the grid
// options and returns the renderable subset, in insertion order.
func (g *Grid) VisibleButtons(target Target) []*Button {
	var visible []*Button

	for _, b := range g.Buttons(target) {
		if b.Visibility.Visible(g.opts) {
			visible = append(visible, b)
		}
	}

	return visible
}

// ButtonNames returns the bucket's names in insertion order.
func (g *Grid) ButtonNames(target Target) []string {
	bk, ok := g.buckets[target]
	if !ok {
		return nil
	}

	return slices.Clone(bk.order)
}

// ResolveHref returns the URL a button points at for one rendered row.
// Toolbar buttons pass a nil item and resolve to the static href.
func (g *Grid) ResolveHref(b *Button, item RowItem, index int) string {
	if b.RowHref != nil && item != nil {
		return b.RowHref(g.opts.ID, item, index)
	}

	return b.Href
}

func (g *Grid) lookup(target Target, name string) *Button {
	bk, ok := g.buckets[target]
	if !ok {
		return nil
	}

	return bk.byName[name]
}

func (g *Grid) unknownButton(target Target, name string) error {
	if suggestion := g.closestName(target, name); suggestion != "" {
		return fmt.Errorf("%w %q in %s bucket (did you mean %q?)", ErrUnknownButton, name, target, suggestion)
	}

	return fmt.Errorf("%w %q in %s bucket", ErrUnknownButton, name, target)
}

// closestName picks the registered name nearest to the misspelled one, or
// "" when nothing is close enough to suggest.
func (g *Grid) closestName(target Target, name string) string {
	best := ""
	bestDistance := maxSuggestDistance + 1

	for _, existing := range g.ButtonNames(target) {
		if d := levenshtein.ComputeDistance(name, existing); d < bestDistance {
			best, bestDistance = existing, d
		}
	}

	return best
}

// rowRoute builds a per-row resolver substituting the row id into a route
// pattern.
func rowRoute(pattern string) RowLink {
	return func(_ string, item RowItem, _ int) string {
		return strings.ReplaceAll(pattern, "{id}", item.RowID())
	}
}

func verbTitle(verb, entity string) string {
	if entity == "" {
		return verb
	}

	return verb + " " + entity
}

func confirmMessage(entity string) string {
	if entity == "" {
		return "Delete this entry?"
	}

	return "Delete this " + entity + "?"
}
