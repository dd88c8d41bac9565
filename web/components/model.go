package components

// ButtonView is one button ready for markup: link resolved, visibility
// already decided by the caller.
type ButtonView struct {
	Name  string
	Title string
	Href  string
	// Method selects the markup: "" renders a link, "post" renders a
	// one-button form.
	Method string
	Attrs  map[string]string
}

// RowView is one rendered table row.
type RowView struct {
	ID      string
	Cells   []string
	Buttons []ButtonView
}

type StatusSummary struct {
	Label string
	Count int
}

// BoardContext is everything the board page needs.
type BoardContext struct {
	Title   string
	Columns []string
	Toolbar []ButtonView
	Rows    []RowView
	Summary []StatusSummary
}

type FieldOption struct {
	Value    string
	Label    string
	Selected bool
}

type TaskFormContext struct {
	Title    string
	Action   string
	Statuses []FieldOption
}

type Field struct {
	Label string
	Value string
}

type TaskViewContext struct {
	Title   string
	Fields  []Field
	Buttons []ButtonView
}
