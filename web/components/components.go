// Package components renders the task board pages. The components are
// plain templ.ComponentFunc values, so handlers compose and render them
// like any generated templ view.
package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// confirmScript intercepts clicks and submits on elements carrying a
// data-confirm attribute.
const confirmScript = `<script>
document.addEventListener('submit', function (e) {
  var msg = e.target.getAttribute('data-confirm');
  if (msg && !window.confirm(msg)) { e.preventDefault(); }
});
document.addEventListener('click', function (e) {
  var el = e.target.closest ? e.target.closest('a[data-confirm]') : null;
  if (el && !window.confirm(el.getAttribute('data-confirm'))) { e.preventDefault(); }
});
</script>`

// htmlWriter keeps the first write error and swallows the rest, so the
// component bodies read top to bottom.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) write(s string) {
	if h.err != nil {
		return
	}

	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) writef(format string, args ...any) {
	if h.err != nil {
		return
	}

	_, h.err = fmt.Fprintf(h.w, format, args...)
}

// Layout wraps body in the shared page skeleton.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.write("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
		h.write("<meta charset=\"utf-8\">\n")
		h.write("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
		h.writef("<title>%s</title>\n", templ.EscapeString(title))
		h.write("<link rel=\"stylesheet\" href=\"/assets/style.css\">\n")
		h.write("</head>\n<body>\n<main>\n")

		if h.err != nil {
			return h.err
		}

		if err := body.Render(ctx, w); err != nil {
			return err
		}

		h.write("</main>\n" + confirmScript + "\n</body>\n</html>\n")

		return h.err
	})
}

func writeButton(h *htmlWriter, b ButtonView) {
	name := templ.EscapeString(b.Name)
	title := templ.EscapeString(b.Title)
	href := templ.EscapeString(b.Href)
	attrs := attrString(b.Attrs)

	if b.Method == "post" {
		h.writef(`<form method="post" action="%s" class="btn-form"%s><button type="submit" class="btn btn-%s">%s</button></form>`,
			href, attrs, name, title)

		return
	}

	h.writef(`<a class="btn btn-%s" href="%s"%s>%s</a>`, name, href, attrs, title)
}

// BoardPage renders the task table with its toolbar and status summary.
func BoardPage(bc *BoardContext) templ.Component {
	page := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.writef("<h1>%s</h1>\n", templ.EscapeString(bc.Title))

		h.write(`<section class="toolbar">`)
		for _, b := range bc.Toolbar {
			writeButton(h, b)
		}
		h.write("</section>\n")

		h.write("<table class=\"board\">\n<thead>\n<tr>")
		for _, column := range bc.Columns {
			h.writef("<th>%s</th>", templ.EscapeString(column))
		}
		h.write("<th></th></tr>\n</thead>\n<tbody>\n")

		if len(bc.Rows) == 0 {
			h.writef("<tr><td colspan=\"%d\" class=\"empty\">Nothing here yet.</td></tr>\n", len(bc.Columns)+1)
		}

		for _, row := range bc.Rows {
			h.writef("<tr data-id=\"%s\">", templ.EscapeString(row.ID))
			for _, cell := range row.Cells {
				h.writef("<td>%s</td>", templ.EscapeString(cell))
			}

			h.write(`<td class="actions">`)
			for _, b := range row.Buttons {
				writeButton(h, b)
			}
			h.write("</td></tr>\n")
		}

		h.write("</tbody>\n</table>\n")

		h.write(`<footer class="summary">`)
		for _, s := range bc.Summary {
			h.writef(`<span class="count count-%s">%s: %d</span> `,
				templ.EscapeString(s.Label), templ.EscapeString(s.Label), s.Count)
		}
		h.write("</footer>\n")

		return h.err
	})

	return Layout(bc.Title, page)
}

// TaskFormPage renders the new-task form.
func TaskFormPage(fc *TaskFormContext) templ.Component {
	page := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.writef("<h1>%s</h1>\n", templ.EscapeString(fc.Title))
		h.writef("<form method=\"post\" action=\"%s\" class=\"task-form\">\n", templ.EscapeString(fc.Action))
		h.write("<label>Title <input type=\"text\" name=\"title\" required></label>\n")

		h.write("<label>Status <select name=\"status\">\n")
		for _, option := range fc.Statuses {
			selected := ""
			if option.Selected {
				selected = " selected"
			}

			h.writef("<option value=\"%s\"%s>%s</option>\n",
				templ.EscapeString(option.Value), selected, templ.EscapeString(option.Label))
		}
		h.write("</select></label>\n")

		h.write("<label>Priority <input type=\"number\" name=\"priority\" value=\"0\"></label>\n")
		h.write("<button type=\"submit\" class=\"btn btn-save\">Save</button>\n")
		h.write("</form>\n")

		return h.err
	})

	return Layout(fc.Title, page)
}

// TaskViewPage renders one task's details with its row actions.
func TaskViewPage(vc *TaskViewContext) templ.Component {
	page := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.writef("<h1>%s</h1>\n", templ.EscapeString(vc.Title))

		h.write("<dl class=\"task\">\n")
		for _, field := range vc.Fields {
			h.writef("<dt>%s</dt><dd>%s</dd>\n",
				templ.EscapeString(field.Label), templ.EscapeString(field.Value))
		}
		h.write("</dl>\n")

		h.write(`<section class="actions">`)
		for _, b := range vc.Buttons {
			writeButton(h, b)
		}
		h.write("</section>\n")

		return h.err
	})

	return Layout(vc.Title, page)
}
