package components

import (
	"sort"
	"strings"

	"github.com/a-h/templ"
)

// attrString renders an attribute map as ` k="v" k2="v2"`, keys sorted so
// the markup is deterministic.
func attrString(attrs map[string]string) string {
	if len(attrs) == 0 {
		return ""
	}

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(" ")
		sb.WriteString(templ.EscapeString(k))
		sb.WriteString(`="`)
		sb.WriteString(templ.EscapeString(attrs[k]))
		sb.WriteString(`"`)
	}

	return sb.String()
}
