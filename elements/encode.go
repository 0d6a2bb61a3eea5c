package elements

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"emperror.dev/errors"
)

// Encode writes the registry in its canonical form: the [tables] section
// first, then each table's elements under a banner comment, then elements
// without coordinates. Within a group, file order is kept. Encoding the
// result of Decode is stable.
func (r *Registry) Encode() []byte {
	var b strings.Builder

	b.WriteString("[tables]\n")
	for _, name := range r.tableNames() {
		fmt.Fprintf(&b, "%v = %q\n", name, r.Tables[name])
	}

	for _, table := range r.tableNames() {
		fmt.Fprintf(&b, "\n### %v ###\n\n\n", table)
		for _, e := range r.ordered {
			if e.Coordinates == nil || e.TableName() != table {
				continue
			}
			r.encodeElement(&b, e)
		}
	}

	b.WriteString("\n### extras ###\n\n\n")
	for _, e := range r.ordered {
		if e.Coordinates != nil {
			continue
		}
		r.encodeElement(&b, e)
	}

	return []byte(b.String())
}

func (r *Registry) encodeElement(b *strings.Builder, e *Element) {
	fmt.Fprintf(b, "[%q]\n", e.Name)
	if e.Coordinates != nil || e.Table != "" {
		fmt.Fprintf(b, "table = %q\n", e.TableName())
	}
	fmt.Fprintf(b, "symbol = %q\n", e.Symbol)
	fmt.Fprintf(b, "pronouns = %q\n", e.Pronouns)
	fmt.Fprintf(b, "author = %q\n", e.Author)
	fmt.Fprintf(b, "embed_color = 0x%06X\n", e.EmbedColor)
	if e.Coordinates != nil {
		fmt.Fprintf(b, "coordinates = { x = %v, y = %v }\n", e.Coordinates.X, e.Coordinates.Y)
	}
	fmt.Fprintf(b, "atomic_number = %v\n", e.AtomicNumber)
	fmt.Fprintf(b, "path = %q\n", e.Path)
	b.WriteString("\n")
}

// tableNames returns the table names in sorted order.
func (r *Registry) tableNames() []string {
	names := make([]string, 0, len(r.Tables))
	for name := range r.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EncodeFile writes the canonical encoding to path.
// The file is written in one go so a failed encode doesn't wipe it.
func (r *Registry) EncodeFile(path string) error {
	err := os.WriteFile(path, r.Encode(), 0o644)
	return errors.Wrap(err, "writing elements file")
}
