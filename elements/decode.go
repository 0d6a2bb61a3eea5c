package elements

import (
	"os"
	"strings"

	"emperror.dev/errors"
	"github.com/BurntSushi/toml"
)

// Decode parses an elements.toml file into a Registry.
//
// Every top-level table except [tables] is an element; entries are validated
// strictly and a malformed entry aborts the load with all of its problems.
// Element order in the file is preserved.
func Decode(data []byte) (*Registry, error) {
	var raw map[string]toml.Primitive
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, errors.Wrap(err, "decoding toml")
	}

	r := newRegistry()

	if prim, ok := raw["tables"]; ok {
		if err := md.PrimitiveDecode(prim, &r.Tables); err != nil {
			return nil, errors.Wrap(err, "decoding [tables]")
		}
	}

	// md.Keys preserves file order, unlike the map
	for _, key := range md.Keys() {
		if len(key) != 1 || key[0] == "tables" {
			continue
		}
		name := key[0]

		var entry map[string]any
		if err := md.PrimitiveDecode(raw[name], &entry); err != nil {
			return nil, errors.Wrapf(err, "decoding element %q", name)
		}

		if problems := checkSchema(entry, elementSchema, elementSchemaOptional); len(problems) > 0 {
			return nil, errors.Errorf("element `%v` has a malformed entry:\n%v", name, strings.Join(problems, "\n"))
		}

		e := &Element{
			Name:         name,
			Symbol:       entry["symbol"].(string),
			AtomicNumber: int(entry["atomic_number"].(int64)),
			Pronouns:     entry["pronouns"].(string),
			EmbedColor:   int(entry["embed_color"].(int64)),
			Author:       entry["author"].(string),
			Path:         entry["path"].(string),
		}
		if t, ok := entry["table"].(string); ok {
			e.Table = t
		}
		if c, ok := entry["coordinates"].(map[string]any); ok {
			e.Coordinates = &Point{
				X: int(c["x"].(int64)),
				Y: int(c["y"].(int64)),
			}
		}

		r.add(e)
	}

	return r, nil
}

// DecodeFile reads and parses the elements file at path.
func DecodeFile(path string) (*Registry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading elements file")
	}
	return Decode(b)
}
