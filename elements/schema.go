package elements

import (
	"fmt"
	"sort"
	"strings"
)

// schema describes the expected shape of a TOML table. Values are either a
// kind, for leaf keys, or a nested schema.
type schema map[string]any

type kind string

const (
	kindInt    kind = "integer"
	kindString kind = "string"
)

var elementSchema = schema{
	"symbol":        kindString,
	"atomic_number": kindInt,
	"embed_color":   kindInt,
	"path":          kindString,
	"pronouns":      kindString,
	"author":        kindString,
}

var elementSchemaOptional = schema{
	"coordinates": schema{
		"x": kindInt,
		"y": kindInt,
	},
	"table": kindString,
}

// checkSchema validates a decoded TOML table against a schema.
// It reports every problem, not just the first: extraneous keys, missing
// required keys, and keys of the wrong type, recursing into nested tables.
func checkSchema(obj map[string]any, required, optional schema) (problems []string) {
	var extra, missing []string

	for key := range obj {
		_, req := required[key]
		_, opt := optional[key]
		if !req && !opt {
			extra = append(extra, key)
		}
	}
	for key := range required {
		if _, ok := obj[key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(extra)
	sort.Strings(missing)

	if len(extra) > 0 {
		problems = append(problems, fmt.Sprintf("extraneous keys: `%v`", strings.Join(extra, ", ")))
	}
	if len(missing) > 0 {
		problems = append(problems, fmt.Sprintf("missing keys: `%v`", strings.Join(missing, ", ")))
	}

	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		expect, ok := required[key]
		if !ok {
			expect, ok = optional[key]
		}
		if !ok {
			continue
		}

		val := obj[key]
		switch expect := expect.(type) {
		case kind:
			if !isKind(val, expect) {
				problems = append(problems, fmt.Sprintf("key of wrong type: `%v` (expected %v)", key, expect))
			}
		case schema:
			nested, ok := val.(map[string]any)
			if !ok {
				problems = append(problems, fmt.Sprintf("key of wrong type: `%v` (expected table)", key))
				continue
			}
			problems = append(problems, checkSchema(nested, expect, nil)...)
		}
	}

	return problems
}

func isKind(val any, k kind) bool {
	switch k {
	case kindInt:
		_, ok := val.(int64)
		return ok
	case kindString:
		_, ok := val.(string)
		return ok
	}
	return false
}
