// Package elements implements the element registry: parsing and validating
// elements.toml, indexing elements for lookup, and slicing/rendering their icons.
package elements

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Point is a pixel position on a table image.
type Point struct {
	X int `toml:"x"`
	Y int `toml:"y"`
}

// Element is a single entry of the table.
type Element struct {
	// Name is the element's name, the TOML table key.
	Name string

	// Symbol is the element's symbol. May contain subscript digits.
	Symbol string

	// AtomicNumber is the element's atomic number.
	// A negative number means the element has none: it is not indexed by
	// number and the number is not shown in embeds.
	AtomicNumber int

	// Pronouns is the element's pronouns. Chemistry if it was WOKE.
	Pronouns string

	// EmbedColor is the colour used for the element's embed, as 0xRRGGBB.
	EmbedColor int

	// Author credits the element's design, multiple authors separated with ", ".
	Author string

	// Path is the icon's file name, relative to the elements directory.
	Path string

	// Table names the table image the icon is sliced from. Empty means the
	// default table.
	Table string

	// Coordinates is the icon's position on the table image.
	// Elements without coordinates use the file at Path as-is.
	Coordinates *Point
}

// DefaultTable is the table used by elements that have coordinates but no
// explicit table key.
const DefaultTable = "normal"

// TableName returns the name of the table the element is sliced from.
func (e *Element) TableName() string {
	if e.Table == "" {
		return DefaultTable
	}
	return e.Table
}

// Registry holds all elements, indexed for lookup.
type Registry struct {
	// Tables maps table names to their image paths, relative to the
	// elements directory.
	Tables map[string]string

	ordered  []*Element
	byName   map[string]*Element
	bySymbol map[string]*Element
	byNumber map[int]*Element
}

func newRegistry() *Registry {
	return &Registry{
		Tables:   map[string]string{},
		byName:   map[string]*Element{},
		bySymbol: map[string]*Element{},
		byNumber: map[int]*Element{},
	}
}

// add indexes an element. File order is preserved for encoding.
func (r *Registry) add(e *Element) {
	r.ordered = append(r.ordered, e)
	r.byName[strings.ToLower(e.Name)] = e
	if e.Symbol != "" {
		r.bySymbol[strings.ToLower(e.Symbol)] = e
	}
	if e.AtomicNumber >= 0 {
		r.byNumber[e.AtomicNumber] = e
	}
}

// Elements returns all elements in file order.
func (r *Registry) Elements() []*Element {
	return r.ordered
}

// Len returns the number of elements.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// Lookup finds an element by name, symbol, or atomic number, in that order.
// The query is matched case-insensitively; a numeric query must be ASCII
// decimal digits only.
func (r *Registry) Lookup(query string) (*Element, bool) {
	q := strings.ToLower(query)

	if e, ok := r.byName[q]; ok {
		return e, true
	}
	if e, ok := r.bySymbol[q]; ok {
		return e, true
	}

	if isASCIIDecimal(q) {
		n, err := strconv.Atoi(q)
		if err == nil {
			if e, ok := r.byNumber[n]; ok {
				return e, true
			}
		}
	}

	return nil, false
}

func isASCIIDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// SanitizeQuery cleans a user query for echoing back in error messages:
// backticks and newlines are stripped and the result is capped at 32
// characters. The cap counts runes, so multi-byte queries stay valid UTF-8.
func SanitizeQuery(query string) string {
	q := strings.NewReplacer("`", "", "\n", "").Replace(query)
	if utf8.RuneCountInString(q) > 32 {
		q = string([]rune(q)[:32])
	}
	return q
}
