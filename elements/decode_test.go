package elements

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTOML = `[tables]
normal = "table.png"

["Catbon"]
table = "normal"
symbol = "C"
pronouns = "she/her"
author = "someone"
embed_color = 0x22AA55
coordinates = { x = 48, y = 96 }
atomic_number = 6
path = "catbon.png"

["Voidium"]
symbol = "Vd"
pronouns = "it/its"
author = "someone, someone else"
embed_color = 0x000000
atomic_number = -1
path = "voidium.png"
`

func TestDecode(t *testing.T) {
	r, err := Decode([]byte(sampleTOML))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"normal": "table.png"}, r.Tables)
	require.Equal(t, 2, r.Len())

	// file order is preserved
	assert.Equal(t, "Catbon", r.Elements()[0].Name)
	assert.Equal(t, "Voidium", r.Elements()[1].Name)

	c := r.Elements()[0]
	assert.Equal(t, "C", c.Symbol)
	assert.Equal(t, 6, c.AtomicNumber)
	assert.Equal(t, 0x22AA55, c.EmbedColor)
	require.NotNil(t, c.Coordinates)
	assert.Equal(t, Point{X: 48, Y: 96}, *c.Coordinates)
	assert.Equal(t, "normal", c.TableName())

	v := r.Elements()[1]
	assert.Nil(t, v.Coordinates)
	assert.Equal(t, -1, v.AtomicNumber)
}

func TestDecodeMissingKeys(t *testing.T) {
	_, err := Decode([]byte("[\"Broken\"]\nsymbol = \"Br\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "element `Broken` has a malformed entry")
	assert.Contains(t, err.Error(), "missing keys")
	assert.Contains(t, err.Error(), "atomic_number")
}

func TestDecodeExtraneousKeys(t *testing.T) {
	_, err := Decode([]byte(`["Broken"]
symbol = "Br"
pronouns = "he/him"
author = "x"
embed_color = 0
atomic_number = 1
path = "br.png"
favourite_food = "fish"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extraneous keys: `favourite_food`")
}

func TestDecodeWrongType(t *testing.T) {
	_, err := Decode([]byte(`["Broken"]
symbol = "Br"
pronouns = "he/him"
author = "x"
embed_color = "red"
atomic_number = 1
path = "br.png"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key of wrong type: `embed_color` (expected integer)")
}

func TestDecodeReportsAllProblems(t *testing.T) {
	_, err := Decode([]byte(`["Broken"]
symbol = 3
favourite_food = "fish"
`))
	require.Error(t, err)
	// one entry, every problem reported at once
	assert.Contains(t, err.Error(), "extraneous keys")
	assert.Contains(t, err.Error(), "missing keys")
	assert.Contains(t, err.Error(), "key of wrong type: `symbol`")
}

func TestDecodeNestedSchema(t *testing.T) {
	_, err := Decode([]byte(`["Broken"]
symbol = "Br"
pronouns = "he/him"
author = "x"
embed_color = 0
atomic_number = 1
path = "br.png"
coordinates = { x = 1, y = "two" }
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key of wrong type: `y` (expected integer)")
}

func TestLookup(t *testing.T) {
	r, err := Decode([]byte(sampleTOML))
	require.NoError(t, err)

	for _, q := range []string{"Catbon", "catbon", "CATBON", "c", "C", "6"} {
		e, ok := r.Lookup(q)
		require.True(t, ok, "query %q", q)
		assert.Equal(t, "Catbon", e.Name)
	}

	// negative atomic numbers are not indexed
	_, ok := r.Lookup("-1")
	assert.False(t, ok)

	// no such element
	_, ok = r.Lookup("unobtainium")
	assert.False(t, ok)

	// non-decimal queries never match numbers
	_, ok = r.Lookup("６")
	assert.False(t, ok)
	_, ok = r.Lookup("6.0")
	assert.False(t, ok)
}

func TestSanitizeQuery(t *testing.T) {
	assert.Equal(t, "hello", SanitizeQuery("hello"))
	assert.Equal(t, "ab", SanitizeQuery("`a`\nb"))

	long := SanitizeQuery("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	assert.Len(t, long, 32)

	// the cap is 32 characters, not bytes, and never cuts mid-rune
	wide := SanitizeQuery(strings.Repeat("あ", 40))
	assert.True(t, utf8.ValidString(wide))
	assert.Equal(t, 32, utf8.RuneCountInString(wide))
	assert.Equal(t, strings.Repeat("あ", 32), wide)
}
