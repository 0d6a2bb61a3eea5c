package elements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeStable(t *testing.T) {
	r, err := Decode([]byte(sampleTOML))
	require.NoError(t, err)

	first := r.Encode()

	r2, err := Decode(first)
	require.NoError(t, err)
	second := r2.Encode()

	assert.Equal(t, string(first), string(second))
}

func TestEncodeRoundTrip(t *testing.T) {
	r, err := Decode([]byte(sampleTOML))
	require.NoError(t, err)

	r2, err := Decode(r.Encode())
	require.NoError(t, err)

	require.Equal(t, r.Len(), r2.Len())
	assert.Equal(t, r.Tables, r2.Tables)
	for i, e := range r.Elements() {
		assert.Equal(t, e, r2.Elements()[i])
	}
}

func TestEncodeFormat(t *testing.T) {
	r, err := Decode([]byte(sampleTOML))
	require.NoError(t, err)

	out := string(r.Encode())

	assert.Contains(t, out, "[tables]\nnormal = \"table.png\"\n")
	assert.Contains(t, out, "### normal ###")
	assert.Contains(t, out, "### extras ###")
	assert.Contains(t, out, "embed_color = 0x22AA55\n")
	assert.Contains(t, out, "coordinates = { x = 48, y = 96 }\n")
}

func TestEncodeKeepsTableWithoutCoordinates(t *testing.T) {
	r, err := Decode([]byte(sampleTOML + `
["Inkite"]
table = "normal"
symbol = "Ik"
pronouns = "he/him"
author = "someone"
embed_color = 0x101010
atomic_number = 7
path = "inkite.png"
`))
	require.NoError(t, err)

	r2, err := Decode(r.Encode())
	require.NoError(t, err)

	e, ok := r2.Lookup("Inkite")
	require.True(t, ok)
	assert.Equal(t, "normal", e.Table)
	assert.Nil(t, e.Coordinates)
}
