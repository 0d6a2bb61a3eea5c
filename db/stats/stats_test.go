package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilClientIsSafe(t *testing.T) {
	var c *Client

	assert.NotPanics(t, func() {
		c.IncCommand()
		c.IncQuery()
		c.RegisterLookup("Catbon")
	})
}

func TestCounters(t *testing.T) {
	c := &Client{lookups: make(map[string]uint32)}

	c.IncCommand()
	c.IncCommand()
	c.IncQuery()
	c.RegisterLookup("Catbon")
	c.RegisterLookup("Catbon")
	c.RegisterLookup("Voidium")

	assert.Equal(t, uint32(2), c.cmds)
	assert.Equal(t, uint32(1), c.queries)
	assert.Equal(t, uint32(2), c.lookups["Catbon"])
	assert.Equal(t, uint32(1), c.lookups["Voidium"])
}
