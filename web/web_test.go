package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balt-dev/titanium/db"
	"github.com/balt-dev/titanium/elements"
)

const testTOML = `[tables]
normal = "table.png"

[Catbon]
symbol = "Cb"
atomic_number = 6
embed_color = 0x553311
pronouns = "she/her"
author = "someone"
path = "catbon.png"
`

type fakeBackend struct {
	registry *elements.Registry
	table    []byte
	counts   []db.LookupCount
}

func (f *fakeBackend) Registry() *elements.Registry { return f.registry }

func (f *fakeBackend) TableBytes(_ context.Context, name string) ([]byte, error) {
	if name != "normal" || f.table == nil {
		return nil, assert.AnError
	}
	return f.table, nil
}

func (f *fakeBackend) LookupCounts(_ context.Context, limit uint64) ([]db.LookupCount, error) {
	return f.counts, nil
}

func testServer(t *testing.T) (*Server, *fakeBackend) {
	t.Helper()

	registry, err := elements.Decode([]byte(testTOML))
	require.NoError(t, err)

	b := &fakeBackend{
		registry: registry,
		table:    []byte("\x89PNG fake"),
		counts:   []db.LookupCount{{Element: "Catbon", Count: 3}},
	}
	return New(b, nil, time.Now()), b
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s, _ := testServer(t)

	w := get(t, s, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)

	var resp healthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Elements)
}

func TestElements(t *testing.T) {
	s, _ := testServer(t)

	w := get(t, s, "/elements")
	require.Equal(t, http.StatusOK, w.Code)

	var resp []elementResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Catbon", resp[0].Name)
	assert.Equal(t, "Cb", resp[0].Symbol)
	require.NotNil(t, resp[0].AtomicNumber)
	assert.Equal(t, 6, *resp[0].AtomicNumber)
}

func TestElementLookup(t *testing.T) {
	s, _ := testServer(t)

	for _, query := range []string{"Catbon", "catbon", "cb", "6"} {
		w := get(t, s, "/elements/"+query)
		require.Equal(t, http.StatusOK, w.Code, "query %q", query)

		var resp elementResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Catbon", resp.Name)
	}

	w := get(t, s, "/elements/unobtainium")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLookups(t *testing.T) {
	s, _ := testServer(t)

	w := get(t, s, "/lookups")
	require.Equal(t, http.StatusOK, w.Code)

	var resp []db.LookupCount
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Catbon", resp[0].Element)
	assert.EqualValues(t, 3, resp[0].Count)
}

func TestTable(t *testing.T) {
	s, b := testServer(t)

	w := get(t, s, "/table.png")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, b.table, w.Body.Bytes())

	w = get(t, s, "/table.png?table=missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNoRegistry(t *testing.T) {
	s := New(&fakeBackend{}, nil, time.Now())

	w := get(t, s, "/elements")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = get(t, s, "/elements/catbon")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
