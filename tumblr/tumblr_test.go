package tumblr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) (*httptest.Server, []byte) {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 10, 10))))
	tableBytes := buf.Bytes()

	mux := http.NewServeMux()

	mux.HandleFunc("/table.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(tableBytes)
	})

	srv := httptest.NewServer(mux)

	mux.HandleFunc("/blog/testblog/posts", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "12345", r.URL.Query().Get("id"))
		assert.Equal(t, "key", r.URL.Query().Get("api_key"))

		content := fmt.Sprintf(`<img srcset="%v/table.png 75w, %v/table.png 1280w">`, srv.URL, srv.URL)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"response": map[string]any{
				"posts": []map[string]any{
					{"trail": []map[string]any{{"content_raw": content}}},
				},
			},
		})
	})

	return srv, tableBytes
}

func TestFetchTable(t *testing.T) {
	srv, tableBytes := testServer(t)
	defer srv.Close()

	c := NewClient("testblog", "key")
	c.base = srv.URL

	im, raw, err := c.FetchTable(context.Background(), 12345)
	require.NoError(t, err)

	assert.Equal(t, tableBytes, raw)
	assert.Equal(t, image.Rect(0, 0, 10, 10), im.Bounds())
}

func TestPostContentNoPosts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response": {"posts": []}}`))
	}))
	defer srv.Close()

	c := NewClient("testblog", "key")
	c.base = srv.URL

	_, err := c.PostContent(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoPosts)
}
