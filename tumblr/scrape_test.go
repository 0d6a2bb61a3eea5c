package tumblr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrapeImageURL(t *testing.T) {
	content := `<p>the table!</p>
<figure><img srcset="https://cdn.example/table_75sq.png 75w, https://cdn.example/table_540.png 540w, https://cdn.example/table_1280.png 1280w" src="https://cdn.example/table_540.png"/></figure>
<figure><img srcset="https://cdn.example/other_75sq.png 75w"/></figure>`

	src, err := ScrapeImageURL(content)
	require.NoError(t, err)

	// first image only, highest resolution candidate
	assert.Equal(t, "https://cdn.example/table_1280.png", src)
}

func TestScrapeImageURLSrcFallback(t *testing.T) {
	src, err := ScrapeImageURL(`<img src="https://cdn.example/table.png">`)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/table.png", src)
}

func TestScrapeImageURLNoImage(t *testing.T) {
	_, err := ScrapeImageURL("<p>no image here</p>")
	assert.ErrorIs(t, err, ErrNoImage)
}
