// Package tumblr fetches the table image out of a Tumblr post.
package tumblr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"time"

	"emperror.dev/errors"

	// table images are PNG, but the CDN may serve other formats
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

const apiBase = "https://api.tumblr.com/v2"

// ErrNoPosts is returned when the configured post doesn't exist.
const ErrNoPosts = errors.Sentinel("post not found")

// Client is a minimal Tumblr API client, just enough to fetch a single post.
type Client struct {
	http *http.Client
	base string

	consumerKey string
	blog        string
}

// NewClient creates a client for the given blog.
func NewClient(blog, consumerKey string) *Client {
	return &Client{
		http:        &http.Client{Timeout: 30 * time.Second},
		base:        apiBase,
		consumerKey: consumerKey,
		blog:        blog,
	}
}

type postsResponse struct {
	Response struct {
		Posts []struct {
			Trail []struct {
				ContentRaw string `json:"content_raw"`
			} `json:"trail"`
		} `json:"posts"`
	} `json:"response"`
}

// PostContent fetches the raw trail content HTML of the given post.
func (c *Client) PostContent(ctx context.Context, postID uint64) (string, error) {
	u := fmt.Sprintf("%v/blog/%v/posts?id=%v&api_key=%v",
		c.base, c.blog, postID, url.QueryEscape(c.consumerKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", errors.Wrap(err, "creating request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "fetching post")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("fetching post: status %v", resp.StatusCode)
	}

	var posts postsResponse
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return "", errors.Wrap(err, "decoding response")
	}

	if len(posts.Response.Posts) == 0 || len(posts.Response.Posts[0].Trail) == 0 {
		return "", ErrNoPosts
	}

	return posts.Response.Posts[0].Trail[0].ContentRaw, nil
}

// FetchTable fetches the post and downloads the table image embedded in it.
// The raw encoded bytes are returned alongside the decoded image so they can
// be cached and attached to messages without re-encoding.
func (c *Client) FetchTable(ctx context.Context, postID uint64) (image.Image, []byte, error) {
	content, err := c.PostContent(ctx, postID)
	if err != nil {
		return nil, nil, err
	}

	src, err := ScrapeImageURL(content)
	if err != nil {
		return nil, nil, err
	}

	b, err := c.download(ctx, src)
	if err != nil {
		return nil, nil, err
	}

	im, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, nil, errors.Wrap(err, "decoding table image")
	}

	return im, b, nil
}

func (c *Client) download(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "downloading image")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("downloading image: status %v", resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	return b, errors.Wrap(err, "reading image")
}
