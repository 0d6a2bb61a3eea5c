package tumblr

import (
	"strings"

	"emperror.dev/errors"
	"golang.org/x/net/html"
)

// ErrNoImage is returned when a post contains no usable image tag.
const ErrNoImage = errors.Sentinel("no image found in post")

// ScrapeImageURL finds the first <img> tag in the post HTML and returns the
// last (highest resolution) candidate of its srcset attribute.
func ScrapeImageURL(content string) (string, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", errors.Wrap(err, "parsing post html")
	}

	img := findFirstImage(doc)
	if img == nil {
		return "", ErrNoImage
	}

	for _, attr := range img.Attr {
		if attr.Key != "srcset" {
			continue
		}
		if src := lastSrcsetURL(attr.Val); src != "" {
			return src, nil
		}
	}

	// no srcset, fall back to plain src
	for _, attr := range img.Attr {
		if attr.Key == "src" && attr.Val != "" {
			return attr.Val, nil
		}
	}

	return "", ErrNoImage
}

func findFirstImage(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "img" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if img := findFirstImage(c); img != nil {
			return img
		}
	}
	return nil
}

// lastSrcsetURL returns the URL of the last srcset candidate.
// Candidates look like "https://… 540w" and are separated with ", ".
func lastSrcsetURL(srcset string) string {
	candidates := strings.Split(srcset, ", ")
	last := strings.TrimSpace(candidates[len(candidates)-1])
	if last == "" {
		return ""
	}
	return strings.SplitN(last, " ", 2)[0]
}
