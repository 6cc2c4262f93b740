package extract

import (
	"errors"
	"regexp"
)

// Image describes one distinct photo in a shared album.
type Image struct {
	BaseURL    string
	DisplayURL string
	ThumbURL   string
	// Width and Height are pixel dimensions recovered from embedded page
	// metadata; zero means unknown.
	Width  int
	Height int
	Alt    string
}

const (
	// Size directives appended to the canonical base URL. "=wN" asks the
	// image host for a rendition capped at N pixels wide.
	displaySuffix = "=w1200"
	thumbSuffix   = "=w600"

	// Host URLs at or below this length are icon/avatar assets, not photos.
	minPhotoURLLen = 60

	defaultAlt = "Photo"
)

// ErrNoImages is returned when a page yields zero photo URLs. Per the CLI
// exit code policy this is fatal and no output file is written.
var ErrNoImages = errors.New("no images found")

var (
	// Photo URLs are embedded in the page's script data as
	// https://lh3.googleusercontent.com/pw/<token>.
	rePhotoURL = regexp.MustCompile(`https://lh3\.googleusercontent\.com/pw/[A-Za-z0-9_-]+`)
	// Looser sweep for albums that embed photos under other path prefixes.
	reHostURL = regexp.MustCompile(`https://lh3\.googleusercontent\.com/[A-Za-z0-9_/-]+`)
)

// Page carries whichever representations of the album page the fetch layer
// produced. HTML is always present; Elements only when a rendered snapshot
// was captured.
type Page struct {
	HTML     string
	Elements []Element
}

// Element is a rendered <img> observed in a DOM snapshot.
type Element struct {
	Src   string
	Title string
}

// Extractor turns fetched page content into an ordered, deduplicated image
// collection. The two implementations differ by which representation of the
// album page they consume and by their ordering policy.
type Extractor interface {
	Extract(page Page) ([]Image, error)
}

// HTMLExtractor scans raw page text for embedded photo URLs. Order is
// first-seen, which matches the order the album serializes its photos in.
type HTMLExtractor struct{}

func (HTMLExtractor) Extract(page Page) ([]Image, error) {
	urls := dedupeInOrder(rePhotoURL.FindAllString(page.HTML, -1), 0)
	if len(urls) == 0 {
		// Some albums embed photos outside the /pw/ namespace. The looser
		// pattern also matches icon and avatar assets, so short URLs are
		// dropped.
		urls = dedupeInOrder(reHostURL.FindAllString(page.HTML, -1), minPhotoURLLen)
	}
	if len(urls) == 0 {
		return nil, ErrNoImages
	}

	dims := IndexDimensions(page.HTML)
	images := make([]Image, 0, len(urls))
	for _, u := range urls {
		img := newImage(u)
		if d, ok := dims.Lookup(u); ok {
			img.Width, img.Height = d.Width, d.Height
		}
		images = append(images, img)
	}
	return images, nil
}

func newImage(base string) Image {
	return Image{
		BaseURL:    base,
		DisplayURL: base + displaySuffix,
		ThumbURL:   base + thumbSuffix,
		Alt:        defaultAlt,
	}
}

// dedupeInOrder keeps the first occurrence of each URL, dropping any at or
// below minLen. Membership set plus ordered slice so first-seen order
// survives the dedup.
func dedupeInOrder(urls []string, minLen int) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if len(u) <= minLen {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
