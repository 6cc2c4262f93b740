package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SnapshotExtractor consumes a rendered DOM snapshot. DOM traversal order is
// not stable across fetches, so the collection is sorted lexicographically
// instead of first-seen. The snapshot carries no serialized photo metadata,
// so dimensions stay unknown.
type SnapshotExtractor struct{}

var (
	// Square renditions (=s32-p-no and friends) are avatars and UI chrome,
	// never album photos.
	reIconRendition = regexp.MustCompile(`=s\d{1,3}(-|$)`)
	// Trailing size/query directives: everything from the '=' on.
	reSizeDirective = regexp.MustCompile(`=[^/]*$`)
	// Trailing path-segment size markers such as /w600-h400-no or /s1600.
	reSizeSegment = regexp.MustCompile(`/(w\d+(-h\d+)?|s\d+)(-[a-z0-9]+)*$`)
)

func (SnapshotExtractor) Extract(page Page) ([]Image, error) {
	seen := make(map[string]struct{})
	add := func(raw string) {
		u := normalizeURL(raw)
		if len(u) <= minPhotoURLLen {
			return
		}
		seen[u] = struct{}{}
	}

	for _, el := range page.Elements {
		if eligibleElement(el) {
			add(el.Src)
		}
	}

	// The snapshot HTML gets its own <img> sweep: element lists captured by
	// the browser and the serialized DOM can disagree after lazy loading.
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML)); err == nil {
		doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
			el := Element{Src: s.AttrOr("src", ""), Title: s.AttrOr("title", "")}
			if eligibleElement(el) {
				add(el.Src)
			}
		})
	}

	// Photos referenced only from background styles or data attributes never
	// show up as <img> elements, so the raw text is swept as well.
	for _, u := range rePhotoURL.FindAllString(page.HTML, -1) {
		add(u)
	}

	if len(seen) == 0 {
		return nil, ErrNoImages
	}
	urls := make([]string, 0, len(seen))
	for u := range seen {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	images := make([]Image, 0, len(urls))
	for _, u := range urls {
		images = append(images, newImage(u))
	}
	return images, nil
}

func eligibleElement(el Element) bool {
	src := strings.TrimSpace(el.Src)
	if src == "" || !strings.Contains(src, "googleusercontent.com/") {
		return false
	}
	// The album owner's avatar renders as an <img> titled with the owner's
	// name and role.
	if strings.Contains(strings.ToLower(el.Title), "owner") {
		return false
	}
	return !reIconRendition.MatchString(src)
}

// normalizeURL strips renditions back to the canonical base URL: first the
// trailing '=...' directive, then any trailing size path segment.
func normalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	u = reSizeDirective.ReplaceAllString(u, "")
	u = strings.TrimSuffix(u, "/")
	u = reSizeSegment.ReplaceAllString(u, "")
	return u
}
