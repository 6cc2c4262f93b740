package extract

import (
	"regexp"
	"strconv"
)

// Dims are pixel dimensions recovered from the page's serialized metadata.
type Dims struct {
	Width  int
	Height int
}

// Dimensions is a best-effort index from base URL to pixel dimensions.
// Absence of an entry is normal; callers keep the zero defaults.
type Dimensions struct {
	byURL map[string]Dims
}

// The album page serializes each photo as an array of the form
// ["https://lh3.googleusercontent.com/pw/<token>",w,h,...]. The pattern
// tolerates extra fields between the URL and the two integers but never
// crosses the closing bracket.
var reDims = regexp.MustCompile(`"(https://lh3\.googleusercontent\.com/pw/[A-Za-z0-9_-]+)"[^\]]*?,(\d{3,5}),(\d{3,5})`)

// IndexDimensions scans serialized page data for width/height pairs keyed by
// photo URL. An unparseable page yields an empty index, never an error.
func IndexDimensions(html string) Dimensions {
	idx := Dimensions{byURL: make(map[string]Dims)}
	for _, m := range reDims.FindAllStringSubmatch(html, -1) {
		w, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		h, err := strconv.Atoi(m[3])
		if err != nil {
			continue
		}
		idx.byURL[m[1]] = Dims{Width: w, Height: h}
	}
	return idx
}

// Lookup reports the dimensions recorded for base, if any.
func (d Dimensions) Lookup(base string) (Dims, bool) {
	dims, ok := d.byURL[base]
	return dims, ok
}
