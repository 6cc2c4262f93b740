package gallery

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stillpage/gallerygen/internal/extract"
)

func testImages() []extract.Image {
	return []extract.Image{
		{
			BaseURL:    "https://lh3.googleusercontent.com/pw/First",
			DisplayURL: "https://lh3.googleusercontent.com/pw/First=w1200",
			ThumbURL:   "https://lh3.googleusercontent.com/pw/First=w600",
			Width:      4032,
			Height:     3024,
			Alt:        "Photo",
		},
		{
			BaseURL:    "https://lh3.googleusercontent.com/pw/Second",
			DisplayURL: "https://lh3.googleusercontent.com/pw/Second=w1200",
			ThumbURL:   "https://lh3.googleusercontent.com/pw/Second=w600",
			Alt:        "Photo",
		},
	}
}

func TestBuild_EmbedsImageDataAndFigures(t *testing.T) {
	out, err := Build(testImages(), "https://photos.app.goo.gl/abc", "Hiking 2025")
	require.NoError(t, err)
	doc := string(out)

	require.Contains(t, doc, "<title>Hiking 2025</title>")
	require.Contains(t, doc, "2 photos")
	require.Contains(t, doc, `href="https://photos.app.goo.gl/abc"`)

	// One figure per image, thumbs in the grid, display URLs in the data array.
	require.Equal(t, 2, strings.Count(doc, `class="gal-item"`))
	require.Contains(t, doc, `src="https://lh3.googleusercontent.com/pw/First=w600"`)
	require.Contains(t, doc, `"src": "https://lh3.googleusercontent.com/pw/First=w1200"`)
	require.Contains(t, doc, `"thumb": "https://lh3.googleusercontent.com/pw/Second=w600"`)
}

func TestBuild_PreservesCollectionOrder(t *testing.T) {
	out, err := Build(testImages(), "https://photos.app.goo.gl/abc", "T")
	require.NoError(t, err)
	doc := string(out)

	first := strings.Index(doc, "pw/First=w600")
	second := strings.Index(doc, "pw/Second=w600")
	require.Greater(t, first, -1)
	require.Greater(t, second, -1)
	require.Less(t, first, second, "grid order must follow collection order")
}

func TestBuild_KnownDimensionsOnly(t *testing.T) {
	out, err := Build(testImages(), "u", "T")
	require.NoError(t, err)
	doc := string(out)

	require.Contains(t, doc, `width="4032" height="3024"`)
	// The second image has unknown dimensions; no zero-valued attributes.
	require.NotContains(t, doc, `width="0"`)
}

func TestBuild_EscapesTitle(t *testing.T) {
	out, err := Build(testImages(), "u", `<script>alert("x")</script>`)
	require.NoError(t, err)
	require.NotContains(t, string(out), `<title><script>`)
}

func TestWriteContactSheet(t *testing.T) {
	out := filepath.Join(t.TempDir(), "album.pdf")
	require.NoError(t, WriteContactSheet(testImages(), "https://photos.app.goo.gl/abc", "Hiking 2025", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "%PDF-"), "expected a PDF header")
}
