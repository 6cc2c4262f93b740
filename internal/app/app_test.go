package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stillpage/gallerygen/internal/extract"
)

func albumPage(tokens ...string) string {
	urls := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		urls = append(urls, fmt.Sprintf(`"https://lh3.googleusercontent.com/pw/%s%s"`,
			tok, strings.Repeat("x", 30)))
	}
	return fmt.Sprintf(`<!doctype html>
<html>
<head><title>Test Album - Google Photos</title></head>
<body><script>[%s]</script></body>
</html>`, strings.Join(urls, ","))
}

func TestRun_WritesGalleryFromFetchedPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(albumPage("AbCd123", "EfGh456", "AbCd123")))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "gallery.html")
	a, err := New(Config{AlbumURL: srv.URL, OutputPath: out, FetchTimeout: 2 * time.Second})
	require.NoError(t, err)
	require.NoError(t, a.Run(context.Background()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	doc := string(data)
	require.Contains(t, doc, "<title>Test Album</title>", "host suffix stripped from derived title")
	require.Contains(t, doc, "2 photos", "duplicates collapse to distinct images")
	require.Contains(t, doc, "pw/AbCd123")
	require.Contains(t, doc, "pw/EfGh456")
}

func TestRun_NoImagesWritesNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>private album</body></html>"))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "gallery.html")
	a, err := New(Config{AlbumURL: srv.URL, OutputPath: out, FetchTimeout: 2 * time.Second})
	require.NoError(t, err)

	err = a.Run(context.Background())
	require.ErrorIs(t, err, extract.ErrNoImages)
	_, statErr := os.Stat(out)
	require.True(t, os.IsNotExist(statErr), "no partial output on failure")
}

func TestRun_FetchFailureWritesNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "gallery.html")
	a, err := New(Config{AlbumURL: srv.URL, OutputPath: out, FetchTimeout: 2 * time.Second})
	require.NoError(t, err)

	require.Error(t, a.Run(context.Background()))
	_, statErr := os.Stat(out)
	require.True(t, os.IsNotExist(statErr))
}

func TestRun_TitleOverrideWins(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gallery.html")
	a, err := New(Config{AlbumURL: "https://example.com/album", OutputPath: out, Title: "My Override"})
	require.NoError(t, err)
	a.pageLoader = func(context.Context) (extract.Page, error) {
		return extract.Page{HTML: albumPage("Tok1")}, nil
	}

	require.NoError(t, a.Run(context.Background()))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(data), "<title>My Override</title>")
}

func TestRun_RenderedSelectsSnapshotExtractor(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gallery.html")
	a, err := New(Config{AlbumURL: "https://example.com/album", OutputPath: out, Rendered: true})
	require.NoError(t, err)
	a.pageLoader = func(context.Context) (extract.Page, error) {
		return extract.Page{
			HTML: "<html></html>",
			Elements: []extract.Element{
				{Src: "https://lh3.googleusercontent.com/pw/Zed" + strings.Repeat("z", 30) + "=w600"},
				{Src: "https://lh3.googleusercontent.com/pw/Abe" + strings.Repeat("a", 30) + "=w600"},
			},
		}, nil
	}

	require.NoError(t, a.Run(context.Background()))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	doc := string(data)
	// Snapshot path sorts lexicographically.
	require.Less(t, strings.Index(doc, "pw/Abe"), strings.Index(doc, "pw/Zed"))
}

func TestRun_WritesContactSheet(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "gallery.html")
	pdf := filepath.Join(dir, "album.pdf")
	a, err := New(Config{AlbumURL: "https://example.com/album", OutputPath: out, PDFPath: pdf})
	require.NoError(t, err)
	a.pageLoader = func(context.Context) (extract.Page, error) {
		return extract.Page{HTML: albumPage("Tok1", "Tok2")}, nil
	}

	require.NoError(t, a.Run(context.Background()))
	data, err := os.ReadFile(pdf)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "%PDF-"))
}
