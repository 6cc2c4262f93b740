package extract

import (
	"errors"
	"fmt"
	"sort"
	"testing"
)

func TestSnapshotExtractor_FiltersIconsAndOwnerAvatar(t *testing.T) {
	icon := photoURL("IconA") + "=s45-p-no"
	owner := photoURL("OwnerB") + "=w64"
	keep := photoURL("KeepC") + "=w600-h400-no"

	page := Page{
		HTML: "<html><body></body></html>",
		Elements: []Element{
			{Src: icon},
			{Src: owner, Title: "Album owner"},
			{Src: keep},
		},
	}
	images, err := SnapshotExtractor{}.Extract(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(images) != 1 {
		t.Fatalf("expected 1 surviving image, got %d", len(images))
	}
	if images[0].BaseURL != photoURL("KeepC") {
		t.Fatalf("expected %q, got %q", photoURL("KeepC"), images[0].BaseURL)
	}
}

func TestSnapshotExtractor_NormalizesAndSortsLexicographically(t *testing.T) {
	b1 := photoURL("Bravo")
	b2 := photoURL("Alpha")
	page := Page{
		HTML: "<html></html>",
		Elements: []Element{
			{Src: b1 + "=w600-h400-no"},
			{Src: b1 + "=w1200"},
			{Src: b2 + "/w600-h400-no"},
		},
	}
	images, err := SnapshotExtractor{}.Extract(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(images) != 2 {
		t.Fatalf("expected 2 images after dedup, got %d", len(images))
	}
	got := []string{images[0].BaseURL, images[1].BaseURL}
	if !sort.StringsAreSorted(got) {
		t.Fatalf("expected lexicographic order, got %v", got)
	}
	if got[0] != b2 || got[1] != b1 {
		t.Fatalf("expected [%s %s], got %v", b2, b1, got)
	}
}

func TestSnapshotExtractor_SweepsRenderedHTML(t *testing.T) {
	inImg := photoURL("FromImg")
	inStyle := photoURL("FromStyle")
	html := fmt.Sprintf(
		`<html><body><img src="%s=w600"><div style="background-image:url(%s=w600)"></div></body></html>`,
		inImg, inStyle)

	images, err := SnapshotExtractor{}.Extract(Page{HTML: html})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bases := make(map[string]bool, len(images))
	for _, img := range images {
		bases[img.BaseURL] = true
	}
	if !bases[inImg] {
		t.Fatalf("expected img element URL %s in %v", inImg, bases)
	}
	if !bases[inStyle] {
		t.Fatalf("expected background style URL %s in %v", inStyle, bases)
	}
}

func TestSnapshotExtractor_NoImages(t *testing.T) {
	_, err := SnapshotExtractor{}.Extract(Page{HTML: "<html><body><p>empty album</p></body></html>"})
	if !errors.Is(err, ErrNoImages) {
		t.Fatalf("expected ErrNoImages, got %v", err)
	}
}

func TestNormalizeURL_TrimsDirectiveThenSegment(t *testing.T) {
	base := photoURL("Trim")
	cases := []struct {
		in   string
		want string
	}{
		{base + "=w1200", base},
		{base + "=s1600-no", base},
		{base + "/w600-h400-no", base},
		{base + "/s1600", base},
		{base + "/w600-h400/", base},
		{base, base},
	}
	for _, c := range cases {
		if got := normalizeURL(c.in); got != c.want {
			t.Fatalf("normalizeURL(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
