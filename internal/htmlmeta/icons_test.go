package htmlmeta

import "testing"

const pageURL = "https://example.com/page"

func TestPickBestIconPrefersLargerAppleTouchIcon(t *testing.T) {
	doc := `
		<link rel="icon" href="a.png" sizes="16x16">
		<link rel="apple-touch-icon" href="b.png" sizes="180x180">`
	if got := PickBestIconURL(pageURL, doc); got != "https://example.com/b.png" {
		t.Fatalf("expected b.png to win, got %q", got)
	}
}

func TestPickBestIconPrefersSVGOverLargeRaster(t *testing.T) {
	doc := `
		<link rel="icon" href="big.png" sizes="256x256">
		<link rel="icon" href="vector.svg">`
	if got := PickBestIconURL(pageURL, doc); got != "https://example.com/vector.svg" {
		t.Fatalf("expected svg to win, got %q", got)
	}
}

func TestPickBestIconSVGByType(t *testing.T) {
	doc := `<link rel="icon" href="vector" type="image/svg+xml">
		<link rel="icon" href="raster.png" sizes="512x512">`
	if got := PickBestIconURL(pageURL, doc); got != "https://example.com/vector" {
		t.Fatalf("expected svg-typed icon to win, got %q", got)
	}
}

func TestPickBestIconTieKeepsDeclarationOrder(t *testing.T) {
	doc := `
		<link rel="icon" href="first.png" sizes="32x32">
		<link rel="icon" href="second.png" sizes="32x32">`
	if got := PickBestIconURL(pageURL, doc); got != "https://example.com/first.png" {
		t.Fatalf("expected first declared icon on tie, got %q", got)
	}
}

func TestPickBestIconFallsBackToRootFavicon(t *testing.T) {
	if got := PickBestIconURL(pageURL, "<html><head></head></html>"); got != "https://example.com/favicon.ico" {
		t.Fatalf("expected root favicon guess, got %q", got)
	}
}

func TestPickBestIconDropsUnresolvableCandidates(t *testing.T) {
	doc := `<link rel="icon" href="data:image/png;base64,AAAA">
		<link rel="icon" href="real.png" sizes="48x48">`
	if got := PickBestIconURL(pageURL, doc); got != "https://example.com/real.png" {
		t.Fatalf("expected data: candidate dropped, got %q", got)
	}
}

func TestMaxDeclaredSize(t *testing.T) {
	doc := `<link rel="icon" href="a.png" sizes="16x16">
		<link rel="icon" href="b.png" sizes="32x32">
		<link rel="icon" href="c.png">`
	cands := ResolveIconCandidates(pageURL, doc)
	if got := MaxDeclaredSize(cands); got != 32 {
		t.Fatalf("expected 32, got %d", got)
	}
	if got := MaxDeclaredSize(nil); got != 0 {
		t.Fatalf("expected 0 for no candidates, got %d", got)
	}
}
