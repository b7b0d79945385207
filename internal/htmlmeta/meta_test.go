package htmlmeta

import (
	"testing"
)

func TestExtractMetaContentSelectorPrecedence(t *testing.T) {
	doc := `<html><head>
		<meta name="twitter:title" content="Twitter Title">
		<meta property="og:title" content="OG Title">
	</head></html>`

	got := ExtractMetaContent(doc, []MetaSelector{
		{Attr: "property", Value: "og:title"},
		{Attr: "name", Value: "twitter:title"},
	})
	if got != "OG Title" {
		t.Fatalf("expected first selector to win, got %q", got)
	}

	got = ExtractMetaContent(doc, []MetaSelector{
		{Attr: "name", Value: "twitter:title"},
		{Attr: "property", Value: "og:title"},
	})
	if got != "Twitter Title" {
		t.Fatalf("expected precedence to follow selector order, got %q", got)
	}
}

func TestExtractMetaContentAttributeOrderTolerance(t *testing.T) {
	// content attribute declared before the property attribute
	doc := `<meta content="Reversed" property="og:description">`
	got := ExtractMetaContent(doc, []MetaSelector{{Attr: "property", Value: "og:description"}})
	if got != "Reversed" {
		t.Fatalf("expected attribute order not to matter, got %q", got)
	}
}

func TestExtractMetaContentNoMatch(t *testing.T) {
	doc := `<meta property="og:image" content="x.png">`
	if got := ExtractMetaContent(doc, []MetaSelector{{Attr: "name", Value: "description"}}); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
	if got := ExtractMetaContent("<<<not html>>>", []MetaSelector{{Attr: "name", Value: "x"}}); got != "" {
		t.Fatalf("malformed input should yield empty, got %q", got)
	}
}

func TestExtractTitle(t *testing.T) {
	doc := `<html><head><title>  My Page  </title></head><body><title>later</title></body></html>`
	if got := ExtractTitle(doc); got != "My Page" {
		t.Fatalf("expected first title trimmed, got %q", got)
	}
	if got := ExtractTitle("<body>no title</body>"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestExtractIconCandidates(t *testing.T) {
	doc := `<head>
		<link rel="stylesheet" href="style.css">
		<link rel="icon" href="/fav.png" sizes="16x16 32x32" type="image/png">
		<link rel="SHORTCUT ICON" href="/favicon.ico">
		<link rel="apple-touch-icon" href="/touch.png" sizes="180x180">
		<link rel="mask-icon" href="/mask.svg" sizes="any">
		<link rel="canonical" href="https://example.com">
	</head>`

	cands := ExtractIconCandidates(doc)
	if len(cands) != 4 {
		t.Fatalf("expected 4 candidates, got %d: %+v", len(cands), cands)
	}
	if cands[0].Sizes != 32 {
		t.Fatalf("expected max edge 32, got %d", cands[0].Sizes)
	}
	if cands[1].Rel != "shortcut icon" {
		t.Fatalf("rel should be lowercased, got %q", cands[1].Rel)
	}
	if cands[3].Sizes != SizeAny {
		t.Fatalf(`sizes="any" should map to SizeAny, got %d`, cands[3].Sizes)
	}
}

func TestParseSizes(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"16x16", 16},
		{"16x16 64x64 32x32", 64},
		{"any", SizeAny},
		{"garbage", 0},
		{"", 0},
		{"180X180", 180},
	}
	for _, tt := range tests {
		if got := parseSizes(tt.in); got != tt.want {
			t.Errorf("parseSizes(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestAbsoluteURL(t *testing.T) {
	base := "https://example.com/articles/post"
	tests := []struct {
		href string
		want string
	}{
		{"/fav.ico", "https://example.com/fav.ico"},
		{"img/icon.png", "https://example.com/articles/img/icon.png"},
		{"https://cdn.example.com/i.png", "https://cdn.example.com/i.png"},
		{"//cdn.example.com/i.png", "https://cdn.example.com/i.png"},
		{"data:image/png;base64,AAAA", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := AbsoluteURL(base, tt.href); got != tt.want {
			t.Errorf("AbsoluteURL(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}

func TestDecodeEntities(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Fish &amp; Chips", "Fish & Chips"},
		{"&lt;b&gt;bold&lt;/b&gt;", "<b>bold</b>"},
		{"&quot;quoted&quot; &apos;single&apos;", `"quoted" 'single'`},
		{"caf&#233;", "café"},
		{"snow &#x2603;", "snow ☃"},
		{"a&nbsp;b", "a b"},
		{"&bogus; stays", "&bogus; stays"},
		{"no entities", "no entities"},
		{"&#xZZ; invalid", "&#xZZ; invalid"},
	}
	for _, tt := range tests {
		if got := DecodeEntities(tt.in); got != tt.want {
			t.Errorf("DecodeEntities(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
