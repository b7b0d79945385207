package netscape

import (
	"reflect"
	"testing"
)

const chromeExport = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><H3 ADD_DATE="1700000000" LAST_MODIFIED="1700000001" PERSONAL_TOOLBAR_FOLDER="true">Bookmarks bar</H3>
    <DL><p>
        <DT><A HREF="https://top.example.com/" ADD_DATE="1700000002">Top Level</A>
        <DT><H3 ADD_DATE="1700000003">Dev</H3>
        <DL><p>
            <DT><A HREF="https://go.dev/" ADD_DATE="1700000004">The Go Programming Language</A>
            <DT><H3>Deeply Nested</H3>
            <DL><p>
                <DT><A HREF="https://pkg.go.dev/">Package Docs</A>
            </DL><p>
        </DL><p>
        <DT><H3>Cooking</H3>
        <DL><p>
            <DT><A HREF="https://recipes.example.com/">Recipes</A>
        </DL><p>
    </DL><p>
</DL><p>`

func TestParseFlatFlattensNesting(t *testing.T) {
	got := ParseFlat(chromeExport)
	want := []Bookmark{
		{Category: "Bookmarks", Title: "Top Level", URL: "https://top.example.com/"},
		{Category: "Dev", Title: "The Go Programming Language", URL: "https://go.dev/"},
		{Category: "Dev", Title: "Package Docs", URL: "https://pkg.go.dev/"},
		{Category: "Cooking", Title: "Recipes", URL: "https://recipes.example.com/"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v\nwant %+v", got, want)
	}
}

func TestParseFlatFirstTopLevelFolderActsAsRoot(t *testing.T) {
	// No toolbar marker anywhere: the first depth-0 folder is the root.
	doc := `<DT><H3>Exported</H3>
<DL><p>
    <DT><H3>Reading</H3>
    <DL><p>
        <DT><A HREF="https://a.example.com/">A</A>
    </DL><p>
    <DT><A HREF="https://b.example.com/">B</A>
</DL><p>`
	got := ParseFlat(doc)
	want := []Bookmark{
		{Category: "Reading", Title: "A", URL: "https://a.example.com/"},
		{Category: "Bookmarks", Title: "B", URL: "https://b.example.com/"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v\nwant %+v", got, want)
	}
}

func TestParseFlatLinkBeforeAnyFolder(t *testing.T) {
	got := ParseFlat(`<DT><A HREF="https://early.example.com/">Early</A>`)
	want := []Bookmark{{Category: "Bookmarks", Title: "Early", URL: "https://early.example.com/"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestParseFlatTitleFallsBackToHref(t *testing.T) {
	got := ParseFlat(`<DT><A HREF="https://untitled.example.com/"></A>`)
	if len(got) != 1 || got[0].Title != "https://untitled.example.com/" {
		t.Fatalf("got %+v, want title falling back to href", got)
	}
}

func TestParseFlatSkipsLinksWithoutHref(t *testing.T) {
	if got := ParseFlat(`<DT><A ADD_DATE="1700000000">No target</A>`); len(got) != 0 {
		t.Fatalf("expected no records, got %+v", got)
	}
}

func TestParseFlatEmptyAndStructuralOnlyInput(t *testing.T) {
	for _, doc := range []string{"", "<DL><DL></DL>", "</DL></DL></DL>", "not html at all"} {
		if got := ParseFlat(doc); len(got) != 0 {
			t.Errorf("ParseFlat(%q) = %+v, want empty", doc, got)
		}
	}
}

func TestParseFlatDecodesAndCollapsesText(t *testing.T) {
	doc := `<DT><H3>Bookmarks Bar</H3>
<DL><p>
    <DT><H3>Fish &amp; Chips
        Guide</H3>
    <DL><p>
        <DT><A HREF="https://x.example.com/">Classic &amp; Modern
            Batter</A>
    </DL><p>
</DL><p>`
	got := ParseFlat(doc)
	if len(got) != 1 {
		t.Fatalf("got %+v", got)
	}
	if got[0].Title != "Classic & Modern Batter" {
		t.Fatalf("title = %q", got[0].Title)
	}
	if got[0].Category != "Fish & Chips Guide" {
		t.Fatalf("category = %q", got[0].Category)
	}
}
