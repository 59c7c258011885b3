package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNormalizeEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n\t\n", "#\n##\n"} {
		if got := Normalize(input); got != "" {
			t.Errorf("Normalize(%q) = %q, want empty", input, got)
		}
	}
}

func TestNormalizePlainProse(t *testing.T) {
	tests := []string{
		"Hello world",
		"  Just some prose.  ",
		"A line\ncontinued on the next",
	}
	for _, input := range tests {
		want := "<p>" + strings.TrimSpace(input) + "</p>"
		if got := Normalize(input); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeHeadingsSplitFromBody(t *testing.T) {
	got := Normalize("# Title\nBody text")
	want := "<h1>Title</h1>\n<p>Body text</p>"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeHeadingLevels(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"# One", "<h1>One</h1>"},
		{"## Two", "<h2>Two</h2>"},
		{"### Three", "<h3>Three</h3>"},
		{"#### Four", "<h3>Four</h3>"},
		{"## Closed ##", "<h2>Closed</h2>"},
		{"# **Bold** heading", "<h1><strong>Bold</strong> heading</h1>"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNormalizeDropsHashOnlyLines(t *testing.T) {
	for _, marker := range []string{"#", "##", "###", "  ## "} {
		input := "Intro\n" + marker + "\nMore"
		got := Normalize(input)
		if strings.Contains(got, "#") {
			t.Errorf("Normalize(%q) = %q, stray marker kept", input, got)
		}
		if !strings.Contains(got, "Intro") || !strings.Contains(got, "More") {
			t.Errorf("Normalize(%q) = %q, lost surrounding text", input, got)
		}
	}
}

func TestNormalizeHeadingDoesNotMergeWithProse(t *testing.T) {
	got := Normalize("Before\n## Middle\nAfter")
	want := "<p>Before</p>\n<h2>Middle</h2>\n<p>After</p>"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeCollapsesBlankRuns(t *testing.T) {
	got := Normalize("One\n\n\n\n\nTwo")
	want := "<p>One</p>\n<p>Two</p>"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeEmphasis(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"some **bold** text", "<p>some <strong>bold</strong> text</p>"},
		{"some *italic* text", "<p>some <em>italic</em> text</p>"},
		{"**bold *italic* mix**", "<p><strong>bold <em>italic</em> mix</strong></p>"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNormalizeListsOneListPerLine(t *testing.T) {
	got := Normalize("- one\n* two\n+ three")
	want := "<ul><li>one</li></ul>\n<ul><li>two</li></ul>\n<ul><li>three</li></ul>"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}

	got = Normalize("1. first\n2. second")
	want = "<ol><li>first</li></ol>\n<ol><li>second</li></ol>"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeListItemEmphasis(t *testing.T) {
	got := Normalize("* an *italic* item")
	want := "<ul><li>an <em>italic</em> item</li></ul>"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeBlockquote(t *testing.T) {
	got := Normalize("> quoted words")
	want := "<blockquote><p>quoted words</p></blockquote>"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeImages(t *testing.T) {
	data := "data:image/png;base64,iVBORw0KGgo="
	got := Normalize("![a \"pic\"](" + data + ")")
	want := `<img src="` + data + `" alt="a &#34;pic&#34;">`
	if got != want {
		t.Errorf("Normalize data image = %q, want %q", got, want)
	}

	got = Normalize("Look ![remote](https://example.com/x.png) here")
	if strings.Contains(got, "example.com") || strings.Contains(got, "<img") {
		t.Errorf("remote image should be dropped: %q", got)
	}
}

func TestNormalizeDropsImagesWithParenthesesInURL(t *testing.T) {
	for _, input := range []string{
		"![x](javascript:alert(1))",
		"Before ![x](https://example.com/a_(b).png) after",
	} {
		got := Normalize(input)
		if strings.Contains(got, ")") || strings.Contains(got, "alert") {
			t.Errorf("Normalize(%q) = %q, image reference left behind", input, got)
		}
	}
}

func TestNormalizeWrapsInlineLeadParagraphs(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold** text", "<p><strong>bold</strong> text</p>"},
		{"*lead* in", "<p><em>lead</em> in</p>"},
		{"# Head\n**bold** body", "<h1>Head</h1>\n<p><strong>bold</strong> body</p>"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNormalizeSanitizes(t *testing.T) {
	tests := []struct {
		input     string
		forbidden []string
	}{
		{"<script>alert(1)</script>", []string{"script", "alert"}},
		{`</div></label><form action="https://evil.example">`, []string{"</div>", "</label>", "form", "evil"}},
		{`<img src="x" onerror="alert(1)">`, []string{"onerror", `src="x"`}},
		{`Text <a href="javascript:alert(1)">link</a>`, []string{"javascript"}},
	}
	for _, tt := range tests {
		got := Normalize(tt.input)
		for _, bad := range tt.forbidden {
			if strings.Contains(got, bad) {
				t.Errorf("Normalize(%q) = %q, contains %q", tt.input, got, bad)
			}
		}
	}

	if got := Normalize("<script>alert(1)</script>"); got != "" {
		t.Errorf("script-only content = %q, want empty", got)
	}
}

func TestSanitizeKeepsEditorMarkup(t *testing.T) {
	data := "data:image/png;base64,iVBORw0KGgo="
	in := `<h2>Title</h2><p>Some <strong>bold</strong> and <em>italic</em></p><ul><li>one</li></ul><blockquote><p>q</p></blockquote><img src="` + data + `" alt="pic">`
	if got := Sanitize(in); got != in {
		t.Errorf("Sanitize changed allowed markup:\n got %q\nwant %q", got, in)
	}
	if got := Sanitize(`<img src="https://example.com/x.png" alt="pic">`); strings.Contains(got, "example.com") {
		t.Errorf("remote image src kept: %q", got)
	}
}

func TestNormalizeCRLF(t *testing.T) {
	got := Normalize("# Title\r\nBody")
	want := "<h1>Title</h1>\n<p>Body</p>"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestComponentWritesFragment(t *testing.T) {
	var buf bytes.Buffer
	if err := Component("<p>x</p>").Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if buf.String() != "<p>x</p>" {
		t.Errorf("Component wrote %q", buf.String())
	}
}

func TestComponentSanitizes(t *testing.T) {
	var buf bytes.Buffer
	if err := Component(`<p>x</p></div><script>alert(1)</script>`).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if buf.String() != "<p>x</p>" {
		t.Errorf("Component wrote %q", buf.String())
	}
}
