package ui

import (
	"strings"
	"testing"
)

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "No tags here", "No tags here"},
		{"paragraphs", "<p>First</p><p>Second</p>", "First\n\nSecond"},
		{"inline markup", "<p><b>Bold</b> and <i>italic</i></p>", "Bold and italic"},
		{"whitespace", "<div>  Multiple \n  spaces  </div>", "Multiple spaces"},
		{"line break", "<p>one<br>two</p>", "one\ntwo"},
		{"entities", "<p>Tom &amp; Jerry &lt;3</p>", "Tom & Jerry <3"},
		{"list", "<p>Steps:</p><ul><li>one</li><li>two</li></ul>", "Steps:\n\n* one\n* two"},
		{"list of paragraphs", "<ul><li><p>first</p></li><li><p>second</p></li></ul>", "* first\n* second"},
		{"nested list", "<ul><li>outer<ul><li>inner</li></ul></li></ul>", "* outer\n* inner"},
		{"link", `<p>See <a href="https://example.com/x">the wiki</a>.</p>`, "See the wiki <https://example.com/x>."},
		{"bare link", `<a href="https://example.com">https://example.com</a>`, "https://example.com"},
		{"anchor link", `<a href="#top">top</a>`, "top"},
		{"pre", "<p>Run:</p><pre>pacman -Syu\n  --needed</pre>", "Run:\n\npacman -Syu\n  --needed"},
		{"script", "<p>Hi</p><script>alert(1)</script>", "Hi"},
		{"image alt", `<p><img src="x.png" alt="diagram"> below</p>`, "[diagram] below"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HTMLToText(tt.input, 0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("HTMLToText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHTMLToTextWraps(t *testing.T) {
	input := "<p>" + strings.Repeat("word ", 30) + "</p>"

	got, err := HTMLToText(input, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(got, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected wrapped output, got %q", got)
	}
	for _, line := range lines {
		if len(line) > 20 {
			t.Errorf("line exceeds width: %q", line)
		}
		if strings.HasSuffix(line, " ") {
			t.Errorf("line has trailing space: %q", line)
		}
	}
	if strings.Join(strings.Fields(got), " ") != strings.TrimSpace(strings.Repeat("word ", 30)) {
		t.Errorf("wrapping lost words: %q", got)
	}
}

func TestHTMLToTextWrapsListItems(t *testing.T) {
	input := "<ul><li>" + strings.Repeat("item ", 10) + "</li></ul>"

	got, err := HTMLToText(input, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(got, "\n")
	if !strings.HasPrefix(lines[0], "* ") {
		t.Errorf("expected bullet on first line, got %q", lines[0])
	}
	for _, line := range lines[1:] {
		if !strings.HasPrefix(line, "  ") {
			t.Errorf("expected continuation indent, got %q", line)
		}
	}
}

func TestCollapseSpace(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"   ", " "},
		{"a  b", "a b"},
		{" a\n b ", " a b "},
	}
	for _, tt := range tests {
		if got := collapseSpace(tt.input); got != tt.want {
			t.Errorf("collapseSpace(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
