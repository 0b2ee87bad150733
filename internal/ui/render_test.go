package ui

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/thedittmer/informant/internal/models"
)

const testDateFormat = "2006-01-02 15:04"

func testRenderer(width int, raw bool) *Renderer {
	return NewRenderer(&bytes.Buffer{}, Options{
		Width:      width,
		Raw:        raw,
		DateFormat: testDateFormat,
		Location:   time.UTC,
	})
}

func testItem(title, summary string) models.FeedItem {
	return models.FeedItem{
		Title:     title,
		Published: time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
		Summary:   summary,
	}
}

func TestRenderFull(t *testing.T) {
	r := testRenderer(80, false)
	item := testItem("Manual intervention required", "<p>Run <code>pacman -Syu</code>.</p><p>Done.</p>")

	got := r.RenderFull(item, true)
	want := "Manual intervention required\n2024-03-01 12:30\n\nRun pacman -Syu.\n\nDone.\n"
	if got != want {
		t.Errorf("RenderFull() =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderFullRaw(t *testing.T) {
	r := testRenderer(80, true)
	item := testItem("Title", "<p>Keep <b>markup</b></p>")

	got := r.RenderFull(item, false)
	if !strings.HasSuffix(got, "\n\n<p>Keep <b>markup</b></p>\n") {
		t.Errorf("raw body should be printed unmodified, got %q", got)
	}
}

func TestRenderFullUnknownDate(t *testing.T) {
	r := testRenderer(80, false)
	item := testItem("Title", "body")
	item.Published = time.Time{}

	if got := r.RenderFull(item, false); !strings.Contains(got, "unknown date") {
		t.Errorf("expected placeholder for missing date, got %q", got)
	}
}

func TestRenderListLine(t *testing.T) {
	r := testRenderer(40, false)
	item := testItem("Short title", "")

	got := r.RenderListLine(item, 3, false)
	want := "3: Short title" + strings.Repeat(" ", 40-len("3: Short title")-len("2024-03-01 12:30")) + "2024-03-01 12:30\n"
	if got != want {
		t.Errorf("RenderListLine() =\n%q\nwant\n%q", got, want)
	}
	if lipgloss.Width(strings.TrimSuffix(got, "\n")) != 40 {
		t.Errorf("expected line to fill the width, got %d", lipgloss.Width(got))
	}
}

func TestRenderListLineWrapsLongTitles(t *testing.T) {
	r := testRenderer(50, false)
	item := testItem("A rather long news title that cannot possibly fit on one line", "")

	got := r.RenderListLine(item, 12, true)
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected wrapped title, got %q", got)
	}

	if !strings.HasPrefix(lines[0], "12: A rather") {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if !strings.HasSuffix(lines[0], "2024-03-01 12:30") {
		t.Errorf("date should be right-aligned on the first line, got %q", lines[0])
	}
	if lipgloss.Width(lines[0]) != 50 {
		t.Errorf("first line should be exactly the width, got %d", lipgloss.Width(lines[0]))
	}
	for _, line := range lines[1:] {
		if !strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "     ") {
			t.Errorf("continuation should be indented under the title, got %q", line)
		}
		if lipgloss.Width(line) > 50-len("2024-03-01 12:30")-1 {
			t.Errorf("continuation line too wide: %q", line)
		}
	}

	lines[0] = strings.TrimPrefix(strings.TrimSuffix(lines[0], "2024-03-01 12:30"), "12:")
	joined := strings.Join(strings.Fields(strings.Join(lines, " ")), " ")
	if joined != item.Title {
		t.Errorf("wrapping lost words: %q", joined)
	}
}

func TestRenderListLineNarrowTerminal(t *testing.T) {
	r := testRenderer(10, false)
	item := testItem("Title", "")

	got := r.RenderListLine(item, 0, false)
	if !strings.HasPrefix(got, "0: Title 2024-03-01 12:30") {
		t.Errorf("expected single space before date when out of room, got %q", got)
	}
}

func TestTerminalWidthFallback(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatalf("create temp: %v", err)
	}
	defer f.Close()

	if got := TerminalWidth(f, 72); got != 72 {
		t.Errorf("expected fallback width for a regular file, got %d", got)
	}
}
