package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/thedittmer/informant/internal/models"
)

const minTitleWidth = 20

type Options struct {
	Width      int
	Raw        bool
	DateFormat string
	Location   *time.Location
}

// Renderer formats feed items for the terminal.
type Renderer struct {
	width      int
	raw        bool
	dateFormat string
	location   *time.Location
	styles     Styles
}

// NewRenderer builds a renderer for out. Colors and bold text are only
// emitted when out is a terminal that supports them.
func NewRenderer(out io.Writer, opts Options) *Renderer {
	if opts.DateFormat == "" {
		opts.DateFormat = "Mon, 02 Jan 2006 15:04:05"
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Renderer{
		width:      opts.Width,
		raw:        opts.Raw,
		dateFormat: opts.DateFormat,
		location:   opts.Location,
		styles:     NewStyles(lipgloss.NewRenderer(out)),
	}
}

func (r *Renderer) Styles() Styles {
	return r.styles
}

func (r *Renderer) FormatDate(t time.Time) string {
	if t.IsZero() {
		return "unknown date"
	}
	return t.In(r.location).Format(r.dateFormat)
}

// RenderFull renders the title, the date line and the body of item. The body
// is converted to wrapped text unless the renderer is raw, or the conversion
// fails.
func (r *Renderer) RenderFull(item models.FeedItem, unread bool) string {
	titleStyle := r.styles.ReadTitle
	if unread {
		titleStyle = r.styles.UnreadTitle
	}

	var b strings.Builder
	for _, line := range strings.Split(wrap(item.Title, r.width), "\n") {
		b.WriteString(titleStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString(r.styles.Date.Render(r.FormatDate(item.Published)))
	b.WriteString("\n\n")

	body := item.Summary
	if !r.raw {
		if text, err := HTMLToText(item.Summary, r.width); err == nil {
			body = text
		}
	}
	b.WriteString(strings.TrimRight(body, "\n"))
	b.WriteString("\n")
	return b.String()
}

// RenderListLine renders "index: title" with the date right-aligned to the
// terminal width. Titles too long for the space left of the date wrap onto
// continuation lines indented under the title. Unread lines are bold.
func (r *Renderer) RenderListLine(item models.FeedItem, index int, read bool) string {
	style := r.styles.Unread
	if read {
		style = r.styles.Read
	}

	prefix := fmt.Sprintf("%d: ", index)
	date := r.FormatDate(item.Published)
	prefixWidth := lipgloss.Width(prefix)
	dateWidth := lipgloss.Width(date)

	titleWidth := r.width - prefixWidth - dateWidth - 1
	if titleWidth < minTitleWidth {
		titleWidth = minTitleWidth
	}
	lines := strings.Split(wrap(item.Title, titleWidth), "\n")

	first := prefix + lines[0]
	pad := r.width - lipgloss.Width(first) - dateWidth
	if pad < 1 {
		pad = 1
	}

	var b strings.Builder
	b.WriteString(style.Render(first + strings.Repeat(" ", pad) + date))
	for _, line := range lines[1:] {
		b.WriteString("\n")
		b.WriteString(style.Render(strings.Repeat(" ", prefixWidth) + line))
	}
	b.WriteString("\n")
	return b.String()
}

// TerminalWidth returns the width of f when it is a terminal, or fallback.
func TerminalWidth(f *os.File, fallback int) int {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return fallback
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
