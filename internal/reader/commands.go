package reader

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/thedittmer/informant/internal/models"
)

// Check counts the unread items. A single unread item is shown in full and
// marked read; for more than one only the count is printed. The count is
// returned so it can become the exit status.
func (s *Session) Check() (int, error) {
	unread := s.Unread()
	switch len(unread) {
	case 0:
		s.logger.Printf("No unread news")
	case 1:
		s.print(s.renderer.RenderFull(unread[0], true))
		if err := s.MarkRead(unread[0]); err != nil {
			return 1, err
		}
	default:
		msg := fmt.Sprintf("There are %d unread news items!", len(unread))
		s.print(s.renderer.Styles().Count.Render(msg))
		s.print(" Use \"informant list\" or \"informant read\" to see them.\n")
	}
	return len(unread), nil
}

type ListOptions struct {
	Reverse bool
	Unread  bool
}

// List prints one line per item. Indexes are assigned after filtering and
// ordering, starting at zero.
func (s *Session) List(opts ListOptions) error {
	items := s.items
	if opts.Unread {
		items = s.Unread()
	}
	if opts.Reverse {
		items = reversed(items)
	}

	for i, item := range items {
		s.print(s.renderer.RenderListLine(item, i, s.IsRead(item)))
	}
	return nil
}

type ReadOptions struct {
	// Item is an index into the fetched feed or an exact title.
	Item string
	All  bool
}

// Validate rejects option combinations Read cannot honour. It needs no
// session, so callers can run it before fetching.
func (o ReadOptions) Validate() error {
	if o.All && o.Item != "" {
		return errors.New("an item and --all cannot be used together")
	}
	return nil
}

// Read marks items as read. With All every item is marked silently. With an
// Item only that item is shown and marked. Otherwise all unread items are
// shown oldest first, asking after each one whether to continue.
func (s *Session) Read(opts ReadOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	switch {
	case opts.All:
		return s.readAll()
	case opts.Item != "":
		item, err := s.Find(opts.Item)
		if err != nil {
			return err
		}
		unread := !s.IsRead(item)
		s.print(s.renderer.RenderFull(item, unread))
		return s.MarkRead(item)
	default:
		return s.readUnread()
	}
}

// Find resolves an item reference. An integer within range is an index into
// the unfiltered feed; anything else is matched against titles, first match
// wins.
func (s *Session) Find(ref string) (models.FeedItem, error) {
	if n, err := strconv.Atoi(ref); err == nil && n >= 0 && n < len(s.items) {
		return s.items[n], nil
	}
	for _, item := range s.items {
		if item.Title == ref {
			return item, nil
		}
	}
	return models.FeedItem{}, fmt.Errorf("%w: %q", ErrNoSuchItem, ref)
}

func (s *Session) readAll() error {
	changed := false
	for _, item := range s.items {
		if s.state.ReadList.Mark(item) {
			changed = true
		}
	}
	if !changed {
		return nil
	}
	s.logger.Printf("Marked all %d items as read", len(s.items))
	return s.save()
}

func (s *Session) readUnread() error {
	unread := reversed(s.Unread())
	for i, item := range unread {
		if i > 0 {
			s.print("\n")
		}
		s.print(s.renderer.RenderFull(item, true))
		if err := s.MarkRead(item); err != nil {
			return err
		}
		if i < len(unread)-1 && !s.confirm("Continue reading?") {
			break
		}
	}
	return nil
}

func reversed(items []models.FeedItem) []models.FeedItem {
	out := make([]models.FeedItem, len(items))
	for i, item := range items {
		out[len(items)-1-i] = item
	}
	return out
}
