package reader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/thedittmer/informant/internal/feed"
	"github.com/thedittmer/informant/internal/models"
	"github.com/thedittmer/informant/internal/ui"
)

var (
	// ErrFetch wraps failures to download or parse the feed.
	ErrFetch = errors.New("unable to fetch news feed")
	// ErrSave wraps failures to write the state file.
	ErrSave = errors.New("unable to save state")
	// ErrNoSuchItem is returned by Read when an item reference matches
	// neither an index nor a title.
	ErrNoSuchItem = errors.New("no such item")
)

// Store persists the state between runs.
type Store interface {
	Load() *models.State
	Save(state *models.State) error
}

type Deps struct {
	Store    Store
	Fetcher  feed.Fetcher
	Renderer *ui.Renderer
	In       io.Reader
	Out      io.Writer
	Logger   *log.Logger
}

type Options struct {
	FeedURL string
	// NoCache forces a fetch even when the cached feed is still fresh.
	NoCache bool
	// DryRun never writes the state file.
	DryRun bool
	Now    func() time.Time
}

// Session is one invocation of informant: the loaded state and the feed it
// operates on. Every change to the read list is saved right away.
type Session struct {
	store    Store
	renderer *ui.Renderer
	in       *bufio.Reader
	out      io.Writer
	logger   *log.Logger
	dryRun   bool

	state *models.State
	items []models.FeedItem
}

// Open loads the state and resolves the feed, either from a fresh cache or
// from the network. A fetched feed replaces the cache and is saved before
// Open returns.
func Open(ctx context.Context, deps Deps, opts Options) (*Session, error) {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard, "", 0)
	}
	if deps.In == nil {
		deps.In = strings.NewReader("")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Session{
		store:    deps.Store,
		renderer: deps.Renderer,
		in:       bufio.NewReader(deps.In),
		out:      deps.Out,
		logger:   deps.Logger,
		dryRun:   opts.DryRun,
		state:    deps.Store.Load(),
	}

	now := opts.Now()
	if s.state.Cache.Valid(now, opts.NoCache) {
		s.logger.Printf("Using cached feed from %s (max-age %v)", s.state.Cache.LastRequest.Format(time.RFC3339), *s.state.Cache.MaxAge)
		s.items = s.state.Cache.Feed
		return s, nil
	}

	result, err := deps.Fetcher.Fetch(ctx, opts.FeedURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	s.items = result.Items
	s.state.Cache.Store(result.Items, now, result.MaxAge)
	if err := s.save(); err != nil {
		return nil, err
	}
	return s, nil
}

// Items returns the feed in its fetched order, newest first.
func (s *Session) Items() []models.FeedItem {
	return s.items
}

func (s *Session) State() *models.State {
	return s.state
}

func (s *Session) IsRead(item models.FeedItem) bool {
	return s.state.ReadList.Has(item)
}

// MarkRead adds item to the read list and saves the state if it changed.
func (s *Session) MarkRead(item models.FeedItem) error {
	if !s.state.ReadList.Mark(item) {
		return nil
	}
	s.logger.Printf("Marked %q as read", item.Title)
	return s.save()
}

// Unread returns the unread items in fetched order.
func (s *Session) Unread() []models.FeedItem {
	var unread []models.FeedItem
	for _, item := range s.items {
		if !s.IsRead(item) {
			unread = append(unread, item)
		}
	}
	return unread
}

func (s *Session) save() error {
	if s.dryRun {
		s.logger.Printf("Not saving state in debug mode")
		return nil
	}
	if err := s.store.Save(s.state); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	return nil
}

func (s *Session) print(text string) {
	fmt.Fprint(s.out, text)
}

// confirm asks a yes/no question. An empty answer means yes. End of input
// means no.
func (s *Session) confirm(question string) bool {
	for {
		s.print(s.renderer.Styles().Prompt.Render(question + " [Y/n] "))
		line, err := s.in.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		if err != nil && line == "" {
			s.print("\n")
			return false
		}

		switch answer {
		case "", "y", "yes":
			return true
		case "n", "no":
			return false
		}
		if err != nil {
			return false
		}
		s.print("Please answer y or n.\n")
	}
}
