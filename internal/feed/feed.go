package feed

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/thedittmer/informant/internal/models"
)

const maxFeedBytes = int64(8 * 1024 * 1024)

// Result is one fetched feed. MaxAge is nil when the server sent no usable
// Cache-Control max-age.
type Result struct {
	Title  string
	Items  []models.FeedItem
	MaxAge *time.Duration
}

type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Result, error)
}

type Config struct {
	Timeout   time.Duration
	UserAgent string
	Logger    *log.Logger
}

type httpFetcher struct {
	client    *http.Client
	parser    *gofeed.Parser
	userAgent string
	logger    *log.Logger
}

func NewFetcher(cfg Config) Fetcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard, "", 0)
	}
	return &httpFetcher{
		client:    &http.Client{Timeout: cfg.Timeout},
		parser:    gofeed.NewParser(),
		userAgent: cfg.UserAgent,
		logger:    cfg.Logger,
	}
}

func (f *httpFetcher) Fetch(ctx context.Context, url string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	f.logger.Printf("Fetching %s", url)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code: %s", resp.Status)
	}

	feed, err := f.parser.Parse(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	result := &Result{
		Title: feed.Title,
		Items: make([]models.FeedItem, 0, len(feed.Items)),
	}
	for _, item := range feed.Items {
		result.Items = append(result.Items, convertItem(item))
	}

	if maxAge, ok := ParseMaxAge(resp.Header.Get("Cache-Control")); ok {
		result.MaxAge = &maxAge
	}

	f.logger.Printf("Parsed feed %q: %d items, max-age %v", feed.Title, len(result.Items), maxAgeString(result.MaxAge))
	return result, nil
}

func convertItem(item *gofeed.Item) models.FeedItem {
	var published time.Time
	switch {
	case item.UpdatedParsed != nil:
		published = *item.UpdatedParsed
	case item.PublishedParsed != nil:
		published = *item.PublishedParsed
	}

	summary := item.Description
	if summary == "" {
		summary = item.Content
	}

	return models.FeedItem{
		ID:        strings.TrimSpace(item.GUID),
		Title:     strings.TrimSpace(item.Title),
		Link:      item.Link,
		Published: published,
		Summary:   summary,
	}
}

// ParseMaxAge extracts the max-age directive from a Cache-Control header.
// no-store and no-cache override any max-age, and s-maxage is ignored.
func ParseMaxAge(header string) (time.Duration, bool) {
	var (
		maxAge time.Duration
		found  bool
	)
	for _, directive := range strings.Split(header, ",") {
		name, value, _ := strings.Cut(strings.TrimSpace(directive), "=")
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "no-store", "no-cache":
			return 0, false
		case "max-age":
			secs, err := strconv.ParseInt(strings.Trim(strings.TrimSpace(value), `"`), 10, 64)
			if err != nil || secs < 0 {
				continue
			}
			maxAge = time.Duration(secs) * time.Second
			found = true
		}
	}
	return maxAge, found
}

func maxAgeString(d *time.Duration) string {
	if d == nil {
		return "none"
	}
	return d.String()
}
