package models

import (
	"encoding/json"
	"time"
)

const StateVersion = 1

// State is everything informant keeps between runs.
type State struct {
	Version  int      `json:"version"`
	Cache    Cache    `json:"cache"`
	ReadList ReadList `json:"read"`
}

func NewState() *State {
	return &State{
		Version:  StateVersion,
		ReadList: NewReadList(),
	}
}

// Cache holds the last fetched feed. A nil Feed means nothing is cached, while
// an empty non-nil Feed is a cached feed without entries.
type Cache struct {
	Feed        []FeedItem     `json:"feed"`
	LastRequest *time.Time     `json:"last_request,omitempty"`
	MaxAge      *time.Duration `json:"max_age,omitempty"`
}

// Valid reports whether the cached feed may be used instead of fetching. All
// three fields must be present and the feed must be younger than MaxAge.
func (c Cache) Valid(now time.Time, noCache bool) bool {
	if noCache || c.Feed == nil || c.LastRequest == nil || c.MaxAge == nil {
		return false
	}
	return now.Sub(*c.LastRequest) < *c.MaxAge
}

// Store replaces the cached feed. maxAge may be nil when the server did not
// send one, which leaves the cache invalid for the next run.
func (c *Cache) Store(items []FeedItem, now time.Time, maxAge *time.Duration) {
	if items == nil {
		items = []FeedItem{}
	}
	c.Feed = items
	c.LastRequest = &now
	c.MaxAge = maxAge
}

// ReadList is the ordered set of keys of items the user has seen. It only
// ever grows.
type ReadList struct {
	keys  []string
	index map[string]struct{}
}

func NewReadList(keys ...string) ReadList {
	l := ReadList{index: make(map[string]struct{}, len(keys))}
	for _, k := range keys {
		l.add(k)
	}
	return l
}

func (l *ReadList) add(key string) bool {
	if l.index == nil {
		l.index = make(map[string]struct{})
	}
	if _, ok := l.index[key]; ok {
		return false
	}
	l.index[key] = struct{}{}
	l.keys = append(l.keys, key)
	return true
}

func (l ReadList) contains(key string) bool {
	_, ok := l.index[key]
	return ok
}

// Has reports whether item was read, under either its current or its legacy key.
func (l ReadList) Has(item FeedItem) bool {
	return l.contains(item.Key()) || l.contains(item.LegacyKey())
}

// Mark records item as read and reports whether the list changed.
func (l *ReadList) Mark(item FeedItem) bool {
	if l.Has(item) {
		return false
	}
	return l.add(item.Key())
}

func (l ReadList) Len() int {
	return len(l.keys)
}

func (l ReadList) Keys() []string {
	out := make([]string, len(l.keys))
	copy(out, l.keys)
	return out
}

func (l ReadList) MarshalJSON() ([]byte, error) {
	if l.keys == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.keys)
}

func (l *ReadList) UnmarshalJSON(data []byte) error {
	var keys []string
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*l = NewReadList(keys...)
	return nil
}
