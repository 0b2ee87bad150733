package models

import (
	"time"
)

type FeedItem struct {
	ID        string    `json:"id,omitempty"`
	Title     string    `json:"title"`
	Link      string    `json:"link,omitempty"`
	Published time.Time `json:"published"`
	Summary   string    `json:"summary"`
}

// Key identifies the item in a ReadList. Feeds that publish a GUID are keyed
// by it. Otherwise the key is the publish timestamp joined with the title,
// which changes whenever the feed edits either of them: an edited item then
// shows up as unread again.
func (i FeedItem) Key() string {
	if i.ID != "" {
		return i.ID
	}
	return i.LegacyKey()
}

// LegacyKey is the timestamp-and-title key, used for items without a GUID
// and for read lists written before the feed carried one.
func (i FeedItem) LegacyKey() string {
	return i.Published.UTC().Format(time.RFC3339) + "|" + i.Title
}
