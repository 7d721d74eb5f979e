package slackbot

import "encoding/json"

// MentionEvent is the subset of the app_mention event payload the bot needs.
// Blocks keep Slack's recursive rich-text shape: an element is either a leaf
// (link, text, emoji, ...) or a container with nested elements.
type MentionEvent struct {
	Type      string  `json:"type"`
	User      string  `json:"user"`
	Channel   string  `json:"channel"`
	Timestamp string  `json:"ts"`
	ThreadTS  string  `json:"thread_ts"`
	Blocks    []Block `json:"blocks"`
}

// Block is one top-level message block.
type Block struct {
	Type     string    `json:"type"`
	Elements []Element `json:"elements"`
}

// Element is a rich-text element. Unknown types decode harmlessly: they get
// no URL and usually no children.
type Element struct {
	Type     string    `json:"type"`
	URL      string    `json:"url"`
	Elements []Element `json:"elements"`
}

// eventsAPIEnvelope wraps the inner event of an Events API payload.
type eventsAPIEnvelope struct {
	Event MentionEvent `json:"event"`
}

// decodeMention extracts the mention event from a raw Events API payload.
func decodeMention(payload json.RawMessage) (MentionEvent, error) {
	var envelope eventsAPIEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return MentionEvent{}, err
	}
	return envelope.Event, nil
}

// FirstLinkURL finds the first hyperlink in the message's rich-text blocks
// via depth-first traversal. Returns "" when no link exists at any depth.
func FirstLinkURL(blocks []Block) string {
	for _, b := range blocks {
		if b.Type != "rich_text" {
			continue
		}
		if url := firstLink(b.Elements); url != "" {
			return url
		}
	}
	return ""
}

func firstLink(elements []Element) string {
	for _, el := range elements {
		if el.Type == "link" && el.URL != "" {
			return el.URL
		}
		if url := firstLink(el.Elements); url != "" {
			return url
		}
	}
	return ""
}

// Mention is the normalized mention handed to the summarizer: who asked,
// where, whether the mention was already threaded, and the first link found
// in the message ("" when there was none).
type Mention struct {
	EventID   string
	UserID    string
	ChannelID string
	ThreadTS  string
	VideoURL  string
}
