package slackbot

import (
	"encoding/json"
	"testing"
)

func TestFirstLinkURL(t *testing.T) {
	link := func(url string) Element { return Element{Type: "link", URL: url} }
	text := func(s string) Element { return Element{Type: "text"} }

	tests := []struct {
		name   string
		blocks []Block
		want   string
	}{
		{
			name: "top level link",
			blocks: []Block{{Type: "rich_text", Elements: []Element{
				text("check this out"), link("https://youtu.be/abc123"),
			}}},
			want: "https://youtu.be/abc123",
		},
		{
			name: "nested link",
			blocks: []Block{{Type: "rich_text", Elements: []Element{
				{Type: "rich_text_section", Elements: []Element{
					text("hey"),
					{Type: "rich_text_quote", Elements: []Element{link("https://youtu.be/nested")}},
				}},
			}}},
			want: "https://youtu.be/nested",
		},
		{
			name: "nested leaf wins over later sibling",
			blocks: []Block{{Type: "rich_text", Elements: []Element{
				{Type: "rich_text_section", Elements: []Element{link("https://youtu.be/first")}},
				link("https://youtu.be/second"),
			}}},
			want: "https://youtu.be/first",
		},
		{
			name: "non rich_text blocks skipped",
			blocks: []Block{
				{Type: "section", Elements: []Element{link("https://youtu.be/skipme")}},
				{Type: "rich_text", Elements: []Element{link("https://youtu.be/found")}},
			},
			want: "https://youtu.be/found",
		},
		{
			name: "no link anywhere",
			blocks: []Block{{Type: "rich_text", Elements: []Element{
				text("nothing"), {Type: "rich_text_section", Elements: []Element{text("here")}},
			}}},
			want: "",
		},
		{
			name:   "no blocks",
			blocks: nil,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstLinkURL(tt.blocks); got != tt.want {
				t.Errorf("FirstLinkURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeMention(t *testing.T) {
	payload := json.RawMessage(`{
		"type": "event_callback",
		"event": {
			"type": "app_mention",
			"user": "U123",
			"channel": "C456",
			"ts": "1700000000.000100",
			"thread_ts": "1699999999.000001",
			"blocks": [
				{"type": "rich_text", "elements": [
					{"type": "rich_text_section", "elements": [
						{"type": "user", "user_id": "UBOT"},
						{"type": "link", "url": "https://www.youtube.com/watch?v=xyz789&t=30s"}
					]}
				]}
			]
		}
	}`)

	event, err := decodeMention(payload)
	if err != nil {
		t.Fatalf("decodeMention() error = %v", err)
	}

	if event.Type != "app_mention" || event.User != "U123" || event.Channel != "C456" {
		t.Errorf("unexpected event: %+v", event)
	}
	if event.ThreadTS != "1699999999.000001" {
		t.Errorf("ThreadTS = %q", event.ThreadTS)
	}
	if got := FirstLinkURL(event.Blocks); got != "https://www.youtube.com/watch?v=xyz789&t=30s" {
		t.Errorf("FirstLinkURL = %q", got)
	}
}

func TestDecodeMention_Garbage(t *testing.T) {
	if _, err := decodeMention(json.RawMessage(`{not json`)); err == nil {
		t.Error("expected error for malformed payload")
	}
}
