package youtube

import (
	"net/url"
	"strings"
)

// ExtractVideoID pulls the video ID out of the YouTube URL shapes users
// actually paste:
//   - https://www.youtube.com/watch?v=VIDEO_ID (plus extra params, any order)
//   - https://youtu.be/VIDEO_ID and youtu.be/VIDEO_ID?t=5
//   - https://youtube.com/shorts/VIDEO_ID
//   - mobile subdomains (m.youtube.com)
//
// Returns "" when no ID can be recognized; malformed input never panics.
func ExtractVideoID(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	// Short links carry the ID as the last path segment.
	if strings.Contains(rawURL, "youtu.be") {
		id := rawURL[strings.LastIndex(rawURL, "/")+1:]
		if i := strings.Index(id, "?"); i >= 0 {
			id = id[:i]
		}
		return id
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	if !strings.Contains(parsed.Host, "youtube.com") {
		return ""
	}

	if v := parsed.Query().Get("v"); v != "" {
		return v
	}

	if _, after, found := strings.Cut(parsed.Path, "/shorts/"); found {
		return after
	}

	return ""
}
