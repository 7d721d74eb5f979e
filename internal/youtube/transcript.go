// Package youtube fetches video transcripts and metadata from YouTube.
package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/leo-sizaret/youtube-summary-slack-bot/internal/transcript"
)

// Sentinel errors for transcript fetching. Use errors.Is() in calling code.
var (
	// ErrNoTranscript indicates the video has no captions in the requested
	// language.
	ErrNoTranscript = errors.New("no transcript found")

	// ErrVideoUnavailable indicates the video cannot be accessed at all,
	// typically because it is private or deleted.
	ErrVideoUnavailable = errors.New("video unavailable")
)

const defaultBaseURL = "https://www.youtube.com"

// Pages served to obvious bots omit caption data, so pretend to be a browser.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// Client fetches caption transcripts by scraping the watch page for its
// caption track list and downloading the timed-text track.
type Client struct {
	httpClient *http.Client
	baseURL    string
	language   string
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at a different endpoint (for testing).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(base, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLanguage selects the caption track language (default "en").
func WithLanguage(lang string) Option {
	return func(c *Client) {
		c.language = lang
	}
}

// NewClient creates a transcript client. If proxyURL is non-empty, all
// requests are routed through that forward proxy.
func NewClient(proxyURL string, opts ...Option) (*Client, error) {
	hc := &http.Client{Timeout: 30 * time.Second}
	if proxyURL != "" {
		parsed, err := url.Parse(proxyURL)
		if err != nil {
			return nil, fmt.Errorf("parse proxy url: %w", err)
		}
		hc.Transport = &http.Transport{Proxy: http.ProxyURL(parsed)}
	}

	c := &Client{
		httpClient: hc,
		baseURL:    defaultBaseURL,
		language:   "en",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// captionTrack is one entry of the watch page's caption track list.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

// Fetch retrieves the timed caption entries for a video, ordered by start
// offset. Returns ErrVideoUnavailable or ErrNoTranscript for the known
// failure modes.
func (c *Client) Fetch(ctx context.Context, videoID string) ([]transcript.Entry, error) {
	page, err := c.get(ctx, c.baseURL+"/watch?v="+url.QueryEscape(videoID))
	if err != nil {
		return nil, fmt.Errorf("fetch watch page: %w", err)
	}

	if isUnavailable(page) {
		return nil, fmt.Errorf("%w: %s", ErrVideoUnavailable, videoID)
	}

	track, err := pickTrack(page, c.language)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, track.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("fetch caption track: %w", err)
	}

	entries, err := parseTimedText(body)
	if err != nil {
		return nil, fmt.Errorf("parse caption track: %w", err)
	}
	return entries, nil
}

func (c *Client) get(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", c.language)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}
	return string(body), nil
}

// isUnavailable checks the player response embedded in the watch page for a
// terminal playability status.
func isUnavailable(page string) bool {
	idx := strings.Index(page, `"playabilityStatus":`)
	if idx < 0 {
		return false
	}
	// Only look at the status object itself, not the whole page.
	window := page[idx:]
	if len(window) > 300 {
		window = window[:300]
	}
	return strings.Contains(window, `"status":"ERROR"`) ||
		strings.Contains(window, `"status":"LOGIN_REQUIRED"`) ||
		strings.Contains(window, `"status":"UNPLAYABLE"`)
}

// pickTrack finds the caption track list in the watch page and selects the
// track for the requested language, preferring manual captions over
// auto-generated ones ("asr").
func pickTrack(page, lang string) (captionTrack, error) {
	const marker = `"captionTracks":`
	idx := strings.Index(page, marker)
	if idx < 0 {
		return captionTrack{}, ErrNoTranscript
	}

	var tracks []captionTrack
	dec := json.NewDecoder(strings.NewReader(page[idx+len(marker):]))
	if err := dec.Decode(&tracks); err != nil {
		return captionTrack{}, fmt.Errorf("decode caption tracks: %w", err)
	}

	var auto *captionTrack
	for i, t := range tracks {
		if t.LanguageCode != lang && !strings.HasPrefix(t.LanguageCode, lang+"-") {
			continue
		}
		if t.Kind == "asr" {
			if auto == nil {
				auto = &tracks[i]
			}
			continue
		}
		return t, nil
	}
	if auto != nil {
		return *auto, nil
	}
	return captionTrack{}, fmt.Errorf("%w: no %q track", ErrNoTranscript, lang)
}

// timedTextDoc is the XML payload of a caption track.
type timedTextDoc struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Start float64 `xml:"start,attr"`
		Dur   float64 `xml:"dur,attr"`
		Body  string  `xml:",chardata"`
	} `xml:"text"`
}

func parseTimedText(body string) ([]transcript.Entry, error) {
	var doc timedTextDoc
	if err := xml.Unmarshal([]byte(body), &doc); err != nil {
		return nil, err
	}

	entries := make([]transcript.Entry, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		// Track text is HTML-escaped inside the XML, so unescape once more
		// after the XML decoder has done its pass.
		text := strings.TrimSpace(html.UnescapeString(t.Body))
		if text == "" {
			continue
		}
		entries = append(entries, transcript.Entry{
			Text:     text,
			Start:    t.Start,
			Duration: t.Dur,
		})
	}
	return entries, nil
}
