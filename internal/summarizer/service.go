// Package summarizer orchestrates the mention-to-summary pipeline: extract
// the video, fetch its transcript, segment it, ask the model, post back.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/leo-sizaret/youtube-summary-slack-bot/internal/metrics"
	"github.com/leo-sizaret/youtube-summary-slack-bot/internal/prompt"
	"github.com/leo-sizaret/youtube-summary-slack-bot/internal/slackbot"
	"github.com/leo-sizaret/youtube-summary-slack-bot/internal/transcript"
	"github.com/leo-sizaret/youtube-summary-slack-bot/internal/youtube"
)

// ChatClient posts and deletes chat messages.
type ChatClient interface {
	PostMessage(ctx context.Context, channelID, text, threadTS string) (string, error)
	DeleteMessage(ctx context.Context, channelID, ts string) error
}

// TranscriptSource fetches caption entries and video metadata.
type TranscriptSource interface {
	Fetch(ctx context.Context, videoID string) ([]transcript.Entry, error)
	VideoTitle(ctx context.Context, videoID string) (string, error)
}

// SummaryModel generates a summary from an assembled prompt.
type SummaryModel interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// User-facing messages for the failure taxonomy.
const (
	msgInvalidURL   = "Please provide a valid YouTube URL!"
	msgNoTranscript = "Couldn't find English captions for this video."
	msgUnavailable  = "This video is unavailable. It might be private or deleted."
)

// progressMarkers are the cosmetic emoji names used in the progress
// placeholder. Any pick is fine; the choice carries no meaning.
var progressMarkers = []string{
	"hourglass_flowing_sand",
	"writing_hand",
	"memo",
	"eyes",
	"robot_face",
	"popcorn",
}

// Service handles one mention event at a time per invocation. It holds only
// read-only dependencies, so concurrent invocations are safe.
type Service struct {
	chat          ChatClient
	source        TranscriptSource
	model         SummaryModel
	template      prompt.Template
	transcriptCap int
	pickMarker    func() string
	collector     *metrics.Collector
	logger        *slog.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithMarkerPicker replaces the random progress-marker pick (for tests).
func WithMarkerPicker(pick func() string) Option {
	return func(s *Service) {
		s.pickMarker = pick
	}
}

// WithTranscriptCap bounds the transcript portion of the prompt, in
// characters. Zero means unlimited.
func WithTranscriptCap(limit int) Option {
	return func(s *Service) {
		s.transcriptCap = limit
	}
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService wires the pipeline's collaborators together.
func NewService(chat ChatClient, source TranscriptSource, model SummaryModel, template prompt.Template, collector *metrics.Collector, opts ...Option) *Service {
	s := &Service{
		chat:      chat,
		source:    source,
		model:     model,
		template:  template,
		collector: collector,
		pickMarker: func() string {
			return progressMarkers[rand.Intn(len(progressMarkers))]
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HandleMention runs the full pipeline for one mention event. Every failure
// is converted into exactly one user-visible message; nothing is retried and
// nothing escapes.
func (s *Service) HandleMention(ctx context.Context, m slackbot.Mention) {
	log := s.logger.With("event_id", m.EventID, "channel", m.ChannelID, "user", m.UserID)

	videoID := youtube.ExtractVideoID(m.VideoURL)
	if videoID == "" {
		log.Warn("no valid video URL in mention", "url", m.VideoURL)
		s.say(ctx, m, msgInvalidURL)
		s.collector.RecordEvent(true)
		return
	}
	log = log.With("video_id", videoID)

	// Progress placeholder goes up before the slow calls start. It is
	// removed on every exit path from here on, success or not.
	progressText := fmt.Sprintf(":%s: summarizing <%s|your video>...", s.pickMarker(), m.VideoURL)
	progressTS, err := s.timedPost(ctx, m.ChannelID, progressText, m.ThreadTS)
	if err != nil {
		log.Error("failed to post progress message", "error", err)
		s.say(ctx, m, fmt.Sprintf("An unexpected error occurred: %v", err))
		s.collector.RecordEvent(true)
		return
	}
	defer func() {
		if err := s.chat.DeleteMessage(ctx, m.ChannelID, progressTS); err != nil {
			log.Warn("failed to delete progress message", "error", err, "ts", progressTS)
		}
	}()

	entries, err := s.fetchTranscript(ctx, videoID)
	if err != nil {
		switch {
		case errors.Is(err, youtube.ErrNoTranscript):
			log.Error("no captions for video", "error", err)
			s.say(ctx, m, msgNoTranscript)
		case errors.Is(err, youtube.ErrVideoUnavailable):
			log.Error("video unavailable", "error", err)
			s.say(ctx, m, msgUnavailable)
		default:
			log.Error("transcript fetch failed", "error", err)
			s.say(ctx, m, fmt.Sprintf("An unexpected error occurred: %v", err))
		}
		s.collector.RecordEvent(true)
		return
	}

	// Cosmetic only; the raw URL stands in when the lookup fails.
	title, err := s.source.VideoTitle(ctx, videoID)
	if err != nil {
		log.Warn("could not fetch video title", "error", err)
		title = m.VideoURL
	}

	summary, err := s.summarize(ctx, entries)
	if err != nil {
		log.Error("summarization failed", "error", err)
		s.say(ctx, m, fmt.Sprintf("An unexpected error occurred: %v", err))
		s.collector.RecordEvent(true)
		return
	}

	if err := s.post(ctx, m, title, summary); err != nil {
		log.Error("failed to post summary", "error", err)
		s.say(ctx, m, fmt.Sprintf("An unexpected error occurred: %v", err))
		s.collector.RecordEvent(true)
		return
	}

	log.Info("summary posted")
	s.collector.RecordEvent(false)
}

// fetchTranscript times the transcript fetch.
func (s *Service) fetchTranscript(ctx context.Context, videoID string) ([]transcript.Entry, error) {
	start := time.Now()
	entries, err := s.source.Fetch(ctx, videoID)
	if err == nil {
		s.collector.RecordTiming(metrics.OpTranscriptFetch, time.Since(start))
	}
	return entries, err
}

// summarize segments the transcript, assembles the prompt, and calls the
// model.
func (s *Service) summarize(ctx context.Context, entries []transcript.Entry) (string, error) {
	segments := transcript.Split(entries, transcript.SegmentWindow)
	overview := transcript.Overview(segments)
	fullText := transcript.FullText(entries)
	assembled := prompt.Assemble(s.template, overview, fullText, s.transcriptCap)

	if s.transcriptCap > 0 && len(fullText) > s.transcriptCap {
		s.logger.Warn("transcript truncated for prompt", "chars", len(fullText), "cap", s.transcriptCap)
	}

	start := time.Now()
	raw, err := s.model.Summarize(ctx, assembled)
	if err != nil {
		return "", err
	}
	s.collector.RecordLLMUsage(time.Since(start), len(assembled), len(raw))

	return slackbot.FormatResponse(raw), nil
}

// post delivers the summary. An unthreaded mention gets a top-level notice
// with the summary as its first threaded reply; a threaded mention gets the
// summary directly in that thread.
func (s *Service) post(ctx context.Context, m slackbot.Mention, title, summary string) error {
	if m.ThreadTS == "" {
		notice := fmt.Sprintf("<@%s> :%s: summarized <%s|%s>, see the thread.", m.UserID, s.pickMarker(), m.VideoURL, title)
		noticeTS, err := s.timedPost(ctx, m.ChannelID, notice, "")
		if err != nil {
			return fmt.Errorf("post notice: %w", err)
		}
		body := fmt.Sprintf("<%s|%s> \n %s", m.VideoURL, title, summary)
		if _, err := s.timedPost(ctx, m.ChannelID, body, noticeTS); err != nil {
			return fmt.Errorf("post summary: %w", err)
		}
		return nil
	}

	body := fmt.Sprintf("<@%s> %s", m.UserID, summary)
	if _, err := s.timedPost(ctx, m.ChannelID, body, m.ThreadTS); err != nil {
		return fmt.Errorf("post summary: %w", err)
	}
	return nil
}

// say posts a user-facing status or error message, threaded if the mention
// itself was threaded. Send failures are logged and swallowed: there is
// nowhere else to report them.
func (s *Service) say(ctx context.Context, m slackbot.Mention, text string) {
	if _, err := s.chat.PostMessage(ctx, m.ChannelID, text, m.ThreadTS); err != nil {
		s.logger.Error("failed to post message", "error", err, "channel", m.ChannelID)
	}
}

func (s *Service) timedPost(ctx context.Context, channelID, text, threadTS string) (string, error) {
	start := time.Now()
	ts, err := s.chat.PostMessage(ctx, channelID, text, threadTS)
	if err == nil {
		s.collector.RecordTiming(metrics.OpChatPost, time.Since(start))
	}
	return ts, err
}
