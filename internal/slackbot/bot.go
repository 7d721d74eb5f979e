// Package slackbot connects the summarizer to Slack over socket mode.
package slackbot

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"

	"github.com/leo-sizaret/youtube-summary-slack-bot/internal/config"
)

// Handler processes one mention event. Implementations must be safe for
// concurrent calls; the bot dispatches every event on its own goroutine.
type Handler interface {
	HandleMention(ctx context.Context, m Mention)
}

// Bot runs the socket-mode event loop and dispatches mention events.
type Bot struct {
	api     *slack.Client
	socket  *socketmode.Client
	handler Handler
	logger  *slog.Logger
}

// New creates a Bot from the configured tokens. The mention handler is
// attached in Run, since it usually depends on the chat client this bot
// provides.
func New(cfg config.Config, logger *slog.Logger) *Bot {
	api := slack.New(
		cfg.SlackBotToken,
		slack.OptionAppLevelToken(cfg.SlackAppToken),
	)
	return &Bot{
		api:    api,
		socket: socketmode.New(api),
		logger: logger,
	}
}

// Chat returns a ChatClient backed by this bot's Slack API client.
func (b *Bot) Chat() *ChatClient {
	return &ChatClient{api: b.api}
}

// Run processes socket-mode events until ctx is cancelled, dispatching
// mentions to handler.
func (b *Bot) Run(ctx context.Context, handler Handler) error {
	b.handler = handler
	go b.listen(ctx)
	return b.socket.RunContext(ctx)
}

func (b *Bot) listen(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-b.socket.Events:
			if !ok {
				return
			}
			switch evt.Type {
			case socketmode.EventTypeConnecting:
				b.logger.Debug("connecting to slack")
			case socketmode.EventTypeConnected:
				b.logger.Info("connected to slack")
			case socketmode.EventTypeConnectionError:
				b.logger.Warn("slack connection error", "event", evt.Type)
			case socketmode.EventTypeEventsAPI:
				if evt.Request == nil {
					continue
				}
				// Ack before handling; Slack redelivers unacked envelopes.
				b.socket.Ack(*evt.Request)
				b.dispatch(ctx, evt.Request.Payload)
			}
		}
	}
}

// dispatch decodes the payload and hands app_mention events to the handler.
// Each event runs on its own goroutine; handlers hold no shared mutable
// state, so concurrent mentions are independent.
func (b *Bot) dispatch(ctx context.Context, payload []byte) {
	event, err := decodeMention(payload)
	if err != nil {
		b.logger.Warn("failed to decode event payload", "error", err)
		return
	}
	if event.Type != "app_mention" {
		return
	}

	mention := Mention{
		EventID:   uuid.NewString(),
		UserID:    event.User,
		ChannelID: event.Channel,
		ThreadTS:  event.ThreadTS,
		VideoURL:  FirstLinkURL(event.Blocks),
	}

	b.logger.Info("received mention",
		"event_id", mention.EventID,
		"channel", mention.ChannelID,
		"user", mention.UserID,
		"url", mention.VideoURL,
	)

	go b.handler.HandleMention(ctx, mention)
}

// ChatClient adapts the Slack Web API to the summarizer's chat interface.
type ChatClient struct {
	api *slack.Client
}

// PostMessage sends text to a channel, threaded under threadTS when given.
// Returns the new message's timestamp handle.
func (c *ChatClient) PostMessage(ctx context.Context, channelID, text, threadTS string) (string, error) {
	opts := []slack.MsgOption{slack.MsgOptionText(text, false)}
	if threadTS != "" {
		opts = append(opts, slack.MsgOptionTS(threadTS))
	}
	_, ts, err := c.api.PostMessageContext(ctx, channelID, opts...)
	return ts, err
}

// DeleteMessage removes a previously posted message.
func (c *ChatClient) DeleteMessage(ctx context.Context, channelID, ts string) error {
	_, _, err := c.api.DeleteMessageContext(ctx, channelID, ts)
	return err
}
