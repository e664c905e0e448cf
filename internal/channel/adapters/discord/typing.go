package discord

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/memohai/tokembed/internal/channel"
)

// Discord clears the typing indicator after about ten seconds.
const typingRefreshInterval = 8 * time.Second

type typingSession interface {
	ChannelTyping(channelID string, options ...discordgo.RequestOption) error
}

// ProcessingStarted shows the typing indicator in the message's channel until
// the returned handle is stopped.
func (a *DiscordAdapter) ProcessingStarted(ctx context.Context, msg channel.InboundMessage) channel.ProcessingStatusHandle {
	chatID := strings.TrimSpace(msg.ReplyTarget)
	if chatID == "" {
		return channel.ProcessingStatusHandle{}
	}
	return channel.NewProcessingStatusHandle(startTyping(ctx, a.api, chatID, a.typingInterval, a.logger))
}

// startTyping refreshes the indicator until the returned stop func is called.
// stop blocks until the refresher goroutine has exited.
func startTyping(ctx context.Context, session typingSession, chatID string, interval time.Duration, log *slog.Logger) func() {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			if err := session.ChannelTyping(chatID, discordgo.WithContext(ctx)); err != nil && ctx.Err() == nil {
				log.Debug("typing indicator failed", slog.String("channel_id", chatID), slog.Any("error", err))
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}
