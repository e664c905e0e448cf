package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/memohai/tokembed/internal/channel"
)

// Type is the channel type served by this adapter.
const Type channel.ChannelType = "discord"

var errGatewayDisconnected = errors.New("discord gateway disconnected")

// discordSession is the subset of *discordgo.Session REST calls the adapter uses.
type discordSession interface {
	typingSession
	MessageReactionAdd(channelID, messageID, emoji string, options ...discordgo.RequestOption) error
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type DiscordAdapter struct {
	logger         *slog.Logger
	session        *discordgo.Session
	api            discordSession
	typingInterval time.Duration

	mu     sync.RWMutex
	status channel.ConnectionStatus
}

// NewSession creates a bot session that receives guild and direct messages
// including their content. httpTimeout bounds every REST call, uploads included.
func NewSession(token string, httpTimeout time.Duration) (*discordgo.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("discord bot token is required")
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent
	if httpTimeout > 0 {
		session.Client = &http.Client{Timeout: httpTimeout}
	}
	return session, nil
}

func NewDiscordAdapter(log *slog.Logger, session *discordgo.Session) *DiscordAdapter {
	a := newDiscordAdapter(log, session)
	a.session = session
	return a
}

func newDiscordAdapter(log *slog.Logger, api discordSession) *DiscordAdapter {
	if log == nil {
		log = slog.Default()
	}
	return &DiscordAdapter{
		logger:         log.With(slog.String("adapter", "discord")),
		api:            api,
		typingInterval: typingRefreshInterval,
		status:         channel.ConnectionStatus{ChannelType: Type},
	}
}

func (a *DiscordAdapter) Type() channel.ChannelType {
	return Type
}

func (a *DiscordAdapter) Connect(ctx context.Context, handler channel.InboundHandler) (channel.Connection, error) {
	if a.session == nil {
		return nil, fmt.Errorf("discord session is not configured")
	}
	if handler == nil {
		return nil, fmt.Errorf("inbound handler is required")
	}
	a.logger.Info("start")

	removers := []func(){
		a.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
			a.onReady(r)
		}),
		a.session.AddHandler(func(s *discordgo.Session, _ *discordgo.Resumed) {
			a.markStatus(true, nil)
		}),
		a.session.AddHandler(func(s *discordgo.Session, _ *discordgo.Disconnect) {
			a.markStatus(false, errGatewayDisconnected)
		}),
		a.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
			a.dispatch(ctx, handler, m.Message)
		}),
	}
	removeAll := func() {
		for _, remove := range removers {
			remove()
		}
	}

	if err := a.session.Open(); err != nil {
		removeAll()
		a.markStatus(false, err)
		return nil, fmt.Errorf("discord open connection: %w", err)
	}

	stop := func(stopCtx context.Context) error {
		a.logger.Info("stop")
		removeAll()
		a.markStatus(false, nil)
		return a.session.Close()
	}
	return channel.NewConnection(Type, stop), nil
}

func (a *DiscordAdapter) onReady(r *discordgo.Ready) {
	a.markStatus(true, nil)
	if r == nil || r.User == nil {
		return
	}
	a.logger.Info("ready",
		slog.String("username", r.User.Username),
		slog.String("user_id", r.User.ID),
		slog.Int("guilds", len(r.Guilds)),
	)
}

// dispatch runs handler for one gateway message on its own goroutine.
func (a *DiscordAdapter) dispatch(ctx context.Context, handler channel.InboundHandler, m *discordgo.Message) {
	if m == nil || m.Author == nil || m.Author.Bot {
		return
	}
	if ctx.Err() != nil {
		return
	}
	text := strings.TrimSpace(m.Content)
	if text == "" {
		return
	}

	msg := toInboundMessage(m, text)
	go func() {
		if err := handler(ctx, msg); err != nil {
			a.logger.Error("handle inbound failed",
				slog.String("message_id", msg.Message.ID),
				slog.String("channel_id", msg.ReplyTarget),
				slog.Any("error", err),
			)
		}
	}()
}

func toInboundMessage(m *discordgo.Message, text string) channel.InboundMessage {
	return channel.InboundMessage{
		Channel: Type,
		Message: channel.Message{
			ID:   m.ID,
			Text: text,
		},
		ReplyTarget: m.ChannelID,
		Sender: channel.Identity{
			SubjectID: m.Author.ID,
			Attributes: map[string]string{
				"user_id":  m.Author.ID,
				"username": m.Author.Username,
				"tag":      m.Author.String(),
			},
		},
		Conversation: channel.Conversation{
			ID:      m.ChannelID,
			GuildID: m.GuildID,
		},
	}
}

// ConnectionStatus reports the gateway state for health checks.
func (a *DiscordAdapter) ConnectionStatus() channel.ConnectionStatus {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.status
}

func (a *DiscordAdapter) markStatus(running bool, cause error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	previous := a.status
	a.status = channel.ConnectionStatus{
		ChannelType: Type,
		Running:     running,
		UpdatedAt:   time.Now().UTC(),
	}
	if cause != nil {
		a.status.LastError = cause.Error()
		if previous.LastError != a.status.LastError || previous.Running != running {
			a.logger.Warn("connection health check failed", slog.Any("error", cause))
		}
	}
	if running && strings.TrimSpace(previous.LastError) != "" {
		a.logger.Info("connection health recovered")
	}
}
