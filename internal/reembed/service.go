// Package reembed turns chat messages carrying a TikTok link into a reply with
// the video file and an embed describing it.
package reembed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/memohai/tokembed/internal/channel"
	"github.com/memohai/tokembed/internal/metrics"
	"github.com/memohai/tokembed/internal/tiktok"
)

const (
	DefaultTimeout  = 5 * time.Minute
	reactionTimeout = 10 * time.Second
)

// LinkResolver reads the redirect target of a short link without following it.
type LinkResolver interface {
	Resolve(ctx context.Context, shortURL string) (string, error)
}

// VideoSource loads the metadata of one video.
type VideoSource interface {
	Video(ctx context.Context, id tiktok.VideoReference) (tiktok.Video, error)
}

// MediaFetcher downloads a media file into memory.
type MediaFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Replier is the chat platform side of the pipeline.
type Replier interface {
	channel.Sender
	channel.EmbedSuppressor
	channel.Reactor
	channel.ProcessingStatusNotifier
}

// Service runs the re-embed pipeline for inbound messages.
type Service struct {
	resolver LinkResolver
	videos   VideoSource
	media    MediaFetcher
	replier  Replier
	logger   *slog.Logger
	timeout  time.Duration
}

// NewService creates a pipeline. A non-positive timeout falls back to DefaultTimeout.
func NewService(log *slog.Logger, resolver LinkResolver, videos VideoSource, fetcher MediaFetcher, replier Replier, timeout time.Duration) *Service {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		resolver: resolver,
		videos:   videos,
		media:    fetcher,
		replier:  replier,
		logger:   log.With(slog.String("service", "reembed")),
		timeout:  timeout,
	}
}

// HandleInbound is the gateway entry point. Failures are logged and, once a
// link was recognized, signaled with FailureReaction on the original message.
// They never reach the caller.
func (s *Service) HandleInbound(ctx context.Context, msg channel.InboundMessage) error {
	log := s.messageLogger(msg).With(slog.String("request_id", uuid.NewString()))

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.process(runCtx, log, msg)
	if err == nil {
		return nil
	}

	var perr *Error
	if !errors.As(err, &perr) {
		log.Error("reembed failed", slog.Any("error", err))
		return nil
	}
	log.Error("reembed failed",
		slog.String("stage", string(perr.Stage)),
		slog.String("link", perr.Link.URL),
		slog.String("video_id", perr.VideoID.String()),
		slog.Any("error", perr.Err),
	)

	// The pipeline context may already be expired; the reaction gets its own budget.
	reactCtx, reactCancel := context.WithTimeout(context.WithoutCancel(ctx), reactionTimeout)
	defer reactCancel()
	if rerr := s.replier.React(reactCtx, msg.ReplyTarget, msg.Message.ID, FailureReaction); rerr != nil {
		log.Warn("add failure reaction failed", slog.Any("error", rerr))
	}
	return nil
}

// Process runs the pipeline for one message. A message without a video link
// yields nil and no side effects. Failures are returned as *Error.
func (s *Service) Process(ctx context.Context, msg channel.InboundMessage) error {
	return s.process(ctx, s.messageLogger(msg), msg)
}

func (s *Service) process(ctx context.Context, log *slog.Logger, msg channel.InboundMessage) error {
	link, ok := tiktok.MatchLink(msg.Message.Text)
	if !ok {
		return nil
	}
	metrics.RecordLinkMatched(link.Form.String())

	err := s.reembed(ctx, log, msg, link)
	if err != nil {
		var perr *Error
		stage := ""
		if errors.As(err, &perr) {
			stage = string(perr.Stage)
		}
		metrics.RecordReembed(metrics.ResultFailure, stage)
		return err
	}
	metrics.RecordReembed(metrics.ResultSuccess, "")
	return nil
}

func (s *Service) reembed(ctx context.Context, log *slog.Logger, msg channel.InboundMessage, link tiktok.Link) error {
	id, err := s.identify(ctx, link)
	if err != nil {
		return &Error{Stage: StageRedirect, Link: link, Err: err}
	}
	log = log.With(slog.String("video_id", id.String()))
	log.Info("re-embedding video",
		slog.String("form", link.Form.String()),
		slog.String("user", msg.Sender.Attribute("tag")),
	)

	typing := s.replier.ProcessingStarted(ctx, msg)
	defer typing.Stop()

	start := time.Now()
	video, err := s.videos.Video(ctx, id)
	metrics.ObserveStage(string(StageMetadata), start)
	if err != nil {
		return &Error{Stage: StageMetadata, Link: link, VideoID: id, Err: err}
	}

	start = time.Now()
	data, err := s.media.Fetch(ctx, video.VideoURL)
	metrics.ObserveStage(string(StageMedia), start)
	if err != nil {
		return &Error{Stage: StageMedia, Link: link, VideoID: id, Err: err}
	}
	metrics.ObserveMediaBytes(len(data))

	start = time.Now()
	err = s.reply(ctx, log, msg, ComposeReply(msg, video, data))
	metrics.ObserveStage(string(StageReply), start)
	if err != nil {
		return &Error{Stage: StageReply, Link: link, VideoID: id, Err: err}
	}
	log.Debug("reembed sent")
	return nil
}

// identify returns the video id of link, resolving short links with one redirect lookup.
func (s *Service) identify(ctx context.Context, link tiktok.Link) (tiktok.VideoReference, error) {
	if link.Form == tiktok.LinkDesktop {
		return link.VideoID, nil
	}
	start := time.Now()
	defer metrics.ObserveStage(string(StageRedirect), start)

	location, err := s.resolver.Resolve(ctx, link.URL)
	if err != nil {
		return "", err
	}
	id, ok := tiktok.ExtractVideoID(location)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a video link", tiktok.ErrRedirectFailed, location)
	}
	return id, nil
}

// reply hides the native preview and posts the re-embed concurrently. A
// failed suppression is a reply failure even when the re-embed was posted.
func (s *Service) reply(ctx context.Context, log *slog.Logger, msg channel.InboundMessage, out channel.OutboundMessage) error {
	var suppressErr, sendErr error
	var g errgroup.Group
	g.Go(func() error {
		suppressErr = s.replier.SuppressEmbeds(ctx, msg.ReplyTarget, msg.Message.ID)
		return nil
	})
	g.Go(func() error {
		sendErr = s.replier.Send(ctx, out)
		return nil
	})
	_ = g.Wait()

	if sendErr != nil {
		return fmt.Errorf("%w: %w", ErrReplyFailed, sendErr)
	}
	if suppressErr != nil {
		log.Warn("reply posted but native embed was not suppressed", slog.Any("error", suppressErr))
		return fmt.Errorf("%w: suppress embeds: %w", ErrReplyFailed, suppressErr)
	}
	return nil
}

func (s *Service) messageLogger(msg channel.InboundMessage) *slog.Logger {
	return s.logger.With(
		slog.String("message_id", msg.Message.ID),
		slog.String("channel_id", msg.ReplyTarget),
		slog.String("user_id", msg.Sender.SubjectID),
	)
}
