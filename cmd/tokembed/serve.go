package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/memohai/tokembed/internal/channel"
	"github.com/memohai/tokembed/internal/channel/adapters/discord"
	"github.com/memohai/tokembed/internal/config"
	"github.com/memohai/tokembed/internal/handlers"
	channelchecker "github.com/memohai/tokembed/internal/healthcheck/checkers/channel"
	"github.com/memohai/tokembed/internal/logger"
	"github.com/memohai/tokembed/internal/media"
	"github.com/memohai/tokembed/internal/reembed"
	"github.com/memohai/tokembed/internal/server"
	"github.com/memohai/tokembed/internal/tiktok"
	"github.com/memohai/tokembed/internal/version"
)

func runServe(configPath string) error {
	app := fx.New(
		fx.Provide(
			func() (config.Config, error) { return provideConfig(configPath) },
			provideLogger,
			provideDiscordSession,
			discord.NewDiscordAdapter,
			provideResolver,
			provideTikTokClient,
			provideMediaFetcher,
			provideReembedService,
			provideChannelChecker,
			provideServerHandler(handlers.NewPingHandler),
			provideServerHandler(provideHealthHandler),
			provideServerHandler(handlers.NewMetricsHandler),
			provideServer,
		),
		fx.Invoke(
			startDiscord,
			startServer,
		),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.With(slog.String("component", "fx"))}
		}),
	)
	if err := app.Err(); err != nil {
		return err
	}
	app.Run()
	return nil
}

func provideServerHandler(fn any) any {
	return fx.Annotate(
		fn,
		fx.As(new(server.Handler)),
		fx.ResultTags(`group:"server_handlers"`),
	)
}

func provideConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func provideDiscordSession(cfg config.Config) (*discordgo.Session, error) {
	return discord.NewSession(cfg.Discord.Token, cfg.HTTP.ReplyTimeout)
}

func provideResolver(cfg config.Config) *tiktok.Resolver {
	return tiktok.NewResolver(tiktok.NewRedirectClient(cfg.HTTP.RedirectTimeout), cfg.TikTok.UserAgent)
}

func provideTikTokClient(log *slog.Logger, cfg config.Config) *tiktok.Client {
	return tiktok.NewClient(log, &http.Client{Timeout: cfg.HTTP.MetadataTimeout}, tiktok.ClientConfig{
		FeedURL:           cfg.TikTok.FeedURL,
		AvatarURLTemplate: cfg.TikTok.AvatarURLTemplate,
		UserAgent:         cfg.TikTok.UserAgent,
	})
}

func provideMediaFetcher(log *slog.Logger, cfg config.Config) *media.Fetcher {
	return media.NewFetcher(log, &http.Client{Timeout: cfg.HTTP.MediaTimeout}, media.FetcherConfig{
		UserAgent: cfg.TikTok.UserAgent,
		MaxBytes:  cfg.Media.MaxBytes,
	})
}

func provideReembedService(log *slog.Logger, cfg config.Config, resolver *tiktok.Resolver, client *tiktok.Client, fetcher *media.Fetcher, adapter *discord.DiscordAdapter) *reembed.Service {
	return reembed.NewService(log, resolver, client, fetcher, adapter, cfg.Pipeline.Timeout)
}

func provideChannelChecker(log *slog.Logger, adapter *discord.DiscordAdapter) *channelchecker.Checker {
	return channelchecker.NewChecker(log, adapter)
}

func provideHealthHandler(log *slog.Logger, checker *channelchecker.Checker) *handlers.HealthHandler {
	return handlers.NewHealthHandler(log, checker)
}

type serverParams struct {
	fx.In

	Logger         *slog.Logger
	Config         config.Config
	ServerHandlers []server.Handler `group:"server_handlers"`
}

func provideServer(params serverParams) *server.Server {
	return server.NewServer(params.Logger, params.Config.Server.Addr, params.ServerHandlers...)
}

func startDiscord(lc fx.Lifecycle, log *slog.Logger, adapter *discord.DiscordAdapter, service *reembed.Service) {
	ctx, cancel := context.WithCancel(context.Background())
	var conn channel.Connection
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			log.Info("starting tokembed", slog.String("version", version.GetInfo()))
			c, err := adapter.Connect(ctx, service.HandleInbound)
			if err != nil {
				cancel()
				return err
			}
			conn = c
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			if conn == nil {
				return nil
			}
			return conn.Stop(stopCtx)
		},
	})
}

func startServer(lc fx.Lifecycle, log *slog.Logger, cfg config.Config, srv *server.Server, shutdowner fx.Shutdowner) {
	if !cfg.Server.Enabled {
		log.Info("ops server disabled")
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("server failed", slog.Any("error", err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Stop(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server stop: %w", err)
			}
			return nil
		},
	})
}
