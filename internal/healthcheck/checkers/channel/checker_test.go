package channelchecker

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/memohai/tokembed/internal/channel"
	"github.com/memohai/tokembed/internal/healthcheck"
)

type fakeConnectionObserver struct {
	status channel.ConnectionStatus
}

func (f *fakeConnectionObserver) ConnectionStatus() channel.ConnectionStatus {
	return f.status
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCheckerListChecks(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	cases := []struct {
		name    string
		status  channel.ConnectionStatus
		want    string
		summary string
		detail  string
	}{
		{
			name:    "connected",
			status:  channel.ConnectionStatus{ChannelType: "discord", Running: true, UpdatedAt: now},
			want:    healthcheck.StatusOK,
			summary: "Channel discord is connected.",
		},
		{
			name:    "disconnected with error",
			status:  channel.ConnectionStatus{ChannelType: "discord", LastError: " gateway closed ", UpdatedAt: now},
			want:    healthcheck.StatusError,
			summary: "Channel discord connection failed.",
			detail:  "gateway closed",
		},
		{
			name:    "stopped",
			status:  channel.ConnectionStatus{ChannelType: "discord", UpdatedAt: now},
			want:    healthcheck.StatusError,
			summary: "Channel discord connection is down.",
		},
		{
			name:    "never connected",
			status:  channel.ConnectionStatus{ChannelType: "discord"},
			want:    healthcheck.StatusUnknown,
			summary: "Channel discord has not connected yet.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			checker := NewChecker(newTestLogger(), &fakeConnectionObserver{status: tc.status})
			items := checker.ListChecks(context.Background())
			if len(items) != 1 {
				t.Fatalf("expected 1 check, got %d", len(items))
			}
			item := items[0]
			if item.ID != "channel.connection.discord" {
				t.Fatalf("unexpected id %q", item.ID)
			}
			if item.Status != tc.want || item.Summary != tc.summary || item.Detail != tc.detail {
				t.Fatalf("unexpected check: %+v", item)
			}
		})
	}
}

func TestCheckerNilObserver(t *testing.T) {
	t.Parallel()

	checker := NewChecker(newTestLogger(), nil)
	items := checker.ListChecks(context.Background())
	if len(items) != 1 || items[0].Status != healthcheck.StatusWarn {
		t.Fatalf("expected a single warn check, got %+v", items)
	}
}

func TestCheckerCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	checker := NewChecker(newTestLogger(), &fakeConnectionObserver{})
	if items := checker.ListChecks(ctx); len(items) != 0 {
		t.Fatalf("expected no checks, got %d", len(items))
	}
}
