package discord

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/memohai/tokembed/internal/channel"
)

func TestStartTyping_RefreshesUntilStopped(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	session := &fakeSession{}
	stop := startTyping(context.Background(), session, "chan-1", 5*time.Millisecond, slog.Default())

	deadline := time.Now().Add(time.Second)
	for session.typingCalls() < 2 && time.Now().Before(deadline) {
		time.Sleep(2 * time.Millisecond)
	}
	stop()

	calls := session.typingCalls()
	if calls < 2 {
		t.Fatalf("expected the indicator to be refreshed, got %d calls", calls)
	}
	time.Sleep(20 * time.Millisecond)
	if session.typingCalls() != calls {
		t.Fatalf("typing continued after stop")
	}
}

func TestStartTyping_StopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	stop := startTyping(ctx, &fakeSession{typingErr: errors.New("rate limited")}, "chan-1", time.Hour, slog.Default())
	cancel()
	stop()
}

func TestProcessingStarted(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	session := &fakeSession{}
	adapter := newDiscordAdapter(nil, session)

	empty := adapter.ProcessingStarted(context.Background(), channel.InboundMessage{})
	empty.Stop()
	if session.typingCalls() != 0 {
		t.Fatalf("typing must not start without a target")
	}

	handle := adapter.ProcessingStarted(context.Background(), channel.InboundMessage{ReplyTarget: "chan-1"})
	handle.Stop()
	handle.Stop()
	if session.typingCalls() < 1 {
		t.Fatalf("typing indicator was never sent")
	}
}
