package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewDisplay_PlainWhenNotTTY(t *testing.T) {
	var buf bytes.Buffer

	d := NewDisplay(DisplayOptions{Writer: &buf})
	if _, ok := d.(*PlainDisplay); !ok {
		t.Fatalf("display = %T, want *PlainDisplay", d)
	}
}

func TestNewDisplay_ForcePlain(t *testing.T) {
	d := NewDisplay(DisplayOptions{ForcePlain: true})
	if _, ok := d.(*PlainDisplay); !ok {
		t.Fatalf("display = %T, want *PlainDisplay", d)
	}
}

func TestPlainDisplay_RendersEvents(t *testing.T) {
	var buf bytes.Buffer
	d := &PlainDisplay{w: &buf}
	bridge := NewBridge()

	at := time.Date(2026, 3, 1, 15, 4, 5, 0, time.UTC)
	go func() {
		bridge.Count(CountMsg{Count: 3, At: at})
		bridge.Count(CountMsg{Count: 3, Cached: true, At: at})
		bridge.CartEvent(CartEventMsg{Count: 4, At: at})
		bridge.Count(CountMsg{Reason: "connection refused", At: at})
		bridge.Done()
	}()

	if err := d.Run(context.Background(), bridge.Events()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"[15:04:05] count=3\n",
		"[15:04:05] count=3 (cached)\n",
		"[15:04:05] cart-updated count=4\n",
		"[15:04:05] count unavailable: connection refused\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPlainDisplay_ErrorPropagates(t *testing.T) {
	var buf bytes.Buffer
	d := &PlainDisplay{w: &buf}
	bridge := NewBridge()

	watchErr := errors.New("subscription dropped")
	go bridge.Error(watchErr)

	if err := d.Run(context.Background(), bridge.Events()); !errors.Is(err, watchErr) {
		t.Fatalf("Run() error = %v, want %v", err, watchErr)
	}
}

func TestPlainDisplay_ContextCancel(t *testing.T) {
	var buf bytes.Buffer
	d := &PlainDisplay{w: &buf}
	bridge := NewBridge()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := d.Run(ctx, bridge.Events()); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
}

func TestBridge_DoneClosesChannel(t *testing.T) {
	bridge := NewBridge()
	bridge.Done()

	ev, ok := <-bridge.Events()
	if !ok {
		t.Fatal("expected the done event before close")
	}
	if _, isDone := ev.(WatchDoneMsg); !isDone {
		t.Fatalf("event = %T, want WatchDoneMsg", ev)
	}

	if _, ok := <-bridge.Events(); ok {
		t.Fatal("channel should be closed after Done")
	}
}
