package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// WatchEvent is an event sent to a Display via the bridge channel.
// Implemented by CountMsg, CartEventMsg, WatchDoneMsg, and WatchErrorMsg.
type WatchEvent interface {
	isWatchEvent()
}

func (CountMsg) isWatchEvent()      {}
func (CartEventMsg) isWatchEvent()  {}
func (WatchDoneMsg) isWatchEvent()  {}
func (WatchErrorMsg) isWatchEvent() {}

// Display renders watch events.
type Display interface {
	Run(ctx context.Context, events <-chan WatchEvent) error
}

// DisplayOptions configures display creation.
type DisplayOptions struct {
	Writer     io.Writer // Output destination (default: os.Stdout).
	ForcePlain bool      // Force plain text even if TTY.
}

// NewDisplay returns a TUI display when the writer is a TTY, or a plain
// text display otherwise. ForcePlain overrides TTY detection.
func NewDisplay(opts DisplayOptions) Display {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	if opts.ForcePlain || !isTTY(opts.Writer) {
		return &PlainDisplay{w: opts.Writer}
	}

	return &TUIDisplay{w: opts.Writer}
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Bridge manages the channel between the watch loop and a Display.
type Bridge struct {
	ch chan WatchEvent
}

// NewBridge creates a Bridge with a buffered event channel.
func NewBridge() *Bridge {
	return &Bridge{ch: make(chan WatchEvent, 16)}
}

// Events returns the read-only channel for Display.Run() to consume.
func (b *Bridge) Events() <-chan WatchEvent {
	return b.ch
}

// Count delivers a poll outcome to the display.
// It blocks if the channel buffer (16) is full.
func (b *Bridge) Count(msg CountMsg) {
	b.ch <- msg
}

// CartEvent delivers a cart-updated broadcast to the display.
func (b *Bridge) CartEvent(msg CartEventMsg) {
	b.ch <- msg
}

// Done signals a clean end of the watch and closes the channel.
func (b *Bridge) Done() {
	b.ch <- WatchDoneMsg{}
	close(b.ch)
}

// Error signals watch failure and closes the channel.
func (b *Bridge) Error(err error) {
	b.ch <- WatchErrorMsg{Err: err}
	close(b.ch)
}

// PlainDisplay renders watch events as timestamped text lines.
type PlainDisplay struct {
	w io.Writer
}

// Run loops over events, printing each as a text line. Returns the watch
// error if the loop failed, or the context error if cancelled.
func (d *PlainDisplay) Run(ctx context.Context, events <-chan WatchEvent) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch msg := ev.(type) {
			case CountMsg:
				d.renderCount(msg)
			case CartEventMsg:
				fmt.Fprintf(d.w, "[%s] cart-updated count=%d\n", msg.At.Format("15:04:05"), msg.Count)
			case WatchDoneMsg:
				return nil
			case WatchErrorMsg:
				return msg.Err
			}
		}
	}
}

func (d *PlainDisplay) renderCount(msg CountMsg) {
	if msg.Reason != "" {
		fmt.Fprintf(d.w, "[%s] count unavailable: %s\n", msg.At.Format("15:04:05"), msg.Reason)
		return
	}
	suffix := ""
	if msg.Cached {
		suffix = " (cached)"
	}
	fmt.Fprintf(d.w, "[%s] count=%d%s\n", msg.At.Format("15:04:05"), msg.Count, suffix)
}

// TUIDisplay renders watch events using a Bubble Tea terminal UI.
// Falls back to PlainDisplay if the TUI program fails to start.
type TUIDisplay struct {
	w io.Writer
}

// Run starts the Bubble Tea program and feeds events from the channel.
// If the TUI fails to initialize, it falls back to plain text output.
func (d *TUIDisplay) Run(ctx context.Context, events <-chan WatchEvent) error {
	p := tea.NewProgram(NewModel(), tea.WithOutput(d.w))

	// Forward events through an intermediate channel so we can stop
	// the goroutine cleanly on TUI failure before falling back.
	fwd := make(chan WatchEvent, 16)
	stop := make(chan struct{})

	go func() {
		defer close(fwd)
		for ev := range events {
			select {
			case fwd <- ev:
			case <-stop:
				return
			}
		}
	}()

	go func() {
		for ev := range fwd {
			p.Send(ev)
		}
	}()

	final, err := p.Run()
	if err != nil {
		close(stop)
		// Fall back to plain text for remaining events from the original channel.
		plain := &PlainDisplay{w: d.w}
		return plain.Run(ctx, events)
	}

	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}
