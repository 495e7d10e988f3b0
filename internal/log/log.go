// Package log sets up cartctl's Apex logger and bridges it to the cart
// client's structured logging interface.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"

	"github.com/bthinkxdev/sulthan-perfume/observe"
)

// Init sets up Apex with a custom handler and a log level from the
// CARTCTL_LOG env variable.
func Init() {
	level := strings.ToUpper(os.Getenv("CARTCTL_LOG"))
	if level == "" {
		level = "ERROR"
	}
	log.SetHandler(&CustomHandler{})
	log.SetLevelFromString(level)
}

// CustomHandler formats log messages as single text lines. It writes to
// stderr so command output on stdout stays machine-readable.
type CustomHandler struct {
	Writer io.Writer
}

// HandleLog implements the log.Handler interface.
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	w := h.Writer
	if w == nil {
		w = os.Stderr
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	level := strings.ToUpper(e.Level.String())
	fmt.Fprintf(w, "%s %.1s %s", timestamp, level, e.Message)
	for _, k := range e.Fields.Names() {
		fmt.Fprintf(w, " %s=%v", k, e.Fields.Get(k))
	}
	fmt.Fprintln(w)
	return nil
}

// Bridge adapts the Apex logger to the cart client's logging interface,
// so the SDK's structured records land in cartctl's log stream.
//
// Credential-bearing fields are redacted before they reach a handler,
// matching what the SDK's own logger redacts.
type Bridge struct {
	base log.Interface
}

// NewBridge returns a Bridge over the global Apex logger.
func NewBridge() *Bridge {
	return &Bridge{base: log.Log}
}

// NewBridgeWith returns a Bridge over a specific Apex logger.
func NewBridgeWith(base log.Interface) *Bridge {
	return &Bridge{base: base}
}

func (b *Bridge) Debug(ctx context.Context, msg string, fields ...observe.Field) {
	b.entry(fields).Debug(msg)
}

func (b *Bridge) Info(ctx context.Context, msg string, fields ...observe.Field) {
	b.entry(fields).Info(msg)
}

func (b *Bridge) Warn(ctx context.Context, msg string, fields ...observe.Field) {
	b.entry(fields).Warn(msg)
}

func (b *Bridge) Error(ctx context.Context, msg string, fields ...observe.Field) {
	b.entry(fields).Error(msg)
}

// WithCall returns a Bridge whose records carry the call metadata as
// fields.
func (b *Bridge) WithCall(meta observe.CallMeta) observe.Logger {
	fields := log.Fields{"op": meta.Op}
	if meta.Method != "" {
		fields["method"] = meta.Method
	}
	if meta.Path != "" {
		fields["path"] = meta.Path
	}
	if meta.Endpoint != "" {
		fields["endpoint"] = meta.Endpoint
	}
	return &Bridge{base: b.base.WithFields(fields)}
}

func (b *Bridge) entry(fields []observe.Field) log.Interface {
	if len(fields) == 0 {
		return b.base
	}
	out := make(log.Fields, len(fields))
	for _, f := range fields {
		if redactedField(f.Key) {
			out[f.Key] = "[REDACTED]"
			continue
		}
		out[f.Key] = f.Value
	}
	return b.base.WithFields(out)
}

// redactedField mirrors the SDK logger's redaction list.
func redactedField(key string) bool {
	switch key {
	case "password", "secret", "token", "api_key", "apiKey", "credential",
		"authorization", "cookie", "set_cookie", "csrf_token", "session_id":
		return true
	}
	return false
}

var _ observe.Logger = (*Bridge)(nil)
