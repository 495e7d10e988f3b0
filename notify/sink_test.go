package notify

import (
	"bytes"
	"context"
	"testing"
)

func TestSinkFunc_Adapts(t *testing.T) {
	var got int
	sink := SinkFunc(func(_ context.Context, count int) {
		got = count
	})

	sink.UpdateCount(context.Background(), 7)

	if got != 7 {
		t.Errorf("got %d, want 7", got)
	}
}

func TestWriterSink_WritesLinePerUpdate(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)

	sink.UpdateCount(context.Background(), 2)
	sink.UpdateCount(context.Background(), 5)

	if got, want := buf.String(), "2\n5\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
