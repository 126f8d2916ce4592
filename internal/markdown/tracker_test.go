package markdown

import (
	"context"
	"errors"
	"testing"
)

func TestTrackerDiscardsStaleResolution(t *testing.T) {
	tracker := NewTracker()

	older := tracker.Begin("first body")
	newer := tracker.Begin("second body")

	if tracker.Current(older) {
		t.Fatal("expected older request to be stale")
	}
	if _, ok := tracker.Resolve(older, &Tree{}, nil); ok {
		t.Fatal("expected stale resolution to be discarded")
	}
	if _, ok := tracker.Latest(); ok {
		t.Fatal("expected no result after stale resolution")
	}

	result, ok := tracker.Resolve(newer, &Tree{}, nil)
	if !ok || result.Token != newer {
		t.Fatalf("expected newer resolution to be accepted, got %+v %v", result, ok)
	}
}

func TestTrackerSameContentOutOfOrder(t *testing.T) {
	tracker := NewTracker()
	first := tracker.Begin("body")
	second := tracker.Begin("body")

	if _, ok := tracker.Resolve(second, &Tree{}, nil); !ok {
		t.Fatal("expected second resolution to be accepted")
	}
	if _, ok := tracker.Resolve(first, &Tree{}, nil); ok {
		t.Fatal("expected older resolution not to overwrite a newer one")
	}
}

func TestTrackerRecordsInlineError(t *testing.T) {
	tracker := NewTracker()
	tok := tracker.Begin("body")

	result, ok := tracker.Resolve(tok, &Tree{}, &RenderError{Cause: errors.New("boom")})
	if !ok {
		t.Fatal("expected resolution to be accepted")
	}
	if result.Content != nil || result.Message != "failed to render markdown" {
		t.Fatalf("unexpected error result %+v", result)
	}
}

func TestTrackerRender(t *testing.T) {
	tracker := NewTracker()
	result, ok := tracker.Render(context.Background(), NewRenderer(), "Hello")
	if !ok || result.Err != nil || result.Content == nil {
		t.Fatalf("unexpected result %+v %v", result, ok)
	}
	latest, ok := tracker.Latest()
	if !ok || latest.Token != result.Token {
		t.Fatalf("expected latest result to match, got %+v", latest)
	}
}
