package badge

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
)

func TestContentRoundTrip(t *testing.T) {
	id := uuid.New()

	got, err := ParseContent(Content(id))
	if err != nil || got != id {
		t.Errorf("Expected %s, got %s (%v)", id, got, err)
	}

	for _, bad := range []string{"", "timeclock:worker:", "other:" + id.String(), "timeclock:worker:nope"} {
		if _, err := ParseContent(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}

func TestPNG(t *testing.T) {
	png, err := PNG(uuid.New())
	if err != nil {
		t.Fatalf("PNG failed: %v", err)
	}

	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("Expected PNG signature")
	}
}
