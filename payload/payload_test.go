package payload

import (
	"strings"
	"testing"
)

func TestClassifyPlainText(t *testing.T) {
	msg, ok := Classify([]byte("just a message"))
	if !ok {
		t.Fatalf("plain text should always classify as a message")
	}
	if msg.Text != "just a message" {
		t.Fatalf("unexpected text: %q", msg.Text)
	}
}

func TestClassifyKeyPublishSentinel(t *testing.T) {
	_, ok := Classify(BuildKeyPublish())
	if ok {
		t.Fatalf("key-publish payload must classify as no-message")
	}
}

func TestClassifyTextWithoutReplyContextIsPlain(t *testing.T) {
	data := BuildText("hello there", "", "")
	msg, ok := Classify(data)
	if !ok {
		t.Fatalf("expected a message")
	}
	if msg.Text != "hello there" {
		t.Fatalf("plain text with no reply context should bypass JSON: got %q", msg.Text)
	}
}

func TestClassifyJSONWithReplyContext(t *testing.T) {
	data := BuildText("reply text", "TXID123", "original message preview")
	msg, ok := Classify(data)
	if !ok {
		t.Fatalf("expected a message")
	}
	if msg.Text != "reply text" {
		t.Fatalf("unexpected text: %q", msg.Text)
	}
	if msg.ReplyToID != "TXID123" {
		t.Fatalf("unexpected replyToId: %q", msg.ReplyToID)
	}
	if msg.ReplyToPreview != "original message preview" {
		t.Fatalf("unexpected replyToPreview: %q", msg.ReplyToPreview)
	}
}

func TestClassifyJSONWithoutTextFallsBackToRaw(t *testing.T) {
	raw := []byte(`{"foo":"bar"}`)
	msg, ok := Classify(raw)
	if !ok {
		t.Fatalf("expected a message")
	}
	if msg.Text != string(raw) {
		t.Fatalf("json object without text should fall back to the raw decoding")
	}
}

func TestClassifyMalformedJSONFallsBackToRaw(t *testing.T) {
	raw := []byte(`{not valid json`)
	msg, ok := Classify(raw)
	if !ok {
		t.Fatalf("expected a message")
	}
	if msg.Text != string(raw) {
		t.Fatalf("malformed json should fall back to the raw decoding")
	}
}

func TestTruncatePreviewShortUnchanged(t *testing.T) {
	s := "short preview"
	if got := TruncatePreview(s); got != s {
		t.Fatalf("short string should be unchanged, got %q", got)
	}
}

func TestTruncatePreviewLongIsTruncated(t *testing.T) {
	long := strings.Repeat("a", 200)
	got := TruncatePreview(long)
	if len(got) > 80 {
		t.Fatalf("truncated preview must be at most 80 bytes, got %d", len(got))
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("truncated preview must end with the ellipsis, got %q", got)
	}
}

func TestTruncatePreviewCutsOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", 100) // each "é" is 2 UTF-8 bytes
	got := TruncatePreview(long)
	if !utf8ValidSuffix(got) {
		t.Fatalf("truncated preview is not valid utf-8: %q", got)
	}
}

func utf8ValidSuffix(s string) bool {
	for _, r := range s {
		if r == '�' {
			return false
		}
	}
	return true
}
