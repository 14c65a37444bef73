// Package payload classifies decrypted plaintext into the user-facing
// message shapes: plain text, text with reply context, or the
// "key-publish" sentinel that carries no user-visible message
// (spec §3 DecryptedPayload, §4.M).
package payload

import (
	"encoding/json"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Message is a decrypted, classified payload ready for display.
type Message struct {
	Text           string
	ReplyToID      string
	ReplyToPreview string
}

type keyPublishPayload struct {
	Type string `json:"type"`
}

type replyTo struct {
	TxID    string `json:"txid,omitempty"`
	Preview string `json:"preview,omitempty"`
}

type textPayload struct {
	Text    string   `json:"text"`
	ReplyTo *replyTo `json:"replyTo,omitempty"`
}

// Classify interprets decrypted plaintext. It reports ok=false exactly
// when the payload is the `{"type":"key-publish"}` sentinel — that case
// carries no user-visible message (the "no message" sentinel of §3).
func Classify(plaintext []byte) (Message, bool) {
	if len(plaintext) == 0 || plaintext[0] != '{' {
		return Message{Text: string(plaintext)}, true
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(plaintext, &raw); err != nil {
		return Message{Text: string(plaintext)}, true
	}

	if t, ok := decodeString(raw["type"]); ok && t == "key-publish" {
		return Message{}, false
	}

	text, hasText := decodeString(raw["text"])
	if !hasText {
		return Message{Text: string(plaintext)}, true
	}

	msg := Message{Text: text}
	if rt, ok := raw["replyTo"]; ok {
		var r replyTo
		if json.Unmarshal(rt, &r) == nil {
			msg.ReplyToID = r.TxID
			msg.ReplyToPreview = r.Preview
		}
	}
	return msg, true
}

func decodeString(raw json.RawMessage) (string, bool) {
	if raw == nil {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// BuildKeyPublish returns the canonical key-publish sentinel payload, sent
// self-addressed with a zero-amount payment to announce a sender key.
func BuildKeyPublish() []byte {
	b, _ := json.Marshal(keyPublishPayload{Type: "key-publish"})
	return b
}

// BuildText returns the wire plaintext for a message. With no reply
// context it returns the raw text bytes; with reply context it wraps the
// text in the JSON shape §4.M's classifier expects, truncating the
// preview first.
func BuildText(text, replyToID, replyToPreview string) []byte {
	if replyToID == "" && replyToPreview == "" {
		return []byte(text)
	}
	p := textPayload{Text: text, ReplyTo: &replyTo{TxID: replyToID, Preview: TruncatePreview(replyToPreview)}}
	b, _ := json.Marshal(p)
	return b
}

const (
	previewMaxBytes       = 80
	previewTruncatedBytes = 77
	ellipsis              = "…"
)

// TruncatePreview truncates a reply preview to 80 UTF-8 bytes (77 bytes
// of content plus the 3-byte "…" ellipsis), cutting only on rune
// boundaries so the result is always valid UTF-8 (spec §4.M, §9). The
// preview is normalized to NFC first so a combining mark never lands
// right on the cut point and detaches from its base rune.
func TruncatePreview(s string) string {
	s = norm.NFC.String(s)
	if len(s) <= previewMaxBytes {
		return s
	}
	cut := previewTruncatedBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + ellipsis
}
