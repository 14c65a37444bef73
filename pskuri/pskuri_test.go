package pskuri

import (
	"testing"

	"github.com/CorvidLabs/algochat-core/algoerr"
)

func samplePSK(b byte) [32]byte {
	var out [32]byte
	for i := range out {
		out[i] = b
	}
	return out
}

func TestRoundTripWithLabel(t *testing.T) {
	want := Exchange{Addr: "ALGOADDRESSXYZ", PSK: samplePSK(0x42), Label: "work chat"}
	uri := Encode(want)
	got, err := Parse(uri)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestRoundTripWithoutLabel(t *testing.T) {
	want := Exchange{Addr: "ALGOADDRESSXYZ", PSK: samplePSK(0x07)}
	uri := Encode(want)
	got, err := Parse(uri)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestParseRejectsMissingScheme(t *testing.T) {
	if _, err := Parse("https://example.com?addr=x&psk=y"); err == nil {
		t.Fatalf("expected error for missing scheme")
	}
}

func TestParseRejectsMissingAddr(t *testing.T) {
	uri := Scheme + "psk=" + "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	if _, err := Parse(uri); err == nil {
		t.Fatalf("expected error for missing addr")
	}
}

func TestParseRejectsMissingPSK(t *testing.T) {
	uri := Scheme + "addr=SOMEADDR"
	if _, err := Parse(uri); err == nil {
		t.Fatalf("expected error for missing psk")
	}
}

func TestParseRejectsWrongLengthPSK(t *testing.T) {
	uri := Scheme + "addr=SOMEADDR&psk=QUJD" // "ABC", 3 bytes
	_, err := Parse(uri)
	if err == nil {
		t.Fatalf("expected error for wrong-length psk")
	}
	aerr, ok := err.(*algoerr.Error)
	if !ok || aerr.Kind != algoerr.KindPSKInvalidLength {
		t.Fatalf("expected KindPSKInvalidLength, got %v", err)
	}
}

func TestParseIgnoresUnknownParameters(t *testing.T) {
	want := Exchange{Addr: "ADDR", PSK: samplePSK(0x09)}
	uri := Encode(want) + "&extra=ignored"
	got, err := Parse(uri)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != want {
		t.Fatalf("unknown params should be ignored, got %+v", got)
	}
}
