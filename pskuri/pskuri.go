// Package pskuri encodes and parses the PSK exchange URI, the only
// textual external format besides JSON payload variants (spec §4.K, §6).
package pskuri

import (
	"encoding/base64"
	"net/url"
	"strings"

	"github.com/CorvidLabs/algochat-core/algoerr"
)

// Scheme is the URI scheme prefix this codec recognizes.
const Scheme = "algochat-psk://v1?"

// Exchange is a decoded PSK exchange: a ledger address, a 32-byte
// pre-shared key, and an optional human-readable label.
type Exchange struct {
	Addr  string
	PSK   [32]byte
	Label string
}

// Encode renders an Exchange as a PSK exchange URI.
func Encode(e Exchange) string {
	q := url.Values{}
	q.Set("addr", e.Addr)
	q.Set("psk", base64.RawURLEncoding.EncodeToString(e.PSK[:]))
	if e.Label != "" {
		q.Set("label", e.Label)
	}
	return Scheme + q.Encode()
}

// Parse decodes a PSK exchange URI. It rejects anything without the
// scheme prefix, requires both addr and psk, and requires psk to decode
// to exactly 32 bytes. Unknown query parameters are ignored.
func Parse(uri string) (Exchange, error) {
	if !strings.HasPrefix(uri, Scheme) {
		return Exchange{}, algoerr.New(algoerr.KindPSKExchangeURIInvalid, "missing %q scheme prefix", Scheme)
	}
	query := strings.TrimPrefix(uri, Scheme)
	values, err := url.ParseQuery(query)
	if err != nil {
		return Exchange{}, algoerr.Wrap(algoerr.KindPSKExchangeURIInvalid, err, "malformed query string")
	}

	addr := values.Get("addr")
	if addr == "" {
		return Exchange{}, algoerr.New(algoerr.KindPSKExchangeURIInvalid, "missing addr parameter")
	}
	pskStr := values.Get("psk")
	if pskStr == "" {
		return Exchange{}, algoerr.New(algoerr.KindPSKExchangeURIInvalid, "missing psk parameter")
	}

	pskBytes, err := decodeBase64URL(pskStr)
	if err != nil {
		return Exchange{}, algoerr.Wrap(algoerr.KindPSKExchangeURIInvalid, err, "invalid base64url psk")
	}
	if len(pskBytes) != 32 {
		return Exchange{}, algoerr.New(algoerr.KindPSKInvalidLength, "psk must decode to 32 bytes, got %d", len(pskBytes)).
			WithField("decodedLength", len(pskBytes))
	}

	var e Exchange
	e.Addr = addr
	copy(e.PSK[:], pskBytes)
	e.Label = values.Get("label")
	return e, nil
}

// decodeBase64URL accepts both padded and unpadded base64url input, since
// callers producing QR-code-friendly URIs commonly omit padding.
func decodeBase64URL(s string) ([]byte, error) {
	if b, err := base64.RawURLEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.URLEncoding.DecodeString(s)
}
