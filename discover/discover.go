// Package discover implements the two key-discovery strategies over an
// injected list of chain transactions: self-announcement and
// envelope-embedded (spec §4.J).
package discover

import (
	"github.com/CorvidLabs/algochat-core/algoerr"
	"github.com/CorvidLabs/algochat-core/announce"
	"github.com/CorvidLabs/algochat-core/chain"
	"github.com/CorvidLabs/algochat-core/internal/xlog"
	"github.com/CorvidLabs/algochat-core/wire"
)

// Default search depths differ per strategy (spec §9 open question: the
// source carries two incompatible DEFAULT_SEARCH_DEPTH constants; both
// are kept here, one per path, rather than unified into one).
const (
	// DefaultAnnouncementSearchDepth bounds how many of a target's own
	// self-addressed transactions the announcement strategy considers.
	DefaultAnnouncementSearchDepth = 100
	// DefaultEnvelopeSearchDepth bounds how many of a target's sent
	// transactions carrying a Standard envelope header the
	// envelope-embedded strategy considers.
	DefaultEnvelopeSearchDepth = 200
)

// ScanOptions configures an optional diagnostic logger; discovery itself
// never needs it to function (spec §5: the core does no required I/O or
// logging).
type ScanOptions struct {
	Logger *xlog.Level // nil disables logging
}

func (o *ScanOptions) logf(format string, args ...any) {
	if o == nil || o.Logger == nil {
		return
	}
	xlog.Printf(*o.Logger, format, args...)
}

// FromAnnouncement scans txs for a self-addressed (sender == receiver ==
// target) key announcement, returning the first one found. ed25519Pub, if
// non-nil, enables signature verification per announce.Parse. maxDepth
// bounds how many of target's self-addressed transactions are considered;
// callers typically pass DefaultAnnouncementSearchDepth or a value loaded
// from config.Params.AnnouncementSearchDepth. Unparseable transactions are
// skipped, not fatal.
func FromAnnouncement(txs []chain.NoteTransaction, target chain.Address, ed25519Pub []byte, maxDepth int, opts *ScanOptions) (announce.DiscoveredKey, error) {
	depth := 0
	for _, tx := range txs {
		if depth >= maxDepth {
			break
		}
		if tx.Sender != target || tx.Receiver != target {
			continue
		}
		depth++
		dk, ok := announce.Parse(tx.Note, ed25519Pub)
		if !ok {
			opts.logf("discover: skipping unparseable self-announcement %s", tx.TxID)
			continue
		}
		return dk, nil
	}
	return announce.DiscoveredKey{}, algoerr.New(algoerr.KindPublicKeyNotFound, "no key announcement found for %s within %d transactions", target, depth).
		WithField("address", target).WithField("searchDepth", depth)
}

// FromEnvelopes scans txs sent by target for a v1 Standard envelope and
// returns the sender key asserted inside it. IsVerified is always false:
// an envelope-embedded key is asserted by its sender, never signed
// (spec §4.J, §9). maxDepth bounds how many of target's sent transactions
// whose note passes wire.IsChatMessage are considered; other sent
// transactions are skipped without counting. Callers typically pass
// DefaultEnvelopeSearchDepth or a value loaded from
// config.Params.EnvelopeSearchDepth.
func FromEnvelopes(txs []chain.NoteTransaction, target chain.Address, maxDepth int, opts *ScanOptions) (announce.DiscoveredKey, error) {
	depth := 0
	for _, tx := range txs {
		if depth >= maxDepth {
			break
		}
		if tx.Sender != target {
			continue
		}
		if !wire.IsChatMessage(tx.Note) {
			continue
		}
		depth++
		env, err := wire.DecodeStandard(tx.Note)
		if err != nil {
			opts.logf("discover: skipping unparseable envelope %s: %v", tx.TxID, err)
			continue
		}
		var pub [32]byte
		copy(pub[:], env.SenderPublicKey)
		return announce.DiscoveredKey{PublicKey: pub, IsVerified: false}, nil
	}
	return announce.DiscoveredKey{}, algoerr.New(algoerr.KindPublicKeyNotFound, "no envelope-embedded key found for %s within %d transactions", target, depth).
		WithField("address", target).WithField("searchDepth", depth)
}
