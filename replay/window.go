// Package replay implements the PSK sliding-window replay-protection
// counter state (spec §4.H, §5). The zero-value-free constructors return
// value types so callers can adopt an immutable, copy-on-write discipline
// (§5) or wrap State in SafeWindow for built-in per-peer locking.
package replay

import "github.com/CorvidLabs/algochat-core/algoerr"

// Window is the default replay-protection counter limit: a counter more
// than Window below the highest counter seen from a peer can never
// validate again. Callers who want a non-default size (e.g. loaded from
// config.Params.ReplayWindow) use NewStateWithWindow/NewSafeWindowWithWindow.
const Window = 200

// State is a per-peer replay window. The zero value is a fresh
// (never-received-from) peer state using the default Window.
type State struct {
	SendCounter     uint32
	PeerLastCounter uint32
	peerHasSeenAny  bool
	SeenCounters    map[uint32]struct{}
	window          uint32
}

// NewState returns a fresh per-peer state using the default Window.
func NewState() State {
	return NewStateWithWindow(Window)
}

// NewStateWithWindow returns a fresh per-peer state using a caller-chosen
// window size instead of the default.
func NewStateWithWindow(window uint32) State {
	return State{SeenCounters: make(map[uint32]struct{}), window: window}
}

// effectiveWindow returns the configured window, falling back to the
// default for a zero-value State that was never built via a constructor.
func (s State) effectiveWindow() int64 {
	if s.window == 0 {
		return Window
	}
	return int64(s.window)
}

// Snapshot returns an independent deep copy of the state, suitable for
// the copy-on-write discipline described in spec §5: callers validate and
// record against a snapshot, then atomically install it as the new
// current state for that peer.
func (s State) Snapshot() State {
	cp := s
	cp.SeenCounters = make(map[uint32]struct{}, len(s.SeenCounters))
	for c := range s.SeenCounters {
		cp.SeenCounters[c] = struct{}{}
	}
	return cp
}

// Validate reports whether counter c would be accepted from this peer:
// it must not already be in SeenCounters, and must fall within
// [PeerLastCounter-Window, PeerLastCounter+Window]. Validate does not
// mutate state; see Record.
func (s State) Validate(c uint32) bool {
	if _, seen := s.SeenCounters[c]; seen {
		return false
	}
	if !s.peerHasSeenAny {
		return true
	}
	w := s.effectiveWindow()
	lo := int64(s.PeerLastCounter) - w
	hi := int64(s.PeerLastCounter) + w
	cc := int64(c)
	return cc >= lo && cc <= hi
}

// Record inserts c into SeenCounters, advances PeerLastCounter if c is
// the new high-water mark, and prunes entries that have fallen out of the
// window. Record does not itself call Validate; callers must validate
// before recording to reject replays.
func (s *State) Record(c uint32) {
	if s.SeenCounters == nil {
		s.SeenCounters = make(map[uint32]struct{})
	}
	s.SeenCounters[c] = struct{}{}
	if !s.peerHasSeenAny || c > s.PeerLastCounter {
		s.PeerLastCounter = c
		s.peerHasSeenAny = true
	}
	floor := int64(s.PeerLastCounter) - s.effectiveWindow()
	for seen := range s.SeenCounters {
		if int64(seen) < floor {
			delete(s.SeenCounters, seen)
		}
	}
}

// CheckAndRecord validates c for this peer and, on success, records it.
// Unlike Validate/Record, it reports rejection as a typed
// algoerr.KindPSKInvalidCounter error so callers can branch on cause
// (spec §4.H, §4.L) instead of a bare bool.
func (s *State) CheckAndRecord(c uint32) error {
	if !s.Validate(c) {
		return algoerr.New(algoerr.KindPSKInvalidCounter, "ratchet counter %d rejected: already seen or outside the replay window", c).
			WithField("counter", c).WithField("peerLastCounter", s.PeerLastCounter)
	}
	s.Record(c)
	return nil
}

// AdvanceSend returns the current send counter and leaves the receiver
// with SendCounter incremented. Send counters are independent of receive
// state (spec §4.H).
func (s *State) AdvanceSend() uint32 {
	c := s.SendCounter
	s.SendCounter++
	return c
}
