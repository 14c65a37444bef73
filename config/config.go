// Package config holds the small set of tunable protocol constants
// (replay window size, search depths) and loads them from YAML,
// matching the ambient configuration layer a complete implementation of
// this system would carry even though the core's own crypto is fixed by
// the protocol (spec §4.G, §4.H, §4.J).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Params are the tunable knobs of the ambient layers around the core
// protocol: the replay window size and the two key-discovery search
// depths. The wire protocol itself (envelope shapes, AEAD construction,
// ratchet derivation, payload caps) is fixed by spec and is deliberately
// not represented here — there is nothing for a caller to tune about it.
// The zero value is not valid; use Default() or Load().
type Params struct {
	ReplayWindow            uint32 `yaml:"replayWindow"`
	AnnouncementSearchDepth int    `yaml:"announcementSearchDepth"`
	EnvelopeSearchDepth     int    `yaml:"envelopeSearchDepth"`
}

// Default returns the protocol's default tunables (spec §4.H, §4.J):
// replay.Window and discover's two DefaultXSearchDepth constants.
// Callers who are happy with those defaults never need to touch config
// at all; this exists for callers who want to override one, e.g. via
// replay.NewStateWithWindow(cfg.ReplayWindow) or
// discover.FromAnnouncement(..., cfg.AnnouncementSearchDepth, ...).
func Default() Params {
	return Params{
		ReplayWindow:            200,
		AnnouncementSearchDepth: 100,
		EnvelopeSearchDepth:     200,
	}
}

// Load reads Params from a YAML file, falling back to Default() for any
// field the file does not set. A field set explicitly in the file (even to
// zero) takes the file's value.
func Load(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	p := Default()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Params{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return p, nil
}
