package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sort"
)

const (
	ScoreMin        = 100
	ScoreSpan       = 900 // scores fall in [ScoreMin, ScoreMin+ScoreSpan)
	HouseBonus      = 120
	LeaderboardSize = 5
)

// RandSource is the injectable randomness used for scores and scenario picks.
// *rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}

// NewSeed returns a high-entropy seed for NewRand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewRand returns a seeded source. A zero seed draws one from crypto/rand.
func NewRand(seed int64) (*rand.Rand, error) {
	if seed == 0 {
		s, err := NewSeed()
		if err != nil {
			return nil, err
		}
		seed = s
	}
	return rand.New(rand.NewSource(seed)), nil
}

type LeaderboardEntry struct {
	Rank     int // 1-based
	House    House
	Points   int
	Selected bool
}

// LeaderboardRanker scores the roster on every call.
type LeaderboardRanker struct {
	src    RandSource
	roster []House
}

func NewLeaderboardRanker(src RandSource) *LeaderboardRanker {
	return &LeaderboardRanker{src: src, roster: Houses}
}

// Rank draws a score per house in roster order, adds HouseBonus to the
// selected house, and returns the top LeaderboardSize entries. Equal scores
// keep roster order. An unknown selected house is treated as none.
func (r *LeaderboardRanker) Rank(selected House) []LeaderboardEntry {
	type scored struct {
		entry LeaderboardEntry
		order int
	}
	all := make([]scored, 0, len(r.roster))
	for i, h := range r.roster {
		pts := ScoreMin + r.src.Intn(ScoreSpan)
		sel := selected != "" && h == selected
		if sel {
			pts += HouseBonus
		}
		all = append(all, scored{entry: LeaderboardEntry{House: h, Points: pts, Selected: sel}, order: i})
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].entry.Points != all[j].entry.Points {
			return all[i].entry.Points > all[j].entry.Points
		}
		return all[i].order < all[j].order
	})

	n := LeaderboardSize
	if len(all) < n {
		n = len(all)
	}
	out := make([]LeaderboardEntry, 0, n)
	for i := 0; i < n; i++ {
		e := all[i].entry
		e.Rank = i + 1
		out = append(out, e)
	}
	return out
}
