package analysis

import (
	"sort"
)

// NGram is a move sequence that repeats within a session.
type NGram struct {
	N           int               `json:"n"`
	Sequence    []string          `json:"sequence"`
	Count       int               `json:"count"`
	Occurrences []NGramOccurrence `json:"occurrences,omitempty"`
}

// NGramOccurrence marks where an n-gram starts.
type NGramOccurrence struct {
	StartIndex int   `json:"start_index"`
	TsMs       int64 `json:"ts_ms"`
}

// NGramReport holds the most frequent n-grams, keyed by n.
type NGramReport struct {
	TopNGrams map[int][]NGram `json:"top_ngrams"`
}

const maxOccurrences = 10

// RollingHash is a Rabin-Karp hash over a fixed window of tokens.
type RollingHash struct {
	base   uint64
	hash   uint64
	pow    uint64 // base^(n-1) for removal
	window []uint16
	n      int
}

// NewRollingHash creates a rolling hash for window size n.
func NewRollingHash(n int) *RollingHash {
	rh := &RollingHash{
		base:   131,
		n:      n,
		window: make([]uint16, 0, n),
	}

	rh.pow = 1
	for i := 0; i < n-1; i++ {
		rh.pow *= rh.base
	}

	return rh
}

// Roll appends a token, dropping the oldest once the window is full.
func (rh *RollingHash) Roll(token uint16) {
	if len(rh.window) < rh.n {
		rh.window = append(rh.window, token)
		rh.hash = rh.hash*rh.base + uint64(token)
		return
	}

	old := rh.window[0]
	rh.hash = (rh.hash-uint64(old)*rh.pow)*rh.base + uint64(token)

	copy(rh.window, rh.window[1:])
	rh.window[rh.n-1] = token
}

// Hash returns the current hash value.
func (rh *RollingHash) Hash() uint64 {
	return rh.hash
}

// Window returns a copy of the current window.
func (rh *RollingHash) Window() []uint16 {
	result := make([]uint16, len(rh.window))
	copy(result, rh.window)
	return result
}

// Ready reports whether the window is full.
func (rh *RollingHash) Ready() bool {
	return len(rh.window) == rh.n
}

type ngramEntry struct {
	tokens      []uint16
	count       int
	occurrences []NGramOccurrence
}

// MineNGrams finds the topK most frequent repeated n-grams for each n in
// [minN, maxN]. notations and tsMs are parallel; tsMs may be nil.
func MineNGrams(notations []string, tsMs []int64, minN, maxN, topK int) *NGramReport {
	report := &NGramReport{
		TopNGrams: make(map[int][]NGram),
	}

	if minN < 1 || len(notations) < minN {
		return report
	}

	// Intern notations as small integer tokens.
	ids := make(map[string]uint16)
	names := []string{}
	tokens := make([]uint16, len(notations))
	for i, s := range notations {
		id, ok := ids[s]
		if !ok {
			id = uint16(len(names) + 1)
			ids[s] = id
			names = append(names, s)
		}
		tokens[i] = id
	}

	at := func(i int) int64 {
		if i < len(tsMs) {
			return tsMs[i]
		}
		return 0
	}

	for n := minN; n <= maxN && n <= len(tokens); n++ {
		ngrams := mineNGramsForN(tokens, names, at, n, topK)
		if len(ngrams) > 0 {
			report.TopNGrams[n] = ngrams
		}
	}

	return report
}

func mineNGramsForN(tokens []uint16, names []string, at func(int) int64, n, topK int) []NGram {
	// Hash buckets hold every distinct window that shares the hash.
	counts := make(map[uint64][]*ngramEntry)
	var order []*ngramEntry
	rh := NewRollingHash(n)

	for i, tok := range tokens {
		rh.Roll(tok)
		if !rh.Ready() {
			continue
		}

		start := i - n + 1
		occ := NGramOccurrence{StartIndex: start, TsMs: at(start)}
		window := rh.Window()

		var entry *ngramEntry
		for _, e := range counts[rh.Hash()] {
			if tokensEqual(e.tokens, window) {
				entry = e
				break
			}
		}

		if entry == nil {
			entry = &ngramEntry{tokens: window}
			counts[rh.Hash()] = append(counts[rh.Hash()], entry)
			order = append(order, entry)
		}
		entry.count++
		if len(entry.occurrences) < maxOccurrences {
			entry.occurrences = append(entry.occurrences, occ)
		}
	}

	// Only n-grams that appear more than once
	entries := make([]*ngramEntry, 0, len(order))
	for _, e := range order {
		if e.count >= 2 {
			entries = append(entries, e)
		}
	}

	// Stable so ties keep first-seen order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].count > entries[j].count
	})

	if len(entries) > topK {
		entries = entries[:topK]
	}

	result := make([]NGram, len(entries))
	for i, e := range entries {
		seq := make([]string, len(e.tokens))
		for j, tok := range e.tokens {
			seq[j] = names[tok-1]
		}
		result[i] = NGram{
			N:           n,
			Sequence:    seq,
			Count:       e.count,
			Occurrences: e.occurrences,
		}
	}

	return result
}

func tokensEqual(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
