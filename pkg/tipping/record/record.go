// Package record builds and queries the global token co-occurrence record
// (spec.md §4.2): per-message deduplicated single and pair occurrence
// counts across an entire corpus, used by the anchor finder to compute
// token dependency ratios.
package record

import (
	"context"

	"github.com/shshemi/tipping/internal/concurrent"
	"github.com/shshemi/tipping/pkg/tipping/token"
	"github.com/shshemi/tipping/pkg/tipping/tokenizer"
)

// Filter decides, per token variant, whether a token participates in the
// co-occurrence record at all. It is the Go analogue of the Rust
// StaticFilter: SpecialWhite is always included, SpecialBlack/Symbolic/
// Whitespace are always excluded, and Alphabetic/Numeric/Impure are gated
// by the three flags.
type Filter struct {
	Alphabetic bool
	Numeric    bool
	Impure     bool
}

// Keep reports whether tok should be counted.
func (f Filter) Keep(tok token.Token) bool {
	switch tok.Type {
	case token.Alphabetic:
		return f.Alphabetic
	case token.Numeric:
		return f.Numeric
	case token.Impure:
		return f.Impure
	case token.SpecialWhite:
		return true
	default: // Symbolic, Whitespace, SpecialBlack
		return false
	}
}

// pairKey canonicalizes an unordered pair of token texts into one map key,
// independent of argument order.
func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "\x00" + b
}

// TokenRecord holds the corpus-wide single- and pair-occurrence counts.
// Once constructed it is immutable and safe to share read-only across any
// number of goroutines.
type TokenRecord struct {
	single map[string]int
	pair   map[string]int
}

// Build constructs a TokenRecord over the full corpus. For every message:
// tokenize, keep only tokens the filter accepts, deduplicate by text within
// that message, then increment single[t] once per distinct kept text and
// pair[(a,b)] once per unordered pair of distinct kept texts.
//
// The per-message partial counts are accumulated by workers independent
// local maps and merged pairwise, always absorbing the smaller map into the
// larger, per spec.md §5's "Parallel reduce" note.
func Build(ctx context.Context, messages []string, tz *tokenizer.Tokenizer, filter Filter, workers int) *TokenRecord {
	zero := func() *TokenRecord { return &TokenRecord{single: map[string]int{}, pair: map[string]int{}} }

	merged := concurrent.Fold(ctx, messages, workers, zero,
		func(acc *TokenRecord, msg string) *TokenRecord {
			texts := distinctKeptTexts(tz, filter, msg)
			for t := range texts {
				acc.single[t]++
			}
			for a := range texts {
				for b := range texts {
					if a < b {
						acc.pair[pairKey(a, b)]++
					}
				}
			}
			return acc
		},
		mergeRecords,
	)
	return merged
}

func distinctKeptTexts(tz *tokenizer.Tokenizer, filter Filter, msg string) map[string]struct{} {
	toks := tz.Tokenize(msg)
	texts := make(map[string]struct{}, len(toks))
	for _, tok := range toks {
		if filter.Keep(tok) {
			texts[tok.Text] = struct{}{}
		}
	}
	return texts
}

func mergeRecords(a, b *TokenRecord) *TokenRecord {
	if len(a.single)+len(a.pair) < len(b.single)+len(b.pair) {
		a, b = b, a
	}
	for k, v := range b.single {
		a.single[k] += v
	}
	for k, v := range b.pair {
		a.pair[k] += v
	}
	return a
}

// Occurrence returns the number of messages in which t appears (after
// per-message deduplication and filtering), or false if t never appeared.
func (r *TokenRecord) Occurrence(t string) (int, bool) {
	v, ok := r.single[t]
	return v, ok
}

// Coccurrence returns the number of messages in which both a and b appear,
// or false if the pair was never observed.
func (r *TokenRecord) Coccurrence(a, b string) (int, bool) {
	v, ok := r.pair[pairKey(a, b)]
	return v, ok
}

// Dependency returns pair(a,b) / single(a), the fraction of messages
// containing a that also contain b, or false if either lookup fails. Note
// the asymmetry: Dependency(a,b) != Dependency(b,a) in general, because the
// denominator changes.
func (r *TokenRecord) Dependency(a, b string) (float64, bool) {
	single, ok := r.single[a]
	if !ok || single == 0 {
		return 0, false
	}
	pair, ok := r.pair[pairKey(a, b)]
	if !ok {
		return 0, false
	}
	return float64(pair) / float64(single), true
}
