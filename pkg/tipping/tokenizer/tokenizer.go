// Package tokenizer splits a log message into the typed token sequence
// TIPPING's downstream components consume, applying caller-configured
// "special-white" (never parameterized) and "special-black" (always
// parameterized) regex extractors before falling back to whitespace/symbol
// based refinement of whatever text those regexes left untouched.
package tokenizer

import (
	"regexp"
	"unicode"

	"github.com/shshemi/tipping/pkg/tipping/token"
)

// Tokenizer holds the compiled configuration for one tokenization pass:
// ordered white and black patterns, plus the symbol set used to decide
// Symbolic vs. Impure for single-rune refined tokens.
//
// A Tokenizer is immutable and safe for concurrent use by any number of
// goroutines once constructed — every per-message pass in the orchestrator
// shares a single instance read-only.
type Tokenizer struct {
	whites  []*regexp.Regexp
	blacks  []*regexp.Regexp
	symbols map[rune]struct{}
}

// New builds a Tokenizer from already-compiled white and black patterns, in
// the order they should be applied, and a symbol set used for Symbolic
// classification. White patterns are always applied before black patterns,
// so a span matched by a white pattern can never be reclaimed by a black
// one (spec.md §4.1: "white patterns dominate black patterns").
func New(whites, blacks []*regexp.Regexp, symbols string) *Tokenizer {
	return &Tokenizer{
		whites:  whites,
		blacks:  blacks,
		symbols: token.SymbolSet(symbols),
	}
}

// WithSymbols returns a new Tokenizer sharing this one's compiled white and
// black patterns but using a different symbol set — used by the
// TemplateBuilder (§4.5) to reuse the same special patterns with the
// broader ASCII-punctuation symbol set.
func (tz *Tokenizer) WithSymbols(symbols string) *Tokenizer {
	return &Tokenizer{
		whites:  tz.whites,
		blacks:  tz.blacks,
		symbols: token.SymbolSet(symbols),
	}
}

// spanKind tags a preToken (an offset pair into the original message) with
// the kind of pre-token it represents before refinement.
type spanKind int

const (
	kindUnrefined spanKind = iota
	kindSpecialWhite
	kindSpecialBlack
)

type preToken struct {
	kind       spanKind
	start, end int
}

// Tokenize splits msg into a token sequence covering every byte exactly
// once, in input order. See spec.md §4.1 for the two-phase algorithm:
// pre-tokenize against the white then black pattern lists, then refine
// whatever spans remain unrefined against whitespace/symbol boundaries.
func (tz *Tokenizer) Tokenize(msg string) []token.Token {
	if msg == "" {
		return nil
	}
	pre := []preToken{{kind: kindUnrefined, start: 0, end: len(msg)}}
	pre = splitSpecial(msg, pre, tz.whites, kindSpecialWhite)
	pre = splitSpecial(msg, pre, tz.blacks, kindSpecialBlack)

	tokens := make([]token.Token, 0, len(pre))
	for _, p := range pre {
		switch p.kind {
		case kindSpecialWhite:
			tokens = append(tokens, token.Token{Type: token.SpecialWhite, Text: msg[p.start:p.end]})
		case kindSpecialBlack:
			tokens = append(tokens, token.Token{Type: token.SpecialBlack, Text: msg[p.start:p.end]})
		default:
			tokens = append(tokens, refine(msg[p.start:p.end], tz.symbols)...)
		}
	}
	return tokens
}

// splitSpecial scans every still-unrefined span in pre with each pattern in
// patterns, in order, splitting out non-empty matches as the given kind.
// Later patterns only ever see the Unrefined leftovers of earlier ones —
// already-special spans pass through untouched.
func splitSpecial(msg string, pre []preToken, patterns []*regexp.Regexp, kind spanKind) []preToken {
	for _, re := range patterns {
		next := make([]preToken, 0, len(pre))
		for _, p := range pre {
			if p.kind != kindUnrefined {
				next = append(next, p)
				continue
			}
			next = append(next, splitOne(msg, p, re, kind)...)
		}
		pre = next
	}
	return pre
}

// splitOne applies one regex to one unrefined span, emitting alternating
// Unrefined/kind spans. Zero-width matches are skipped so tokenization
// always makes forward progress.
func splitOne(msg string, span preToken, re *regexp.Regexp, kind spanKind) []preToken {
	sub := msg[span.start:span.end]
	locs := re.FindAllStringIndex(sub, -1)
	if locs == nil {
		return []preToken{span}
	}
	out := make([]preToken, 0, len(locs)*2+1)
	last := 0
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		if end == start {
			continue // zero-width match: skip to guarantee progress
		}
		if start > last {
			out = append(out, preToken{kind: kindUnrefined, start: span.start + last, end: span.start + start})
		}
		out = append(out, preToken{kind: kind, start: span.start + start, end: span.start + end})
		last = end
	}
	if last < len(sub) {
		out = append(out, preToken{kind: kindUnrefined, start: span.start + last, end: span.end})
	}
	if len(out) == 0 {
		return []preToken{span}
	}
	return out
}

// refine scans one Unrefined span left-to-right, splitting it on the next
// whitespace-or-symbol rune: the run before that rune becomes one token,
// the rune itself becomes a single-rune token, and scanning resumes after
// it. Each emitted slice is classified per spec.md §3's variant rules.
func refine(span string, symbols map[rune]struct{}) []token.Token {
	if span == "" {
		return nil
	}
	var out []token.Token
	runs := []rune(span)
	start := 0
	for i, r := range runs {
		if isBoundary(r, symbols) {
			if i > start {
				out = append(out, token.New(string(runs[start:i]), symbols))
			}
			out = append(out, token.New(string(runs[i]), symbols))
			start = i + 1
		}
	}
	if start < len(runs) {
		out = append(out, token.New(string(runs[start:]), symbols))
	}
	return out
}

func isBoundary(r rune, symbols map[rune]struct{}) bool {
	if _, ok := symbols[r]; ok {
		return true
	}
	return unicode.IsSpace(r)
}
