// Package template computes the per-cluster shared-slice set, template
// renderings, and per-message parameter masks (spec.md §4.5). It runs once
// per non-empty cluster, against a tokenizer configured with the broader
// ASCII-punctuation symbol set (tokenizer.WithSymbols), independent of
// whatever symbol set the corpus-wide tokenizer used.
package template

import (
	"strings"

	"github.com/shshemi/tipping/pkg/tipping/token"
	"github.com/shshemi/tipping/pkg/tipping/tokenizer"
)

// Placeholder replaces a non-shared token's text in a rendered template.
const Placeholder = "<*>"

// Filter decides which variant-gated token types participate in the
// shared-slice intersection. SpecialWhite, Whitespace, and Symbolic are
// always included; SpecialBlack is always excluded.
type Filter struct {
	Alphabetic bool
	Numeric    bool
	Impure     bool
}

func (f Filter) keep(tok token.Token) bool {
	switch tok.Type {
	case token.SpecialWhite, token.Whitespace, token.Symbolic:
		return true
	case token.Alphabetic:
		return f.Alphabetic
	case token.Numeric:
		return f.Numeric
	case token.Impure:
		return f.Impure
	default: // SpecialBlack
		return false
	}
}

// SharedSlices computes the intersection, across every message in
// messages, of the set of token texts that pass filter. An empty messages
// slice yields an empty set.
func SharedSlices(messages []string, tz *tokenizer.Tokenizer, filter Filter) map[string]struct{} {
	var shared map[string]struct{}
	for _, msg := range messages {
		set := make(map[string]struct{})
		for _, tok := range tz.Tokenize(msg) {
			if filter.keep(tok) {
				set[tok.Text] = struct{}{}
			}
		}
		if shared == nil {
			shared = set
			continue
		}
		for text := range shared {
			if _, ok := set[text]; !ok {
				delete(shared, text)
			}
		}
	}
	if shared == nil {
		shared = map[string]struct{}{}
	}
	return shared
}

// Render produces the template string for msg: every token whose text is
// in shared is kept verbatim; every other token is replaced by Placeholder,
// with consecutive replaced tokens collapsed into a single Placeholder.
func Render(msg string, tz *tokenizer.Tokenizer, shared map[string]struct{}) string {
	var b strings.Builder
	lastWasPlaceholder := false
	for _, tok := range tz.Tokenize(msg) {
		if _, ok := shared[tok.Text]; ok {
			b.WriteString(tok.Text)
			lastWasPlaceholder = false
			continue
		}
		if !lastWasPlaceholder {
			b.WriteString(Placeholder)
		}
		lastWasPlaceholder = true
	}
	return b.String()
}

// Templates renders every message in messages and returns the set of
// distinct renderings.
func Templates(messages []string, tz *tokenizer.Tokenizer, shared map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(messages))
	for _, msg := range messages {
		out[Render(msg, tz, shared)] = struct{}{}
	}
	return out
}

// Mask computes the parameter mask for msg: a string of the same byte
// length as msg, '0' marking a literal byte and '1' marking a parameter
// byte. The "sticky latch" (stickyParam) models a parameter region
// extending through joining symbols until the next whitespace token, so
// e.g. "x1.x2" masks as one parameter span rather than three.
func Mask(msg string, tz *tokenizer.Tokenizer, shared map[string]struct{}) string {
	toks := tz.Tokenize(msg)
	var b strings.Builder
	b.Grow(len(msg))
	stickyParam := false

	for idx, tok := range toks {
		switch tok.Type {
		case token.SpecialWhite:
			writeRepeated(&b, '0', len(tok.Text))
		case token.SpecialBlack:
			writeRepeated(&b, '1', len(tok.Text))
		case token.Whitespace:
			b.WriteByte('0')
			stickyParam = false
		case token.Symbolic:
			switch {
			case !isShared(shared, tok.Text):
				b.WriteByte('1')
			case endsParameterRun(toks, idx):
				b.WriteByte('0')
			case stickyParam:
				b.WriteByte('1')
			default:
				b.WriteByte('0')
			}
		default: // Alphabetic, Numeric, Impure
			if !isShared(shared, tok.Text) || stickyParam {
				writeRepeated(&b, '1', len(tok.Text))
				stickyParam = true
			} else {
				writeRepeated(&b, '0', len(tok.Text))
			}
		}
	}
	return b.String()
}

// endsParameterRun reports whether the token following toks[idx] is
// whitespace, symbolic, or absent — the condition under which a shared
// symbol at idx never extends a parameter run.
func endsParameterRun(toks []token.Token, idx int) bool {
	if idx+1 >= len(toks) {
		return true
	}
	next := toks[idx+1]
	return next.Type == token.Whitespace || next.Type == token.Symbolic
}

func isShared(shared map[string]struct{}, text string) bool {
	_, ok := shared[text]
	return ok
}

func writeRepeated(b *strings.Builder, c byte, n int) {
	for i := 0; i < n; i++ {
		b.WriteByte(c)
	}
}
