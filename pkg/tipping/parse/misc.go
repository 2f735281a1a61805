package parse

import (
	"regexp"
	"strings"
)

// CompileAlternation joins patterns into one "(?:a)|(?:b)|..." regex and
// compiles it, the Go analogue of core/src/misc.rs::compile_into_regex.
// Not used by Parse's two-list (white/black) design, but kept as a helper
// for callers who'd rather precompile many small patterns into one
// alternation than pass a long SpecialWhites/SpecialBlacks slice, mirroring
// the compile-many-patterns-once shape
// fiddeb-otlp_cardinality_checker/internal/patterns.go's YAML-driven
// CompiledPattern list relies on.
func CompileAlternation(patterns []string) (*regexp.Regexp, error) {
	grouped := make([]string, len(patterns))
	for i, p := range patterns {
		grouped[i] = "(?:" + p + ")"
	}
	return regexp.Compile(strings.Join(grouped, "|"))
}
