package parse

import (
	"regexp"
	"runtime"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/shshemi/tipping/internal/logging"
)

// Options configures one Parse call. Construct one with DefaultOptions and
// layer Option functions on top, mirroring the fluent
// Parser::new().with_threshold(...).with_special_whites(...) builder the
// reference implementation exposes.
type Options struct {
	Threshold        float64
	SpecialWhites    []string
	SpecialBlacks    []string
	Symbols          string
	FilterAlphabetic bool
	FilterNumeric    bool
	FilterImpure     bool
	WantTemplates    bool
	WantMasks        bool
	Workers          int
	Logger           logging.Logger

	compiledWhites []*regexp.Regexp
	compiledBlacks []*regexp.Regexp
}

// DefaultOptions returns the same defaults as the reference implementation:
// threshold 0.5, alphabetic filtering on, numeric/impure filtering off, no
// special patterns or extra symbols, neither templates nor masks
// requested.
func DefaultOptions() Options {
	return Options{
		Threshold:        0.5,
		FilterAlphabetic: true,
	}
}

// Option mutates an Options value during construction.
type Option func(*Options)

// WithThreshold sets the interdependency threshold. Must be in [0, 1];
// Validate rejects anything outside that range.
func WithThreshold(v float64) Option {
	return func(o *Options) { o.Threshold = v }
}

// WithSpecialWhites sets the regex sources matched spans of which are
// always kept as anchors and never parameterized.
func WithSpecialWhites(patterns ...string) Option {
	return func(o *Options) { o.SpecialWhites = patterns }
}

// WithSpecialBlacks sets the regex sources matched spans of which are
// never anchors and always parameterized.
func WithSpecialBlacks(patterns ...string) Option {
	return func(o *Options) { o.SpecialBlacks = patterns }
}

// WithSymbols sets the extra symbol runes usable as Symbolic tokens
// alongside whitespace during tokenization.
func WithSymbols(symbols string) Option {
	return func(o *Options) { o.Symbols = symbols }
}

// WithFilterAlphabetic toggles whether Alphabetic tokens participate in
// the co-occurrence record and shared-slice computation.
func WithFilterAlphabetic(v bool) Option {
	return func(o *Options) { o.FilterAlphabetic = v }
}

// WithFilterNumeric toggles whether Numeric tokens participate in the
// co-occurrence record and shared-slice computation.
func WithFilterNumeric(v bool) Option {
	return func(o *Options) { o.FilterNumeric = v }
}

// WithFilterImpure toggles whether Impure tokens participate in the
// co-occurrence record and shared-slice computation.
func WithFilterImpure(v bool) Option {
	return func(o *Options) { o.FilterImpure = v }
}

// WithTemplates requests template computation in the Result.
func WithTemplates() Option {
	return func(o *Options) { o.WantTemplates = true }
}

// WithMasks requests parameter-mask computation in the Result.
func WithMasks() Option {
	return func(o *Options) { o.WantMasks = true }
}

// WithWorkers sets the worker pool size for the three parallel passes.
// Non-positive values fall back to runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithLogger injects a Logger for progress/timing messages. A nil Logger
// is replaced by logging.NewNopLogger() during Validate.
func WithLogger(l logging.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// NewOptions builds an Options from DefaultOptions with opts applied in
// order.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Validate checks every configuration-class precondition before Parse does
// any work, collecting every violation (out-of-range threshold, each
// unparseable regex) into a single error via go-multierror instead of
// failing fast on the first problem. On success it also compiles
// SpecialWhites/SpecialBlacks and fills in Workers/Logger defaults.
func (o *Options) Validate() error {
	var errs *multierror.Error

	if o.Threshold < 0 || o.Threshold > 1 {
		errs = multierror.Append(errs, errors.Errorf("threshold must be in [0, 1], got %v", o.Threshold))
	}

	o.compiledWhites = compilePatterns(o.SpecialWhites, "special white", &errs)
	o.compiledBlacks = compilePatterns(o.SpecialBlacks, "special black", &errs)

	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Logger == nil {
		o.Logger = logging.NewNopLogger()
	}

	return errs.ErrorOrNil()
}

func compilePatterns(patterns []string, kind string, errs **multierror.Error) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			*errs = multierror.Append(*errs, errors.Wrapf(err, "%s pattern %q", kind, p))
			continue
		}
		compiled = append(compiled, re)
	}
	return compiled
}
