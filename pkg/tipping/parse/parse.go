// Package parse wires the tokenizer, co-occurrence record, anchor finder,
// clusterer, and template builder into a single end-to-end pass over a
// corpus of log messages.
package parse

import (
	"context"
	"time"

	"github.com/shshemi/tipping/internal/concurrent"
	"github.com/shshemi/tipping/internal/logging"
	"github.com/shshemi/tipping/pkg/tipping/anchor"
	"github.com/shshemi/tipping/pkg/tipping/cluster"
	"github.com/shshemi/tipping/pkg/tipping/record"
	"github.com/shshemi/tipping/pkg/tipping/template"
	"github.com/shshemi/tipping/pkg/tipping/token"
	"github.com/shshemi/tipping/pkg/tipping/tokenizer"
)

// Result is the output of one Parse call.
type Result struct {
	// Clusters has one entry per input message: the cluster id it was
	// assigned, or nil if its anchor set was empty.
	Clusters []*int
	// Templates[cid] is the set of distinct template renderings for
	// cluster cid. Empty unless Options.WantTemplates.
	Templates []map[string]struct{}
	// Masks has one entry per input message, its parameter mask, when
	// Options.WantMasks is set; otherwise it is empty.
	Masks []string
}

// Parse runs the full pipeline over messages: tokenize, build the
// corpus-wide co-occurrence record, derive each message's anchor token
// set, group messages into clusters by anchor set, then — when requested —
// compute per-cluster templates and per-message parameter masks.
//
// ctx is checked cooperatively between per-message tasks in each parallel
// pass. Parse constructs no partial result on a configuration error; once
// past Validate, a cancelled ctx surfaces as a returned error with
// whatever partial Result had been assembled at that point.
func Parse(ctx context.Context, messages []string, opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	log := opts.Logger
	start := time.Now()

	tz := tokenizer.New(opts.compiledWhites, opts.compiledBlacks, opts.Symbols)
	recFilter := record.Filter{
		Alphabetic: opts.FilterAlphabetic,
		Numeric:    opts.FilterNumeric,
		Impure:     opts.FilterImpure,
	}
	rec := record.Build(ctx, messages, tz, recFilter, opts.Workers)
	log.Debug("token record built", logging.Int("messages", len(messages)))

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	anchorSets := concurrent.MapOrdered(ctx, messages, opts.Workers, func(_ int, msg string) []token.Token {
		return anchor.Find(tz.Tokenize(msg), rec, opts.Threshold)
	})

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	grouped := cluster.Group(anchorSets)
	log.Debug("clusters formed", logging.Int("clusters", len(grouped.Members)))

	result := Result{Clusters: grouped.ClusterOf}
	if !opts.WantTemplates && !opts.WantMasks {
		log.Info("parse complete", logging.Duration("elapsed", time.Since(start)))
		return result, nil
	}

	tzB := tz.WithSymbols(token.PunctuationSymbols)
	templFilter := template.Filter{
		Alphabetic: opts.FilterAlphabetic,
		Numeric:    opts.FilterNumeric,
		Impure:     opts.FilterImpure,
	}

	if opts.WantTemplates {
		result.Templates = make([]map[string]struct{}, len(grouped.Members))
	}
	if opts.WantMasks {
		result.Masks = make([]string, len(messages))
		for i, msg := range messages {
			if grouped.ClusterOf[i] == nil {
				result.Masks[i] = zeros(len(msg))
			}
		}
	}

	clusterIDs := make([]int, len(grouped.Members))
	for i := range clusterIDs {
		clusterIDs[i] = i
	}
	// Each cluster owns a disjoint slice of message indices and its own
	// result.Templates[cid] slot, so concurrent writers never touch the
	// same element.
	concurrent.MapOrdered(ctx, clusterIDs, opts.Workers, func(_ int, cid int) struct{} {
		if ctx.Err() != nil {
			return struct{}{}
		}
		members := grouped.Members[cid]
		clusterMessages := make([]string, len(members))
		for i, idx := range members {
			clusterMessages[i] = messages[idx]
		}
		shared := template.SharedSlices(clusterMessages, tzB, templFilter)

		if opts.WantTemplates {
			result.Templates[cid] = template.Templates(clusterMessages, tzB, shared)
		}
		if opts.WantMasks {
			for _, idx := range members {
				result.Masks[idx] = template.Mask(messages[idx], tzB, shared)
			}
		}
		return struct{}{}
	})

	log.Info("parse complete",
		logging.Duration("elapsed", time.Since(start)),
		logging.Int("clusters", len(grouped.Members)),
	)
	return result, ctx.Err()
}

func zeros(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}
