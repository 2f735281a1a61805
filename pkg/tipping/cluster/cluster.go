// Package cluster groups messages by exact anchor-token-set equality,
// assigning each distinct non-empty anchor set a cluster id.
package cluster

import (
	"strings"

	"github.com/shshemi/tipping/pkg/tipping/token"
)

// Result is the output of Group: per-message cluster assignment plus, for
// each cluster id, its member indices and the anchor token set that defines
// it.
type Result struct {
	// ClusterOf has one entry per input message. A nil entry means that
	// message's anchor set was empty and it was not assigned to any
	// cluster.
	ClusterOf []*int
	// Members[cid] holds the message indices belonging to cluster cid, in
	// ascending order.
	Members [][]int
	// Anchors[cid] is the anchor token set that defines cluster cid.
	Anchors [][]token.Token
}

// Group assigns a cluster id to every message whose anchor set (from
// anchorSets[i], already sorted into canonical order by anchor.Find) is
// non-empty, grouping messages with identical anchor sets into the same
// cluster. Cluster ids are assigned in order of each anchor set's first
// appearance in anchorSets, so the same input always yields the same ids.
// Grounded on
// core/src/parser.rs::group_by_anchor_tokens's
// ".filter(anchor_toks not empty).enumerate()" pass.
func Group(anchorSets [][]token.Token) Result {
	type bucket struct {
		anchors []token.Token
		members []int
	}
	byKey := make(map[string]*bucket)
	order := make([]string, 0)

	for idx, anchors := range anchorSets {
		if len(anchors) == 0 {
			continue
		}
		key := canonicalKey(anchors)
		b, ok := byKey[key]
		if !ok {
			b = &bucket{anchors: anchors}
			byKey[key] = b
			order = append(order, key)
		}
		b.members = append(b.members, idx)
	}

	res := Result{
		ClusterOf: make([]*int, len(anchorSets)),
	}
	for cid, key := range order {
		b := byKey[key]
		res.Members = append(res.Members, b.members)
		res.Anchors = append(res.Anchors, b.anchors)
		id := cid
		for _, idx := range b.members {
			res.ClusterOf[idx] = &id
		}
	}
	return res
}

// canonicalKey renders an ordered anchor token set into one string safe to
// use as a Go map key — Go cannot key a map on a slice directly, unlike the
// reference implementation's BTreeSet<Token>, which is already ordered and
// hashable as a value type.
func canonicalKey(anchors []token.Token) string {
	var b strings.Builder
	for i, tok := range anchors {
		if i > 0 {
			b.WriteByte('\x1f')
		}
		b.WriteString(tok.Key())
	}
	return b.String()
}
