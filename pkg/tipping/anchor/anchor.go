// Package anchor computes the anchor token set for a single message: the
// largest strongly connected component of its per-message token
// interdependency graph, with configured special-white tokens forced in and
// special-black tokens forced out.
package anchor

import (
	"sort"

	"github.com/shshemi/tipping/pkg/tipping/record"
	"github.com/shshemi/tipping/pkg/tipping/token"
)

// Find returns the anchor tokens for one message's tokenized sequence,
// sorted into a canonical (Type, Text) order so equal anchor sets compare
// equal regardless of how the underlying map iterated. Grounded on
// core/src/graph.rs (build_graph / anchor_nodes) and
// core/src/parser.rs::group_by_anchor_tokens.
func Find(tokens []token.Token, rec *record.TokenRecord, threshold float64) []token.Token {
	candidates := uniqueCandidates(tokens, rec)
	adj := buildGraph(candidates, func(a, b token.Token) bool {
		dep, ok := rec.Dependency(a.Text, b.Text)
		return ok && dep > threshold
	})

	byKey := make(map[string]token.Token, len(candidates))
	for _, tok := range candidates {
		byKey[tok.Key()] = tok
	}

	set := make(map[string]token.Token)
	for _, key := range largestSCC(candidates, adj) {
		set[key] = byKey[key]
	}

	for _, tok := range tokens {
		switch tok.Type {
		case token.SpecialWhite:
			set[tok.Key()] = tok
		case token.SpecialBlack:
			delete(set, tok.Key())
		}
	}

	out := make([]token.Token, 0, len(set))
	for _, tok := range set {
		out = append(out, tok)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Text < out[j].Text
	})
	return out
}

// uniqueCandidates returns the distinct (Type, Text) tokens from tokens that
// the corpus record has an occurrence count for, in first-encountered
// order. Tokens the record never counted (Symbolic, Whitespace,
// SpecialBlack, or a filtered-out variant) cannot be graph nodes.
func uniqueCandidates(tokens []token.Token, rec *record.TokenRecord) []token.Token {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]token.Token, 0, len(tokens))
	for _, tok := range tokens {
		if _, ok := rec.Occurrence(tok.Text); !ok {
			continue
		}
		key := tok.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tok)
	}
	return out
}

// buildGraph constructs a directed adjacency list over candidates: an edge
// u -> v is added iff connected(u, v). Realized as a map rather than a
// general-purpose graph library since a candidate set never exceeds one
// message's token count.
func buildGraph(candidates []token.Token, connected func(a, b token.Token) bool) map[string][]string {
	adj := make(map[string][]string, len(candidates))
	for _, tok := range candidates {
		adj[tok.Key()] = nil
	}
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			a, b := candidates[i], candidates[j]
			if connected(a, b) {
				adj[a.Key()] = append(adj[a.Key()], b.Key())
			}
			if connected(b, a) {
				adj[b.Key()] = append(adj[b.Key()], a.Key())
			}
		}
	}
	return adj
}

// largestSCC runs Kosaraju's two-pass algorithm over adj and returns the
// node keys of the largest strongly connected component. Ties are broken in
// favor of the first SCC discovered during the second pass.
func largestSCC(candidates []token.Token, adj map[string][]string) []string {
	order := make([]string, 0, len(candidates))
	for _, tok := range candidates {
		order = append(order, tok.Key())
	}
	if len(order) == 0 {
		return nil
	}

	visited := make(map[string]bool, len(order))
	finishOrder := make([]string, 0, len(order))
	var dfs1 func(u string)
	dfs1 = func(u string) {
		visited[u] = true
		for _, v := range adj[u] {
			if !visited[v] {
				dfs1(v)
			}
		}
		finishOrder = append(finishOrder, u)
	}
	for _, u := range order {
		if !visited[u] {
			dfs1(u)
		}
	}

	radj := make(map[string][]string, len(order))
	for _, u := range order {
		radj[u] = nil
	}
	for u, vs := range adj {
		for _, v := range vs {
			radj[v] = append(radj[v], u)
		}
	}

	visited2 := make(map[string]bool, len(order))
	var sccs [][]string
	for i := len(finishOrder) - 1; i >= 0; i-- {
		u := finishOrder[i]
		if visited2[u] {
			continue
		}
		var comp []string
		var dfs2 func(u string)
		dfs2 = func(u string) {
			visited2[u] = true
			comp = append(comp, u)
			for _, v := range radj[u] {
				if !visited2[v] {
					dfs2(v)
				}
			}
		}
		dfs2(u)
		sccs = append(sccs, comp)
	}

	best := sccs[0]
	for _, comp := range sccs[1:] {
		if len(comp) > len(best) {
			best = comp
		}
	}
	return best
}
