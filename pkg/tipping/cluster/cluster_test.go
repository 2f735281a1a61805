package cluster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shshemi/tipping/pkg/tipping/cluster"
	"github.com/shshemi/tipping/pkg/tipping/token"
)

func tok(typ token.Type, text string) token.Token {
	return token.Token{Type: typ, Text: text}
}

func TestGroupS1Scenario(t *testing.T) {
	ab := []token.Token{tok(token.Alphabetic, "a"), tok(token.Alphabetic, "b")}
	cd := []token.Token{tok(token.Alphabetic, "c"), tok(token.Alphabetic, "d")}
	anchorSets := [][]token.Token{ab, ab, ab, ab, cd, cd, cd, cd}

	res := cluster.Group(anchorSets)
	require.Len(t, res.Members, 2)

	var abMembers, cdMembers []int
	for cid, anchors := range res.Anchors {
		if anchors[0].Text == "a" {
			abMembers = res.Members[cid]
		} else {
			cdMembers = res.Members[cid]
		}
	}
	assert.Equal(t, []int{0, 1, 2, 3}, abMembers)
	assert.Equal(t, []int{4, 5, 6, 7}, cdMembers)

	for i := 0; i < 4; i++ {
		require.NotNil(t, res.ClusterOf[i])
	}
	for i := 4; i < 8; i++ {
		require.NotNil(t, res.ClusterOf[i])
	}
	assert.Equal(t, *res.ClusterOf[0], *res.ClusterOf[3])
	assert.NotEqual(t, *res.ClusterOf[0], *res.ClusterOf[4])
}

func TestGroupEmptyAnchorSetGetsNoCluster(t *testing.T) {
	ab := []token.Token{tok(token.Alphabetic, "a")}
	anchorSets := [][]token.Token{ab, {}, ab}

	res := cluster.Group(anchorSets)
	assert.NotNil(t, res.ClusterOf[0])
	assert.Nil(t, res.ClusterOf[1])
	assert.NotNil(t, res.ClusterOf[2])
	assert.Equal(t, *res.ClusterOf[0], *res.ClusterOf[2])
}

func TestGroupExactSetEqualityRequired(t *testing.T) {
	ab := []token.Token{tok(token.Alphabetic, "a"), tok(token.Alphabetic, "b")}
	a := []token.Token{tok(token.Alphabetic, "a")}
	anchorSets := [][]token.Token{ab, a}

	res := cluster.Group(anchorSets)
	require.Len(t, res.Members, 2)
	assert.NotEqual(t, *res.ClusterOf[0], *res.ClusterOf[1])
}

func TestGroupDistinguishesVariantNotJustText(t *testing.T) {
	alphaA := []token.Token{tok(token.Alphabetic, "a")}
	whiteA := []token.Token{tok(token.SpecialWhite, "a")}
	anchorSets := [][]token.Token{alphaA, whiteA}

	res := cluster.Group(anchorSets)
	require.Len(t, res.Members, 2)
	assert.NotEqual(t, *res.ClusterOf[0], *res.ClusterOf[1])
}

// S5 from spec.md §8.
func TestGroupEmptyCorpus(t *testing.T) {
	res := cluster.Group(nil)
	assert.Empty(t, res.ClusterOf)
	assert.Empty(t, res.Members)
	assert.Empty(t, res.Anchors)
}
