package parse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shshemi/tipping/pkg/tipping/parse"
)

func TestValidateDefaultsAreAccepted(t *testing.T) {
	opts := parse.DefaultOptions()
	assert.NoError(t, opts.Validate())
	assert.Greater(t, opts.Workers, 0)
	assert.NotNil(t, opts.Logger)
}

func TestValidateRejectsOutOfRangeThreshold(t *testing.T) {
	opts := parse.NewOptions(parse.WithThreshold(1.5))
	err := opts.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "threshold")
}

func TestValidateRejectsUnparseablePattern(t *testing.T) {
	opts := parse.NewOptions(parse.WithSpecialWhites(`(unclosed`))
	err := opts.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "special white")
}

// Validate must collect every violation into a single error rather than
// stop at the first one: an out-of-range threshold plus two bad patterns
// (one white, one black) should all be visible in the returned error text.
func TestValidateCollectsAllViolations(t *testing.T) {
	opts := parse.NewOptions(
		parse.WithThreshold(-1),
		parse.WithSpecialWhites(`(bad`),
		parse.WithSpecialBlacks(`[bad`),
	)
	err := opts.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "threshold")
	assert.Contains(t, msg, "special white")
	assert.Contains(t, msg, "special black")
}

func TestValidateKeepsValidPatternsAlongsideBadOnes(t *testing.T) {
	opts := parse.NewOptions(parse.WithSpecialWhites(`\d+`, `(bad`))
	err := opts.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(bad")
}

func TestWithWorkersOverridesDefault(t *testing.T) {
	opts := parse.NewOptions(parse.WithWorkers(3))
	require.NoError(t, opts.Validate())
	assert.Equal(t, 3, opts.Workers)
}

func TestWithWorkersNonPositiveFallsBackToDefault(t *testing.T) {
	opts := parse.NewOptions(parse.WithWorkers(0))
	require.NoError(t, opts.Validate())
	assert.Greater(t, opts.Workers, 0)
}
