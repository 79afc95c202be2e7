//go:build unit
// +build unit

package pricing

import (
	"testing"

	"github.com/genno-io/genno/internal/domain/credits"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	plans := Catalog(PriceIDs{Monthly: "pri_sm", Yearly: "pri_sy"}, PriceIDs{Monthly: "pri_tm", Yearly: "pri_ty"})
	require.Len(t, plans, 3)

	for i, plan := range plans {
		assert.Equal(t, credits.Plans[i], plan.ID)
		assert.Equal(t, credits.Allowance(plan.ID), plan.Credits)
		assert.NotEmpty(t, plan.Features)
	}

	assert.Equal(t, Price{}, plans[0].Price)
	assert.Equal(t, PriceIDs{}, plans[0].PriceIDs)
	assert.Equal(t, 9.99, plans[1].Price.Monthly)
	assert.Equal(t, "pri_sy", plans[1].PriceIDs.Yearly)
	assert.True(t, plans[1].Popular)
	assert.Equal(t, 959.9, plans[2].Price.Yearly)
	assert.Equal(t, "pri_tm", plans[2].PriceIDs.Monthly)
}
