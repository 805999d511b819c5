package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func TestAverageUnitCost(t *testing.T) {
	// single line: 10 units at 1.00
	got := AverageUnitCost([]LineItem{{Quantity: 10, UnitPrice: 1.00, TotalPrice: 10.00}})
	assert.Equal(t, 1.00, got)

	// weighted: (5*2 + 5*4) / 10 = 3.00
	got = AverageUnitCost([]LineItem{
		{Quantity: 5, UnitPrice: 2.00, TotalPrice: 10.00},
		{Quantity: 5, UnitPrice: 4.00, TotalPrice: 20.00},
	})
	assert.Equal(t, 3.00, got)

	// empty sample: zero, not an error
	assert.Equal(t, 0.0, AverageUnitCost(nil))
	assert.Equal(t, 0.0, AverageUnitCost([]LineItem{}))
}

func TestAverageUnitCostOrderInsensitive(t *testing.T) {
	a := []LineItem{
		{Quantity: 3, TotalPrice: 31.50},
		{Quantity: 7, TotalPrice: 42.00},
		{Quantity: 2, TotalPrice: 9.98},
	}
	b := []LineItem{a[2], a[0], a[1]}
	assert.Equal(t, AverageUnitCost(a), AverageUnitCost(b))
}

func TestRecommendedAcquisitionPrice(t *testing.T) {
	// 62.00 at 20% margin -> 51.666...
	got, ok := RecommendedAcquisitionPrice(62.00, 20)
	require.True(t, ok)
	assert.InDelta(t, 51.6666, got, 0.0001)

	// round-trip: achieved margin matches the target
	for _, tc := range []struct{ sell, margin float64 }{
		{62, 20}, {100, 5}, {13.37, 50}, {0.99, 33.3},
	} {
		cost, ok := RecommendedAcquisitionPrice(tc.sell, tc.margin)
		require.True(t, ok)
		achieved := (tc.sell - cost) / cost * 100
		assert.InDelta(t, tc.margin, achieved, 1e-9)
	}

	// margins at or below -100 are rejected, not divided by
	_, ok = RecommendedAcquisitionPrice(10, -100)
	assert.False(t, ok)
	_, ok = RecommendedAcquisitionPrice(10, -250)
	assert.False(t, ok)
}

func TestBestOfferForTier(t *testing.T) {
	offers := []Offer{
		{BuyerID: "x", BuyerName: "Buyer X", Tiers: []Tier{{Label: "Mint 12/26+", Price: fp(60)}}},
		{BuyerID: "y", BuyerName: "Buyer Y", IsPreferred: true, Tiers: []Tier{{Label: "Mint 12/26+", Price: fp(65)}}},
	}

	// price dominates; preferred is only a tie-break hint
	best, ok := BestOfferForTier(offers, 1)
	require.True(t, ok)
	assert.Equal(t, "y", best.BuyerID)
	assert.Equal(t, 65.0, best.Price)

	// all-nil tier -> no quote
	_, ok = BestOfferForTier(offers, 2)
	assert.False(t, ok)

	// nil prices are skipped, never treated as zero
	withNil := append(offers, Offer{BuyerID: "z", BuyerName: "Buyer Z", Tiers: []Tier{{Price: nil}}})
	best, ok = BestOfferForTier(withNil, 1)
	require.True(t, ok)
	assert.NotEqual(t, "z", best.BuyerID)
}

func TestBestOfferTieBreakDeterministic(t *testing.T) {
	mk := func(id, name string, pref bool, price float64) Offer {
		return Offer{BuyerID: id, BuyerName: name, IsPreferred: pref, Tiers: []Tier{{Label: "Mint", Price: fp(price)}}}
	}

	// equal price: preferred wins regardless of scan order
	offers := []Offer{mk("a", "Alpha", false, 50), mk("b", "Beta", true, 50)}
	best, ok := BestOfferForTier(offers, 1)
	require.True(t, ok)
	assert.Equal(t, "b", best.BuyerID)
	best, _ = BestOfferForTier([]Offer{offers[1], offers[0]}, 1)
	assert.Equal(t, "b", best.BuyerID)

	// equal price, equal preference: lower buyer name wins
	offers = []Offer{mk("b", "beta", false, 50), mk("a", "Alpha", false, 50)}
	best, _ = BestOfferForTier(offers, 1)
	assert.Equal(t, "a", best.BuyerID)
}

func TestBestOfferToleratesInvertedAndShortTiers(t *testing.T) {
	// inverted tiers (tier 2 above tier 1) are data, not an error
	o := Offer{BuyerID: "x", BuyerName: "X", Tiers: []Tier{
		{Label: "Mint", Price: fp(40)},
		{Label: "Short", Price: fp(55)},
	}}
	short := Offer{BuyerID: "y", BuyerName: "Y", Tiers: []Tier{{Label: "Mint", Price: fp(41)}}}

	best, ok := BestOfferForTier([]Offer{o, short}, 2)
	require.True(t, ok)
	assert.Equal(t, 55.0, best.Price)
}

func TestRecommendations(t *testing.T) {
	offers := []Offer{
		{BuyerID: "x", BuyerName: "X", Tiers: []Tier{
			{Label: "Mint 12/26+", Price: fp(60)},
			{Label: "Short 06/26", Price: fp(45)},
		}},
		{BuyerID: "y", BuyerName: "Y", Tiers: []Tier{
			{Label: "Mint 12/26+", Price: fp(65)},
			{Label: "Short 06/26", Price: fp(40)},
		}},
	}

	recs := Recommendations(offers, 20)
	require.Len(t, recs, 2)
	assert.Equal(t, 1, recs[0].TierIndex)
	assert.Equal(t, 65.0, recs[0].Best.Price)
	assert.InDelta(t, 65.0/1.2, recs[0].RecommendedAcquisitionPrice, 1e-9)
	assert.Equal(t, 2, recs[1].TierIndex)
	assert.Equal(t, 45.0, recs[1].Best.Price)
}

func TestRecommendationsSuppressDuplicateBestPrice(t *testing.T) {
	// tier 1 and tier 2 best offers coincide: show once
	offers := []Offer{
		{BuyerID: "x", BuyerName: "X", Tiers: []Tier{
			{Label: "Mint", Price: fp(50)},
			{Label: "Short", Price: fp(50)},
		}},
	}
	recs := Recommendations(offers, 20)
	require.Len(t, recs, 1)
	assert.Equal(t, 1, recs[0].TierIndex)

	// and never two entries derived from the same best price in general
	seen := map[float64]int{}
	for _, r := range recs {
		seen[r.Best.Price]++
	}
	for _, n := range seen {
		assert.Equal(t, 1, n)
	}
}

func TestRecommendationsNoOffers(t *testing.T) {
	recs := Recommendations(nil, 20)
	require.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestRecommendationsRoundOnlyAtPresentation(t *testing.T) {
	offers := []Offer{{BuyerID: "x", BuyerName: "X", Tiers: []Tier{{Label: "Mint", Price: fp(62)}}}}
	recs := Recommendations(offers, 20)
	require.Len(t, recs, 1)
	// raw value is unrounded; display layers round to cents
	assert.Greater(t, math.Abs(recs[0].RecommendedAcquisitionPrice-51.67), 1e-9)
	assert.InDelta(t, 51.67, recs[0].RecommendedAcquisitionPrice, 0.01)
}
