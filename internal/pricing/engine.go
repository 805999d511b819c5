// Package pricing holds the two pure computation cores of stripledger: the
// weighted-average acquisition cost used for sale profit, and the per-tier
// best-offer / recommended-purchase-price engine. Everything here operates
// on already-fetched data, performs no I/O and never mutates its inputs, so
// concurrent callers need no coordination.
package pricing

import "strings"

// MaxTiers bounds how many expiration tiers a buyer price sheet may carry.
// Two is typical, four is the most seen in real sheets.
const MaxTiers = 4

// DefaultCostSampleSize is how many of the most recent purchase line items
// feed the average cost when the caller does not say otherwise.
const DefaultCostSampleSize = 10

// LineItem is one purchase line as fetched from the ledger (newest first).
type LineItem struct {
	Quantity   int
	UnitPrice  float64
	TotalPrice float64
}

// Offer is one buyer's price sheet for one product. Tiers are ordered by
// tier index; a nil tier price means the buyer makes no offer at that tier.
type Offer struct {
	BuyerID     string
	BuyerName   string
	IsPreferred bool
	Tiers       []Tier
}

type Tier struct {
	Label string
	Price *float64
}

// TierQuote is the winning offer for one tier.
type TierQuote struct {
	BuyerID   string
	BuyerName string
	Label     string
	Price     float64
}

// Recommendation pairs a tier's best offer with the acquisition-price
// ceiling that still hits the target margin when reselling at that offer.
type Recommendation struct {
	TierIndex                   int
	TierLabel                   string
	Best                        TierQuote
	RecommendedAcquisitionPrice float64
}

// AverageUnitCost computes the quantity-weighted average unit price over the
// sample: sum(totalPrice)/sum(quantity). The recency bias comes entirely
// from the caller fetching a bounded newest-first window, so the result
// tracks current market rather than lifetime history.
//
// An empty sample (or zero total quantity) yields 0. Callers treat "no cost
// data" and "zero cost" identically: profit on a sale of such a product
// equals its revenue. That deliberately overstates profit for products with
// no purchase history; keep it unless product requirements change.
func AverageUnitCost(items []LineItem) float64 {
	var totalCost float64
	var totalQty int
	for _, it := range items {
		totalCost += it.TotalPrice
		totalQty += it.Quantity
	}
	if totalQty <= 0 {
		return 0
	}
	return totalCost / float64(totalQty)
}

// BestOfferForTier scans every offer and returns the highest price at the
// given 1-based tier index. Offers without a price at that tier are skipped;
// if no offer prices the tier at all, ok is false.
//
// Tie-break on equal price is deterministic: a preferred buyer beats a
// non-preferred one, then the lexicographically smaller buyer name
// (case-insensitive) wins. Price always dominates; preferred never
// outranks a higher offer.
func BestOfferForTier(offers []Offer, tierIndex int) (TierQuote, bool) {
	var best TierQuote
	var bestPreferred, found bool
	for _, o := range offers {
		if tierIndex < 1 || tierIndex > len(o.Tiers) {
			continue
		}
		t := o.Tiers[tierIndex-1]
		if t.Price == nil {
			continue
		}
		q := TierQuote{BuyerID: o.BuyerID, BuyerName: o.BuyerName, Label: t.Label, Price: *t.Price}
		if !found || beats(q, o.IsPreferred, best, bestPreferred) {
			best, bestPreferred, found = q, o.IsPreferred, true
		}
	}
	return best, found
}

func beats(a TierQuote, aPref bool, b TierQuote, bPref bool) bool {
	if a.Price != b.Price {
		return a.Price > b.Price
	}
	if aPref != bPref {
		return aPref
	}
	return strings.ToLower(a.BuyerName) < strings.ToLower(b.BuyerName)
}

// RecommendedAcquisitionPrice inverts margin = (sell-cost)/cost*100 for
// cost: the most you can pay and still hit targetMarginPercent when
// reselling at sellPrice. Margins at or below -100 have no finite answer;
// ok is false and the caller should treat the input as invalid.
func RecommendedAcquisitionPrice(sellPrice, targetMarginPercent float64) (float64, bool) {
	denom := 1 + targetMarginPercent/100
	if denom <= 0 {
		return 0, false
	}
	return sellPrice / denom, true
}

// Recommendations walks tiers in ascending order and emits one entry per
// tier that has a best offer, translating each into an acquisition ceiling
// for the target margin. A later tier whose best price equals an
// already-emitted tier's best price is suppressed, so coinciding tier-1 and
// tier-2 offers show once. No offers at all yields an empty slice, never an
// error. The result is recomputed fresh on every call.
func Recommendations(offers []Offer, targetMarginPercent float64) []Recommendation {
	out := []Recommendation{}
	seen := map[float64]bool{}
	for tier := 1; tier <= MaxTiers; tier++ {
		best, ok := BestOfferForTier(offers, tier)
		if !ok || seen[best.Price] {
			continue
		}
		rec, ok := RecommendedAcquisitionPrice(best.Price, targetMarginPercent)
		if !ok {
			continue
		}
		seen[best.Price] = true
		out = append(out, Recommendation{
			TierIndex:                   tier,
			TierLabel:                   best.Label,
			Best:                        best,
			RecommendedAcquisitionPrice: rec,
		})
	}
	return out
}
