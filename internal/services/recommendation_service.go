package services

import (
	"stripledger/internal/pricing"
	"stripledger/internal/repos"
)

const DefaultTargetMargin = 20

type RecommendationService struct {
	Offers *repos.OfferRepo
	Users  *repos.UserRepo
}

func NewRecommendationService(offers *repos.OfferRepo, users *repos.UserRepo) *RecommendationService {
	return &RecommendationService{Offers: offers, Users: users}
}

// TargetMargin resolves the margin for a request: an explicit override
// wins, then the user's saved preference, then the default of 20.
func (s *RecommendationService) TargetMargin(userID string, override *float64) float64 {
	if override != nil {
		return *override
	}
	if userID != "" {
		if st, err := s.Users.Settings(userID); err == nil {
			return st.TargetMarginPercent
		}
	}
	return DefaultTargetMargin
}

// ForProduct fetches the product's buyer offers and runs the recommendation
// engine. A product nobody prices yields an empty list, not an error.
func (s *RecommendationService) ForProduct(productID string, targetMarginPercent float64) ([]pricing.Recommendation, error) {
	rows, err := s.Offers.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	offers := make([]pricing.Offer, 0, len(rows))
	for _, r := range rows {
		o := pricing.Offer{BuyerID: r.BuyerID, BuyerName: r.BuyerName, IsPreferred: r.IsPreferred}
		for _, t := range r.Tiers {
			o.Tiers = append(o.Tiers, pricing.Tier{Label: t.Label, Price: t.Price})
		}
		offers = append(offers, o)
	}
	return pricing.Recommendations(offers, targetMarginPercent), nil
}

func (s *RecommendationService) SaveMargin(userID string, targetMarginPercent float64) error {
	if targetMarginPercent < 5 || targetMarginPercent > 50 {
		return ErrBadMargin
	}
	return s.Users.SaveSettings(userID, targetMarginPercent)
}
