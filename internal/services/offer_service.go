package services

import (
	"stripledger/internal/domain"
	"stripledger/internal/pricing"
	"stripledger/internal/repos"

	"github.com/google/uuid"
)

// TierInput is an optional (label, price) pair; nil price means the buyer
// does not price that tier.
type TierInput struct {
	Label string   `json:"label"`
	Price *float64 `json:"price"`
}

type OfferService struct {
	Offers *repos.OfferRepo
	Buyers *repos.BuyerRepo
	Prods  *repos.ProductRepo
}

func NewOfferService(offers *repos.OfferRepo, buyers *repos.BuyerRepo, prods *repos.ProductRepo) *OfferService {
	return &OfferService{Offers: offers, Buyers: buyers, Prods: prods}
}

// Upsert saves a buyer's price sheet for a product. Writing the same
// (buyer, product) pair again updates in place, never duplicates.
func (s *OfferService) Upsert(buyerID, productID string, tiers []TierInput, dingReduction, damaged *float64) (domain.BuyerOffer, error) {
	if _, err := s.Buyers.Get(buyerID); err != nil {
		return domain.BuyerOffer{}, err
	}
	ok, err := s.Prods.Exists(productID)
	if err != nil {
		return domain.BuyerOffer{}, err
	}
	if !ok {
		return domain.BuyerOffer{}, ErrUnknownProduct
	}
	if len(tiers) > pricing.MaxTiers {
		return domain.BuyerOffer{}, ErrTooManyTiers
	}
	for _, t := range tiers {
		if t.Price != nil && *t.Price < 0 {
			return domain.BuyerOffer{}, ErrBadPrice
		}
	}

	o := domain.BuyerOffer{
		ID:                 uuid.NewString(),
		BuyerID:            buyerID,
		ProductID:          productID,
		DingReductionPrice: dingReduction,
		DamagedPrice:       damaged,
	}
	for i, t := range tiers {
		o.Tiers = append(o.Tiers, domain.OfferTier{TierIndex: i + 1, Label: t.Label, Price: t.Price})
	}
	if err := s.Offers.Upsert(o); err != nil {
		return domain.BuyerOffer{}, err
	}
	return o, nil
}

func (s *OfferService) ListByProduct(productID string) ([]repos.OfferRow, error) {
	return s.Offers.ListByProduct(productID)
}

func (s *OfferService) ListByBuyer(buyerID string) ([]repos.OfferRow, error) {
	return s.Offers.ListByBuyer(buyerID)
}

func (s *OfferService) Delete(buyerID, productID string) error {
	return s.Offers.Delete(buyerID, productID)
}
