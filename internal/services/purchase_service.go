package services

import (
	"stripledger/internal/domain"
	"stripledger/internal/pricing"
	"stripledger/internal/repos"

	"github.com/google/uuid"
)

// LineItemInput is one row of a purchase or sale payload.
type LineItemInput struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type PurchaseService struct {
	Purchases *repos.PurchaseRepo
	Customers *repos.CustomerRepo
	Prods     *repos.ProductRepo
}

func NewPurchaseService(p *repos.PurchaseRepo, c *repos.CustomerRepo, prods *repos.ProductRepo) *PurchaseService {
	return &PurchaseService{Purchases: p, Customers: c, Prods: prods}
}

func (s *PurchaseService) Create(customerID, purchaseDate, notes string, lines []LineItemInput) (domain.Purchase, error) {
	if _, err := s.Customers.Get(customerID); err != nil {
		return domain.Purchase{}, err
	}
	items, total, err := s.buildItems(lines)
	if err != nil {
		return domain.Purchase{}, err
	}

	p := domain.Purchase{
		ID:           uuid.NewString(),
		CustomerID:   customerID,
		PurchaseDate: purchaseDate,
		Notes:        notes,
		Total:        total,
		Active:       true,
	}
	for i := range items {
		items[i].PurchaseID = p.ID
	}
	if err := s.Purchases.Create(p, items); err != nil {
		return domain.Purchase{}, err
	}
	return p, nil
}

// Update rewrites the header and recreates every line item; line totals are
// fixed at this write, not recomputed later.
func (s *PurchaseService) Update(id, customerID, purchaseDate, notes string, lines []LineItemInput) error {
	if _, err := s.Customers.Get(customerID); err != nil {
		return err
	}
	items, total, err := s.buildItems(lines)
	if err != nil {
		return err
	}
	p := domain.Purchase{ID: id, CustomerID: customerID, PurchaseDate: purchaseDate, Notes: notes, Total: total}
	for i := range items {
		items[i].PurchaseID = id
	}
	return s.Purchases.ReplaceItems(p, items)
}

func (s *PurchaseService) buildItems(lines []LineItemInput) ([]domain.PurchaseItem, float64, error) {
	if len(lines) == 0 {
		return nil, 0, ErrNoItems
	}
	var items []domain.PurchaseItem
	var total float64
	for _, l := range lines {
		if l.Quantity < 1 {
			return nil, 0, ErrBadQuantity
		}
		if l.UnitPrice < 0 {
			return nil, 0, ErrBadPrice
		}
		ok, err := s.Prods.Exists(l.ProductID)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			return nil, 0, ErrUnknownProduct
		}
		lineTotal := float64(l.Quantity) * l.UnitPrice
		items = append(items, domain.PurchaseItem{
			ID:         uuid.NewString(),
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			TotalPrice: lineTotal,
		})
		total += lineTotal
	}
	return items, total, nil
}

func (s *PurchaseService) ListLatest(page, pageSize int) ([]repos.PurchaseSummary, error) {
	limit, offset := paging(page, pageSize)
	return s.Purchases.ListLatest(limit, offset)
}

func (s *PurchaseService) ListByCustomer(customerID string) ([]domain.Purchase, error) {
	return s.Purchases.ListByCustomer(customerID)
}

func (s *PurchaseService) Get(id string) (domain.Purchase, []domain.PurchaseItem, error) {
	return s.Purchases.Get(id)
}

func (s *PurchaseService) Deactivate(id string) error {
	return s.Purchases.Deactivate(id)
}

// AverageRecentUnitCost feeds the cost engine with up to sampleSize of the
// product's most recent line items. Unknown products yield an empty sample
// and cost 0; payload validation rejects unknown references before sale
// creation gets here.
func (s *PurchaseService) AverageRecentUnitCost(productID string, sampleSize int) (float64, error) {
	if sampleSize <= 0 {
		sampleSize = pricing.DefaultCostSampleSize
	}
	rows, err := s.Purchases.RecentItems(productID, sampleSize)
	if err != nil {
		return 0, err
	}
	sample := make([]pricing.LineItem, 0, len(rows))
	for _, r := range rows {
		sample = append(sample, pricing.LineItem{Quantity: r.Quantity, UnitPrice: r.UnitPrice, TotalPrice: r.TotalPrice})
	}
	return pricing.AverageUnitCost(sample), nil
}
