package services

import (
	"stripledger/internal/domain"
	"stripledger/internal/pricing"
	"stripledger/internal/repos"

	"github.com/google/uuid"
)

type SaleService struct {
	Sales     *repos.SaleRepo
	Buyers    *repos.BuyerRepo
	Prods     *repos.ProductRepo
	Purchases *PurchaseService
}

func NewSaleService(sales *repos.SaleRepo, buyers *repos.BuyerRepo, prods *repos.ProductRepo, purchases *PurchaseService) *SaleService {
	return &SaleService{Sales: sales, Buyers: buyers, Prods: prods, Purchases: purchases}
}

var saleStatuses = map[string]bool{
	"PENDING": true, "SHIPPED": true, "PAID": true, "CANCELED": true,
}

// Create records a sale. Each line's unit cost comes from the cost engine
// over the product's recent purchase history; a product with no history
// costs 0, so its profit equals its revenue. Totals stay unrounded; display
// layers round.
func (s *SaleService) Create(buyerID, saleDate, notes string, lines []LineItemInput) (domain.Sale, error) {
	if _, err := s.Buyers.Get(buyerID); err != nil {
		return domain.Sale{}, err
	}
	if len(lines) == 0 {
		return domain.Sale{}, ErrNoItems
	}

	var items []domain.SaleItem
	var totalRevenue, totalCost float64
	for _, l := range lines {
		if l.Quantity < 1 {
			return domain.Sale{}, ErrBadQuantity
		}
		if l.UnitPrice < 0 {
			return domain.Sale{}, ErrBadPrice
		}
		ok, err := s.Prods.Exists(l.ProductID)
		if err != nil {
			return domain.Sale{}, err
		}
		if !ok {
			return domain.Sale{}, ErrUnknownProduct
		}

		unitCost, err := s.Purchases.AverageRecentUnitCost(l.ProductID, pricing.DefaultCostSampleSize)
		if err != nil {
			return domain.Sale{}, err
		}
		lineTotal := float64(l.Quantity) * l.UnitPrice
		costTotal := float64(l.Quantity) * unitCost
		items = append(items, domain.SaleItem{
			ID:        uuid.NewString(),
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: lineTotal,
			UnitCost:  unitCost,
			CostTotal: costTotal,
		})
		totalRevenue += lineTotal
		totalCost += costTotal
	}

	profit := totalRevenue - totalCost
	margin := 0.0
	if totalRevenue > 0 {
		margin = profit / totalRevenue * 100
	}

	sale := domain.Sale{
		ID:           uuid.NewString(),
		BuyerID:      buyerID,
		SaleDate:     saleDate,
		Notes:        notes,
		TotalRevenue: totalRevenue,
		TotalCost:    totalCost,
		Profit:       profit,
		ProfitMargin: margin,
		Status:       "PENDING",
		Active:       true,
	}
	for i := range items {
		items[i].SaleID = sale.ID
	}
	if err := s.Sales.Create(sale, items); err != nil {
		return domain.Sale{}, err
	}
	return sale, nil
}

func (s *SaleService) ListLatest(page, pageSize int) ([]repos.SaleSummary, error) {
	limit, offset := paging(page, pageSize)
	return s.Sales.ListLatest(limit, offset)
}

func (s *SaleService) ListByBuyer(buyerID string) ([]domain.Sale, error) {
	return s.Sales.ListByBuyer(buyerID)
}

func (s *SaleService) Get(id string) (domain.Sale, []domain.SaleItem, error) {
	return s.Sales.Get(id)
}

func (s *SaleService) UpdateStatus(id, status string) error {
	if !saleStatuses[status] {
		return ErrBadStatus
	}
	return s.Sales.UpdateStatus(id, status)
}

func (s *SaleService) Deactivate(id string) error {
	return s.Sales.Deactivate(id)
}
