package handlers

import (
	"stripledger/internal/repos"
	"stripledger/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	AuthHandler      *AuthHandler
	CustomerHandler  *CustomerHandler
	BuyerHandler     *BuyerHandler
	CategoryHandler  *CategoryHandler
	ProductHandler   *ProductHandler
	PurchaseHandler  *PurchaseHandler
	SaleHandler      *SaleHandler
	OfferHandler     *OfferHandler
	DashboardHandler *DashboardHandler

	Auth *services.AuthService
}

func NewDeps(db *sqlx.DB, jwtSecret string) *Deps {
	userRepo := repos.NewUserRepo(db)
	custRepo := repos.NewCustomerRepo(db)
	buyerRepo := repos.NewBuyerRepo(db)
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	purchRepo := repos.NewPurchaseRepo(db)
	saleRepo := repos.NewSaleRepo(db)
	offerRepo := repos.NewOfferRepo(db)
	dashRepo := repos.NewDashboardRepo(db)

	authSvc := services.NewAuthService(userRepo, jwtSecret)
	custSvc := services.NewCustomerService(custRepo)
	buyerSvc := services.NewBuyerService(buyerRepo)
	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	purchSvc := services.NewPurchaseService(purchRepo, custRepo, prodRepo)
	saleSvc := services.NewSaleService(saleRepo, buyerRepo, prodRepo, purchSvc)
	offerSvc := services.NewOfferService(offerRepo, buyerRepo, prodRepo)
	recSvc := services.NewRecommendationService(offerRepo, userRepo)

	return &Deps{
		AuthHandler:      &AuthHandler{Auth: authSvc},
		CustomerHandler:  &CustomerHandler{Customers: custSvc},
		BuyerHandler:     &BuyerHandler{Buyers: buyerSvc, Offers: offerSvc},
		CategoryHandler:  &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc, Purchases: purchSvc, Recs: recSvc},
		PurchaseHandler:  &PurchaseHandler{Purchases: purchSvc},
		SaleHandler:      &SaleHandler{Sales: saleSvc},
		OfferHandler:     &OfferHandler{Offers: offerSvc},
		DashboardHandler: &DashboardHandler{Dash: dashRepo, Recs: recSvc},
		Auth:             authSvc,
	}
}
