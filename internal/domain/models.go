package domain

// Customer is a seller we buy test strips from.
type Customer struct {
	ID        string `db:"id" json:"id"`
	FirstName string `db:"first_name" json:"firstName"`
	LastName  string `db:"last_name" json:"lastName"`
	Phone     string `db:"phone" json:"phone"`
	Email     string `db:"email" json:"email"`
	Street    string `db:"street" json:"street"`
	City      string `db:"city" json:"city"`
	State     string `db:"state" json:"state"`
	Zip       string `db:"zip" json:"zip"`
	Notes     string `db:"notes" json:"notes"`
	Active    bool   `db:"active" json:"active"`
	CreatedAt string `db:"created_at" json:"createdAt"`
	UpdatedAt string `db:"updated_at" json:"updatedAt"`
}

// Buyer is a resale outfit we ship inventory to. IsPreferred is a display
// and tie-break hint only; it never changes which price wins.
type Buyer struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	ContactName string `db:"contact_name" json:"contactName"`
	Phone       string `db:"phone" json:"phone"`
	Email       string `db:"email" json:"email"`
	Website     string `db:"website" json:"website"`
	IsPreferred bool   `db:"is_preferred" json:"isPreferred"`
	Notes       string `db:"notes" json:"notes"`
	Active      bool   `db:"active" json:"active"`
	CreatedAt   string `db:"created_at" json:"createdAt"`
	UpdatedAt   string `db:"updated_at" json:"updatedAt"`
}

// Category nodes form a two-level tree: top-level categories have a NULL
// parent, subcategories point at their parent.
type Category struct {
	ID        string  `db:"id" json:"id"`
	Name      string  `db:"name" json:"name"`
	ParentID  *string `db:"parent_id" json:"parentId"`
	Active    bool    `db:"active" json:"active"`
	CreatedAt string  `db:"created_at" json:"createdAt"`
	UpdatedAt string  `db:"updated_at" json:"updatedAt"`
}

type Product struct {
	ID         string  `db:"id" json:"id"`
	Name       string  `db:"name" json:"name"`
	Brand      string  `db:"brand" json:"brand"`
	Model      string  `db:"model" json:"model"`
	CategoryID *string `db:"category_id" json:"categoryId"`
	Notes      string  `db:"notes" json:"notes"`
	Active     bool    `db:"active" json:"active"`
	CreatedAt  string  `db:"created_at" json:"createdAt"`
	UpdatedAt  string  `db:"updated_at" json:"updatedAt"`
}

type Purchase struct {
	ID           string  `db:"id" json:"id"`
	CustomerID   string  `db:"customer_id" json:"customerId"`
	PurchaseDate string  `db:"purchase_date" json:"purchaseDate"`
	Notes        string  `db:"notes" json:"notes"`
	Total        float64 `db:"total" json:"total"`
	Active       bool    `db:"active" json:"active"`
	CreatedAt    string  `db:"created_at" json:"createdAt"`
	UpdatedAt    string  `db:"updated_at" json:"updatedAt"`
}

// PurchaseItem's TotalPrice is fixed at creation (quantity x unit price) and
// never recomputed afterwards.
type PurchaseItem struct {
	ID         string  `db:"id" json:"id"`
	PurchaseID string  `db:"purchase_id" json:"purchaseId"`
	ProductID  string  `db:"product_id" json:"productId"`
	Quantity   int     `db:"quantity" json:"quantity"`
	UnitPrice  float64 `db:"unit_price" json:"unitPrice"`
	TotalPrice float64 `db:"total_price" json:"totalPrice"`
	CreatedAt  string  `db:"created_at" json:"createdAt"`
}

type Sale struct {
	ID           string  `db:"id" json:"id"`
	BuyerID      string  `db:"buyer_id" json:"buyerId"`
	SaleDate     string  `db:"sale_date" json:"saleDate"`
	Notes        string  `db:"notes" json:"notes"`
	TotalRevenue float64 `db:"total_revenue" json:"totalRevenue"`
	TotalCost    float64 `db:"total_cost" json:"totalCost"`
	Profit       float64 `db:"profit" json:"profit"`
	ProfitMargin float64 `db:"profit_margin" json:"profitMargin"`
	Status       string  `db:"status" json:"status"` // PENDING | SHIPPED | PAID | CANCELED
	Active       bool    `db:"active" json:"active"`
	CreatedAt    string  `db:"created_at" json:"createdAt"`
	UpdatedAt    string  `db:"updated_at" json:"updatedAt"`
}

type SaleItem struct {
	ID        string  `db:"id" json:"id"`
	SaleID    string  `db:"sale_id" json:"saleId"`
	ProductID string  `db:"product_id" json:"productId"`
	Quantity  int     `db:"quantity" json:"quantity"`
	UnitPrice float64 `db:"unit_price" json:"unitPrice"`
	LineTotal float64 `db:"line_total" json:"lineTotal"`
	UnitCost  float64 `db:"unit_cost" json:"unitCost"`
	CostTotal float64 `db:"cost_total" json:"costTotal"`
}

// BuyerOffer is one buyer's price sheet row for one product: up to four
// expiration tiers plus optional flat ding/damaged prices. Unique per
// (buyer, product); writes are upserts.
type BuyerOffer struct {
	ID                 string      `db:"id" json:"id"`
	BuyerID            string      `db:"buyer_id" json:"buyerId"`
	ProductID          string      `db:"product_id" json:"productId"`
	DingReductionPrice *float64    `db:"ding_reduction_price" json:"dingReductionPrice"`
	DamagedPrice       *float64    `db:"damaged_price" json:"damagedPrice"`
	UpdatedAt          string      `db:"updated_at" json:"updatedAt"`
	Tiers              []OfferTier `db:"-" json:"tiers"`
}

// OfferTier: a nil Price means "no offer at this tier", never zero.
type OfferTier struct {
	OfferID   string   `db:"offer_id" json:"-"`
	TierIndex int      `db:"tier_index" json:"tierIndex"`
	Label     string   `db:"label" json:"label"`
	Price     *float64 `db:"price" json:"price"`
}
