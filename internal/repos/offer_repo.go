package repos

import (
	"stripledger/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OfferRepo struct{ db *sqlx.DB }

func NewOfferRepo(db *sqlx.DB) *OfferRepo { return &OfferRepo{db: db} }

// OfferRow joins the buyer fields the recommendation engine needs.
type OfferRow struct {
	domain.BuyerOffer
	BuyerName   string `db:"buyer_name" json:"buyerName"`
	IsPreferred bool   `db:"is_preferred" json:"isPreferred"`
}

// Upsert writes one buyer's price sheet for one product. A second write for
// the same (buyer, product) pair updates the existing row; tiers are
// replaced wholesale.
func (r *OfferRepo) Upsert(o domain.BuyerOffer) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO buyer_offers(id, buyer_id, product_id, ding_reduction_price, damaged_price, updated_at)
	  VALUES(?,?,?,?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(buyer_id, product_id) DO UPDATE SET
	    ding_reduction_price = excluded.ding_reduction_price,
	    damaged_price = excluded.damaged_price,
	    updated_at = CURRENT_TIMESTAMP
	`, o.ID, o.BuyerID, o.ProductID, o.DingReductionPrice, o.DamagedPrice); err != nil {
		return err
	}

	// The conflict path keeps the original row id; fetch it for the tiers.
	var offerID string
	if err := tx.Get(&offerID, `SELECT id FROM buyer_offers WHERE buyer_id=? AND product_id=?`, o.BuyerID, o.ProductID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM offer_tiers WHERE offer_id = ?`, offerID); err != nil {
		return err
	}
	for _, t := range o.Tiers {
		if _, err := tx.Exec(`
		  INSERT INTO offer_tiers(offer_id, tier_index, label, price)
		  VALUES(?,?,?,?)
		`, offerID, t.TierIndex, t.Label, t.Price); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListByProduct returns every buyer's offer for a product with tiers
// attached, ordered preferred-first then by buyer name so downstream scans
// are deterministic.
func (r *OfferRepo) ListByProduct(productID string) ([]OfferRow, error) {
	var rows []OfferRow
	err := r.db.Select(&rows, `
	  SELECT o.id, o.buyer_id, o.product_id, o.ding_reduction_price, o.damaged_price,
	         COALESCE(o.updated_at,'') AS updated_at,
	         b.name AS buyer_name, b.is_preferred
	  FROM buyer_offers o
	  JOIN buyers b ON b.id = o.buyer_id
	  WHERE o.product_id = ? AND b.active = 1
	  ORDER BY b.is_preferred DESC, LOWER(b.name)`, productID)
	if err != nil {
		return nil, err
	}
	return r.attachTiers(rows)
}

func (r *OfferRepo) ListByBuyer(buyerID string) ([]OfferRow, error) {
	var rows []OfferRow
	err := r.db.Select(&rows, `
	  SELECT o.id, o.buyer_id, o.product_id, o.ding_reduction_price, o.damaged_price,
	         COALESCE(o.updated_at,'') AS updated_at,
	         b.name AS buyer_name, b.is_preferred
	  FROM buyer_offers o
	  JOIN buyers b ON b.id = o.buyer_id
	  WHERE o.buyer_id = ?
	  ORDER BY o.product_id`, buyerID)
	if err != nil {
		return nil, err
	}
	return r.attachTiers(rows)
}

func (r *OfferRepo) attachTiers(rows []OfferRow) ([]OfferRow, error) {
	for i := range rows {
		var tiers []domain.OfferTier
		if err := r.db.Select(&tiers, `
		  SELECT offer_id, tier_index, label, price
		  FROM offer_tiers
		  WHERE offer_id = ?
		  ORDER BY tier_index`, rows[i].ID); err != nil {
			return nil, err
		}
		rows[i].Tiers = tiers
	}
	return rows, nil
}

func (r *OfferRepo) Delete(buyerID, productID string) error {
	res, err := r.db.Exec(`DELETE FROM buyer_offers WHERE buyer_id=? AND product_id=?`, buyerID, productID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// CountForPair backs the upsert test: there is never more than one offer
// row per (buyer, product).
func (r *OfferRepo) CountForPair(buyerID, productID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM buyer_offers WHERE buyer_id=? AND product_id=?`, buyerID, productID)
	return n, err
}
