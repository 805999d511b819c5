package repos

import (
	"strings"

	"stripledger/internal/domain"

	"github.com/jmoiron/sqlx"
)

type BuyerRepo struct{ db *sqlx.DB }

func NewBuyerRepo(db *sqlx.DB) *BuyerRepo { return &BuyerRepo{db: db} }

const buyerCols = `
  id, name, contact_name, phone, email, website, is_preferred, notes,
  active, created_at, COALESCE(updated_at,'') AS updated_at`

func (r *BuyerRepo) List(q string, limit, offset int) ([]domain.Buyer, error) {
	where := `active = 1`
	args := []any{}
	if q != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(contact_name) LIKE ?)`
		pat := "%" + strings.ToLower(q) + "%"
		args = append(args, pat, pat)
	}
	args = append(args, limit, offset)

	var out []domain.Buyer
	err := r.db.Select(&out, `
	  SELECT `+buyerCols+`
	  FROM buyers
	  WHERE `+where+`
	  ORDER BY is_preferred DESC, LOWER(name)
	  LIMIT ? OFFSET ?`, args...)
	return out, err
}

func (r *BuyerRepo) Get(id string) (domain.Buyer, error) {
	var b domain.Buyer
	err := r.db.Get(&b, `SELECT `+buyerCols+` FROM buyers WHERE id = ?`, id)
	return b, err
}

func (r *BuyerRepo) Create(b domain.Buyer) error {
	_, err := r.db.Exec(`
	  INSERT INTO buyers(id, name, contact_name, phone, email, website, is_preferred, notes)
	  VALUES(?,?,?,?,?,?,?,?)
	`, b.ID, b.Name, b.ContactName, b.Phone, b.Email, b.Website, b.IsPreferred, b.Notes)
	return err
}

func (r *BuyerRepo) Update(b domain.Buyer) error {
	res, err := r.db.Exec(`
	  UPDATE buyers SET
	    name=?, contact_name=?, phone=?, email=?, website=?, is_preferred=?, notes=?,
	    updated_at=CURRENT_TIMESTAMP
	  WHERE id=? AND active=1
	`, b.Name, b.ContactName, b.Phone, b.Email, b.Website, b.IsPreferred, b.Notes, b.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *BuyerRepo) Deactivate(id string) error {
	res, err := r.db.Exec(`UPDATE buyers SET active=0, updated_at=CURRENT_TIMESTAMP WHERE id=? AND active=1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
