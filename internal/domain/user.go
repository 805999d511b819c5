package domain

type User struct {
	ID    string `db:"id" json:"id"`
	Email string `db:"email" json:"email"`
	Name  string `db:"name" json:"name"`
	Hash  string `db:"password_hash" json:"-"`
	Role  string `db:"role" json:"role"` // USER | ADMIN
}

// UserSettings holds per-user preferences. TargetMarginPercent drives the
// purchase-price recommendations (default 20, UI range 5-50).
type UserSettings struct {
	UserID              string  `db:"user_id" json:"userId"`
	TargetMarginPercent float64 `db:"target_margin_percent" json:"targetMarginPercent"`
}
