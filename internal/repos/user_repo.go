package repos

import (
	"stripledger/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT id,email,name,password_hash,role FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT id,email,name,password_hash,role FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Settings(userID string) (domain.UserSettings, error) {
	var s domain.UserSettings
	err := r.DB.Get(&s, `SELECT user_id, target_margin_percent FROM user_settings WHERE user_id=?`, userID)
	return s, err
}

func (r *UserRepo) SaveSettings(userID string, targetMarginPercent float64) error {
	_, err := r.DB.Exec(`
		INSERT INTO user_settings(user_id, target_margin_percent, updated_at)
		VALUES(?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET
		  target_margin_percent = excluded.target_margin_percent,
		  updated_at = CURRENT_TIMESTAMP
	`, userID, targetMarginPercent)
	return err
}
