package repository

import (
	"context"
	"database/sql"
	"time"
)

// TokenRepo persists/validates refresh tokens (single 'token_hash' column).
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// StoreRefresh inserts a refresh token hash row.
func (r *TokenRepo) StoreRefresh(ctx context.Context, staffID uint64, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO refresh_tokens (staff_id, token_hash, expires_at) VALUES (?,?,?)",
		staffID, tokenHash, exp)
	return err
}

// ValidateRefresh returns the staff ID if a non-revoked, non-expired token
// exists for the given hash.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	var (
		staffID   uint64
		expiresAt time.Time
		revokedAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT staff_id, expires_at, revoked_at FROM refresh_tokens WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&staffID, &expiresAt, &revokedAt)
	if err != nil {
		return 0, err
	}
	if revokedAt.Valid {
		return 0, sql.ErrNoRows
	}
	if time.Now().UTC().After(expiresAt) {
		return 0, sql.ErrNoRows
	}
	return staffID, nil
}

// RevokeByHash marks a token as revoked.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=NOW() WHERE token_hash=? AND revoked_at IS NULL",
		tokenHash)
	return err
}

// RevokeAllForStaff revokes every active token of one staff member.
func (r *TokenRepo) RevokeAllForStaff(ctx context.Context, staffID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=NOW() WHERE staff_id=? AND revoked_at IS NULL",
		staffID)
	return err
}
