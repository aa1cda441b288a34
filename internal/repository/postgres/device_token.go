package postgres

import (
	"context"
	"database/sql"

	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/repository"
)

type deviceTokenRepository struct {
	db *sql.DB
}

func NewDeviceTokenRepository(db *sql.DB) repository.DeviceTokenRepository {
	return &deviceTokenRepository{db: db}
}

// Upsert re-binds the token to the calling user when a device changes hands.
func (r *deviceTokenRepository) Upsert(ctx context.Context, t *domain.DeviceToken) error {
	query := `INSERT INTO device_tokens (user_id, token, platform)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (token) DO UPDATE SET user_id = EXCLUDED.user_id, platform = EXCLUDED.platform
	          RETURNING id`
	return r.db.QueryRowContext(ctx, query, t.UserID, t.Token, t.Platform).Scan(&t.ID)
}

func (r *deviceTokenRepository) ListByUser(ctx context.Context, userID int32) ([]domain.DeviceToken, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, user_id, token, platform FROM device_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []domain.DeviceToken
	for rows.Next() {
		var t domain.DeviceToken
		if err := rows.Scan(&t.ID, &t.UserID, &t.Token, &t.Platform); err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

func (r *deviceTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM device_tokens WHERE token = $1`, token)
	return err
}
