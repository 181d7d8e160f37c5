package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/bnema/dockpop/internal/domain/entity"
	"github.com/bnema/dockpop/internal/domain/repository"
	"github.com/bnema/dockpop/internal/logging"
)

const (
	upsertHandoffSQL = `INSERT INTO handoff_payloads (key, payload, created_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, created_at = excluded.created_at`

	getHandoffSQL          = `SELECT key, payload, created_at FROM handoff_payloads WHERE key = ?`
	deleteHandoffSQL       = `DELETE FROM handoff_payloads WHERE key = ?`
	listHandoffSQL         = `SELECT key, payload, created_at FROM handoff_payloads ORDER BY created_at, key`
	deleteHandoffBeforeSQL = `DELETE FROM handoff_payloads WHERE created_at < ?`
)

type handoffRepo struct {
	db *sql.DB
}

// NewHandoffRepository creates a new SQLite-backed handoff repository.
func NewHandoffRepository(db *sql.DB) repository.HandoffRepository {
	return &handoffRepo{db: db}
}

func (r *handoffRepo) Save(ctx context.Context, payload *entity.HandoffPayload) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("key", payload.Key).Int("bytes", len(payload.Payload)).Msg("saving handoff payload")

	createdAt := payload.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, upsertHandoffSQL, payload.Key, payload.Payload, createdAt.UnixNano())
	return err
}

func (r *handoffRepo) Get(ctx context.Context, key string) (*entity.HandoffPayload, error) {
	log := logging.FromContext(ctx)
	log.Debug().Str("key", key).Msg("loading handoff payload")

	row := r.db.QueryRowContext(ctx, getHandoffSQL, key)
	payload, err := scanHandoff(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (r *handoffRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, deleteHandoffSQL, key)
	return err
}

func (r *handoffRepo) List(ctx context.Context) ([]*entity.HandoffPayload, error) {
	rows, err := r.db.QueryContext(ctx, listHandoffSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.HandoffPayload
	for rows.Next() {
		payload, err := scanHandoff(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, payload)
	}
	return out, rows.Err()
}

func (r *handoffRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteHandoffBeforeSQL, cutoff.UnixNano())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHandoff(s scanner) (*entity.HandoffPayload, error) {
	var (
		key       string
		payload   []byte
		createdAt int64
	)
	if err := s.Scan(&key, &payload, &createdAt); err != nil {
		return nil, err
	}
	return &entity.HandoffPayload{
		Key:       key,
		Payload:   payload,
		CreatedAt: time.Unix(0, createdAt),
	}, nil
}
