package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prompt-fun/promptd/internal/domain"
	"github.com/prompt-fun/promptd/internal/pagination"
)

type TokenRepository struct {
	db dbtx
}

func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{db: pool}
}

func (r *TokenRepository) Upsert(ctx context.Context, t *domain.LaunchedToken) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO launched_tokens (symbol, name, tx_hash, creator, supply, base_price, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (symbol) DO UPDATE
		 SET name = EXCLUDED.name,
		     tx_hash = EXCLUDED.tx_hash,
		     creator = EXCLUDED.creator,
		     supply = EXCLUDED.supply,
		     base_price = EXCLUDED.base_price,
		     updated_at = EXCLUDED.updated_at`,
		t.Symbol, t.Name, nullableString(t.TxHash), nullableString(t.Creator),
		t.Supply, t.BasePrice, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

func (r *TokenRepository) GetBySymbol(ctx context.Context, symbol string) (*domain.LaunchedToken, error) {
	var t domain.LaunchedToken
	var txHash, creator *string
	err := r.db.QueryRow(ctx,
		`SELECT symbol, name, tx_hash, creator, supply, base_price, created_at, updated_at
		 FROM launched_tokens WHERE symbol = $1`,
		symbol,
	).Scan(&t.Symbol, &t.Name, &txHash, &creator, &t.Supply, &t.BasePrice, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, err
	}
	if txHash != nil {
		t.TxHash = *txHash
	}
	if creator != nil {
		t.Creator = *creator
	}
	return &t, nil
}

func (r *TokenRepository) ListWithCursor(ctx context.Context, cursor *pagination.Cursor, limit int) ([]*domain.LaunchedToken, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows pgx.Rows
	var err error

	if cursor != nil {
		rows, err = r.db.Query(ctx,
			`SELECT symbol, name, tx_hash, creator, supply, base_price, created_at, updated_at
			 FROM launched_tokens
			 WHERE (created_at, symbol) < ($1, $2)
			 ORDER BY created_at DESC, symbol DESC
			 LIMIT $3`,
			cursor.Timestamp, cursor.LastID, limit,
		)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT symbol, name, tx_hash, creator, supply, base_price, created_at, updated_at
			 FROM launched_tokens
			 ORDER BY created_at DESC, symbol DESC
			 LIMIT $1`,
			limit,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tokens := make([]*domain.LaunchedToken, 0, limit)
	for rows.Next() {
		var t domain.LaunchedToken
		var txHash, creator *string
		if err := rows.Scan(&t.Symbol, &t.Name, &txHash, &creator, &t.Supply, &t.BasePrice, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		if txHash != nil {
			t.TxHash = *txHash
		}
		if creator != nil {
			t.Creator = *creator
		}
		tokens = append(tokens, &t)
	}
	return tokens, rows.Err()
}
