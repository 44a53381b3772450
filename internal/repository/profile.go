package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prompt-fun/promptd/internal/domain"
)

type ProfileRepository struct {
	db dbtx
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: pool}
}

func (r *ProfileRepository) GetByAddress(ctx context.Context, address string) (*domain.UserProfile, error) {
	var p domain.UserProfile
	err := r.db.QueryRow(ctx,
		`SELECT address, short_address, user_rank, badge, join_date, tokens_created, tokens_traded,
		        win_rate, streak, achievements, total_trades, total_volume, hold_days, largest_trade,
		        created_at, updated_at
		 FROM users WHERE address = $1`,
		address,
	).Scan(
		&p.Address, &p.ShortAddress, &p.Rank, &p.Badge, &p.JoinDate, &p.TokensCreated, &p.TokensTraded,
		&p.WinRate, &p.Streak, &p.Achievements, &p.TotalTrades, &p.TotalVolume, &p.HoldDays, &p.LargestTrade,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.UserProfile) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users
			(address, short_address, user_rank, badge, join_date, tokens_created, tokens_traded,
			 win_rate, streak, achievements, total_trades, total_volume, hold_days, largest_trade,
			 created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 ON CONFLICT (address) DO NOTHING`,
		p.Address, p.ShortAddress, p.Rank, p.Badge, p.JoinDate, p.TokensCreated, p.TokensTraded,
		p.WinRate, p.Streak, p.Achievements, p.TotalTrades, p.TotalVolume, p.HoldDays, p.LargestTrade,
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}
