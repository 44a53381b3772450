package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prompt-fun/promptd/internal/domain"
)

// AchievementRepository stores the per-address achievement rows. Unlock
// state is evaluated in the service, not persisted.
type AchievementRepository struct {
	db dbtx
}

func NewAchievementRepository(pool *pgxpool.Pool) *AchievementRepository {
	return &AchievementRepository{db: pool}
}

func (r *AchievementRepository) ListByAddress(ctx context.Context, address string) ([]domain.Achievement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT title, description, icon, rarity
		 FROM achievements WHERE address = $1 ORDER BY position`,
		address,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	achievements := make([]domain.Achievement, 0, 6)
	for rows.Next() {
		var a domain.Achievement
		if err := rows.Scan(&a.Title, &a.Description, &a.Icon, &a.Rarity); err != nil {
			return nil, err
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

func (r *AchievementRepository) Seed(ctx context.Context, address string, achievements []domain.Achievement) error {
	for i, a := range achievements {
		_, err := r.db.Exec(ctx,
			`INSERT INTO achievements (address, position, title, description, icon, rarity)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (address, title) DO NOTHING`,
			address, i, a.Title, a.Description, a.Icon, a.Rarity,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// QuestRepository stores the per-address quest board.
type QuestRepository struct {
	db dbtx
}

func NewQuestRepository(pool *pgxpool.Pool) *QuestRepository {
	return &QuestRepository{db: pool}
}

func (r *QuestRepository) ListByAddress(ctx context.Context, address string) ([]domain.Quest, error) {
	rows, err := r.db.Query(ctx,
		`SELECT title, description, progress, total, reward, time_left
		 FROM quests WHERE address = $1 ORDER BY position`,
		address,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quests := make([]domain.Quest, 0, 4)
	for rows.Next() {
		var q domain.Quest
		if err := rows.Scan(&q.Title, &q.Description, &q.Progress, &q.Total, &q.Reward, &q.TimeLeft); err != nil {
			return nil, err
		}
		quests = append(quests, q)
	}
	return quests, rows.Err()
}

func (r *QuestRepository) Seed(ctx context.Context, address string, quests []domain.Quest) error {
	for i, q := range quests {
		_, err := r.db.Exec(ctx,
			`INSERT INTO quests (address, position, title, description, progress, total, reward, time_left)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (address, title) DO NOTHING`,
			address, i, q.Title, q.Description, q.Progress, q.Total, q.Reward, q.TimeLeft,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// ActivityRepository stores the per-address activity feed, newest first by
// insertion order.
type ActivityRepository struct {
	db dbtx
}

func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{db: pool}
}

func (r *ActivityRepository) ListByAddress(ctx context.Context, address string) ([]domain.Activity, error) {
	rows, err := r.db.Query(ctx,
		`SELECT action, token, amount, time_label, type
		 FROM activity WHERE address = $1 ORDER BY id`,
		address,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activity := make([]domain.Activity, 0, 5)
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.Action, &a.Token, &a.Amount, &a.Time, &a.Type); err != nil {
			return nil, err
		}
		activity = append(activity, a)
	}
	return activity, rows.Err()
}

func (r *ActivityRepository) Seed(ctx context.Context, address string, activity []domain.Activity) error {
	for _, a := range activity {
		if err := r.Append(ctx, address, a); err != nil {
			return err
		}
	}
	return nil
}

func (r *ActivityRepository) Append(ctx context.Context, address string, a domain.Activity) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO activity (address, action, token, amount, time_label, type)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		address, a.Action, a.Token, a.Amount, a.Time, a.Type,
	)
	return err
}
