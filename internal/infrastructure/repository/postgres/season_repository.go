package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/avenratt/league-portal/internal/domain/season"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) Current(ctx context.Context) (season.Season, error) {
	const query = `
SELECT number, started_at
FROM seasons
ORDER BY number DESC
LIMIT 1`

	var row struct {
		Number    int       `db:"number"`
		StartedAt time.Time `db:"started_at"`
	}
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		if isNotFound(err) {
			return season.Season{}, fmt.Errorf("no seasons recorded")
		}
		return season.Season{}, fmt.Errorf("get current season: %w", err)
	}
	return season.Season{Number: row.Number, StartedAt: row.StartedAt}, nil
}

func (r *SeasonRepository) Create(ctx context.Context, s season.Season) error {
	// The guard subquery keeps season numbers strictly increasing even
	// under concurrent advancement requests.
	const query = `
INSERT INTO seasons (number, started_at)
SELECT $1, $2
WHERE NOT EXISTS (
    SELECT 1 FROM seasons WHERE number >= $1
)`

	result, err := r.db.ExecContext(ctx, query, s.Number, s.StartedAt)
	if err != nil {
		return fmt.Errorf("insert season: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert season rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("season %d is not after the current season", s.Number)
	}
	return nil
}
