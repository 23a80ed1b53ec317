package season

import (
	"context"
	"time"
)

// Season is the league-wide clock. Number is strictly increasing; the
// row with the highest number is the current season.
type Season struct {
	Number    int       `json:"number" db:"number"`
	StartedAt time.Time `json:"startedAt" db:"started_at"`
}

type Repository interface {
	Current(ctx context.Context) (Season, error)
	Create(ctx context.Context, s Season) error
}
