package postgres

import (
	"time"

	"github.com/avenratt/league-portal/internal/domain/player"
)

type playerTableModel struct {
	ID                 string     `db:"id"`
	UserID             string     `db:"user_id"`
	Name               string     `db:"name"`
	Position           string     `db:"position"`
	Status             string     `db:"status"`
	DraftSeason        *int       `db:"draft_season"`
	CurrentLeague      *string    `db:"current_league"`
	TeamID             string     `db:"team_id"`
	UsedRedistribution int        `db:"used_redistribution"`
	PositionChanged    bool       `db:"position_changed"`
	RetiredAt          *time.Time `db:"retired_at"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
}

func (m playerTableModel) toDomain() player.Player {
	p := player.Player{
		ID:                 m.ID,
		UserID:             m.UserID,
		Name:               m.Name,
		Position:           player.Position(m.Position),
		Status:             player.Status(m.Status),
		DraftSeason:        m.DraftSeason,
		TeamID:             m.TeamID,
		UsedRedistribution: m.UsedRedistribution,
		PositionChanged:    m.PositionChanged,
		RetiredAt:          m.RetiredAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
	if m.CurrentLeague != nil {
		league := player.League(*m.CurrentLeague)
		p.CurrentLeague = &league
	}
	return p
}

func playerToModel(p player.Player) playerTableModel {
	m := playerTableModel{
		ID:                 p.ID,
		UserID:             p.UserID,
		Name:               p.Name,
		Position:           string(p.Position),
		Status:             string(p.Status),
		DraftSeason:        p.DraftSeason,
		TeamID:             p.TeamID,
		UsedRedistribution: p.UsedRedistribution,
		PositionChanged:    p.PositionChanged,
		RetiredAt:          p.RetiredAt,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
	if p.CurrentLeague != nil {
		league := string(*p.CurrentLeague)
		m.CurrentLeague = &league
	}
	return m
}

var playerSelectColumns = []string{
	"id",
	"user_id",
	"name",
	"position",
	"status",
	"draft_season",
	"current_league",
	"team_id",
	"used_redistribution",
	"position_changed",
	"retired_at",
	"created_at",
	"updated_at",
}
