package postgres

import (
	"github.com/avenratt/league-portal/internal/domain/attributes"
)

type skaterTableModel struct {
	PlayerID         string `db:"player_id"`
	Screening        int    `db:"screening"`
	GettingOpen      int    `db:"getting_open"`
	Passing          int    `db:"passing"`
	Puckhandling     int    `db:"puckhandling"`
	ShootingAccuracy int    `db:"shooting_accuracy"`
	ShootingRange    int    `db:"shooting_range"`
	OffensiveRead    int    `db:"offensive_read"`
	Checking         int    `db:"checking"`
	Hitting          int    `db:"hitting"`
	Positioning      int    `db:"positioning"`
	Stickchecking    int    `db:"stickchecking"`
	ShotBlocking     int    `db:"shot_blocking"`
	Faceoffs         int    `db:"faceoffs"`
	DefensiveRead    int    `db:"defensive_read"`
	Acceleration     int    `db:"acceleration"`
	Agility          int    `db:"agility"`
	Balance          int    `db:"balance"`
	Speed            int    `db:"speed"`
	Stamina          int    `db:"stamina"`
	Strength         int    `db:"strength"`
	Determination    int    `db:"determination"`
	TeamPlayer       int    `db:"team_player"`
	Leadership       int    `db:"leadership"`
	Professionalism  int    `db:"professionalism"`
}

func (m skaterTableModel) toDomain() attributes.Skater {
	return attributes.Skater{
		Screening:        m.Screening,
		GettingOpen:      m.GettingOpen,
		Passing:          m.Passing,
		Puckhandling:     m.Puckhandling,
		ShootingAccuracy: m.ShootingAccuracy,
		ShootingRange:    m.ShootingRange,
		OffensiveRead:    m.OffensiveRead,
		Checking:         m.Checking,
		Hitting:          m.Hitting,
		Positioning:      m.Positioning,
		Stickchecking:    m.Stickchecking,
		ShotBlocking:     m.ShotBlocking,
		Faceoffs:         m.Faceoffs,
		DefensiveRead:    m.DefensiveRead,
		Acceleration:     m.Acceleration,
		Agility:          m.Agility,
		Balance:          m.Balance,
		Speed:            m.Speed,
		Stamina:          m.Stamina,
		Strength:         m.Strength,
		Determination:    m.Determination,
		TeamPlayer:       m.TeamPlayer,
		Leadership:       m.Leadership,
		Professionalism:  m.Professionalism,
	}
}

func skaterToModel(playerID string, s attributes.Skater) skaterTableModel {
	return skaterTableModel{
		PlayerID:         playerID,
		Screening:        s.Screening,
		GettingOpen:      s.GettingOpen,
		Passing:          s.Passing,
		Puckhandling:     s.Puckhandling,
		ShootingAccuracy: s.ShootingAccuracy,
		ShootingRange:    s.ShootingRange,
		OffensiveRead:    s.OffensiveRead,
		Checking:         s.Checking,
		Hitting:          s.Hitting,
		Positioning:      s.Positioning,
		Stickchecking:    s.Stickchecking,
		ShotBlocking:     s.ShotBlocking,
		Faceoffs:         s.Faceoffs,
		DefensiveRead:    s.DefensiveRead,
		Acceleration:     s.Acceleration,
		Agility:          s.Agility,
		Balance:          s.Balance,
		Speed:            s.Speed,
		Stamina:          s.Stamina,
		Strength:         s.Strength,
		Determination:    s.Determination,
		TeamPlayer:       s.TeamPlayer,
		Leadership:       s.Leadership,
		Professionalism:  s.Professionalism,
	}
}

type goalieTableModel struct {
	PlayerID        string `db:"player_id"`
	Blocker         int    `db:"blocker"`
	Glove           int    `db:"glove"`
	Passing         int    `db:"passing"`
	PokeCheck       int    `db:"poke_check"`
	Positioning     int    `db:"positioning"`
	Rebound         int    `db:"rebound"`
	Recovery        int    `db:"recovery"`
	Puckhandling    int    `db:"puckhandling"`
	LowShots        int    `db:"low_shots"`
	Reflexes        int    `db:"reflexes"`
	Skating         int    `db:"skating"`
	MentalToughness int    `db:"mental_toughness"`
	Aggression      int    `db:"aggression"`
	Determination   int    `db:"determination"`
	TeamPlayer      int    `db:"team_player"`
	Leadership      int    `db:"leadership"`
	Professionalism int    `db:"professionalism"`
}

func (m goalieTableModel) toDomain() attributes.Goalie {
	return attributes.Goalie{
		Blocker:         m.Blocker,
		Glove:           m.Glove,
		Passing:         m.Passing,
		PokeCheck:       m.PokeCheck,
		Positioning:     m.Positioning,
		Rebound:         m.Rebound,
		Recovery:        m.Recovery,
		Puckhandling:    m.Puckhandling,
		LowShots:        m.LowShots,
		Reflexes:        m.Reflexes,
		Skating:         m.Skating,
		MentalToughness: m.MentalToughness,
		Aggression:      m.Aggression,
		Determination:   m.Determination,
		TeamPlayer:      m.TeamPlayer,
		Leadership:      m.Leadership,
		Professionalism: m.Professionalism,
	}
}

func goalieToModel(playerID string, g attributes.Goalie) goalieTableModel {
	return goalieTableModel{
		PlayerID:        playerID,
		Blocker:         g.Blocker,
		Glove:           g.Glove,
		Passing:         g.Passing,
		PokeCheck:       g.PokeCheck,
		Positioning:     g.Positioning,
		Rebound:         g.Rebound,
		Recovery:        g.Recovery,
		Puckhandling:    g.Puckhandling,
		LowShots:        g.LowShots,
		Reflexes:        g.Reflexes,
		Skating:         g.Skating,
		MentalToughness: g.MentalToughness,
		Aggression:      g.Aggression,
		Determination:   g.Determination,
		TeamPlayer:      g.TeamPlayer,
		Leadership:      g.Leadership,
		Professionalism: g.Professionalism,
	}
}
