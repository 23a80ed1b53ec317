package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/avenratt/league-portal/internal/domain/attributes"
	"github.com/avenratt/league-portal/internal/domain/bank"
	"github.com/avenratt/league-portal/internal/domain/events"
	"github.com/avenratt/league-portal/internal/domain/player"
	"github.com/avenratt/league-portal/internal/domain/progression"
	"github.com/avenratt/league-portal/internal/domain/season"
	"github.com/avenratt/league-portal/internal/domain/tpe"
)

// Store is the in-memory database. All entity repositories are views
// over the same store so multi-entity writes stay atomic under one lock,
// mirroring the transactional store backed by Postgres.
type Store struct {
	mu           sync.RWMutex
	players      map[string]player.Player
	sheets       map[string]attributes.Set
	ledger       []tpe.LedgerEntry
	events       []events.UpdateEvent
	transactions []bank.Transaction
	seasons      []season.Season
	nextLedgerID int64
	nextEventID  int64
}

func NewStore() *Store {
	return &Store{
		players:      make(map[string]player.Player),
		sheets:       make(map[string]attributes.Set),
		nextLedgerID: 1,
		nextEventID:  1,
	}
}

var _ progression.Store = (*Store)(nil)

func (s *Store) CreatePlayer(_ context.Context, rec progression.CreatePlayerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.players[rec.Player.ID]; exists {
		return fmt.Errorf("player %s already exists", rec.Player.ID)
	}

	s.players[rec.Player.ID] = clonePlayer(rec.Player)
	s.sheets[rec.Player.ID] = cloneSet(rec.Attributes)
	s.appendLedgerLocked(rec.Ledger)
	if rec.SeedBank != nil {
		s.transactions = append(s.transactions, *rec.SeedBank)
	}
	s.appendEventLocked(rec.Event)
	return nil
}

func (s *Store) ApplyChanges(_ context.Context, rec progression.ApplyChangesRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.players[rec.PlayerID]
	if !ok {
		return fmt.Errorf("player %s not found", rec.PlayerID)
	}

	s.sheets[rec.PlayerID] = cloneSet(rec.Attributes)
	if rec.RedistributionDelta != 0 {
		p.UsedRedistribution += rec.RedistributionDelta
		s.players[rec.PlayerID] = p
	}
	if rec.BankDebit != nil {
		s.transactions = append(s.transactions, *rec.BankDebit)
	}
	for _, event := range rec.Events {
		s.appendEventLocked(event)
	}
	return nil
}

func (s *Store) SetStatus(_ context.Context, rec progression.StatusChangeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.players[rec.PlayerID]
	if !ok {
		return fmt.Errorf("player %s not found", rec.PlayerID)
	}
	if p.Status != rec.FromStatus {
		return fmt.Errorf("player %s status is %s, expected %s", rec.PlayerID, p.Status, rec.FromStatus)
	}

	p.Status = rec.ToStatus
	p.RetiredAt = rec.RetiredAt
	p.UpdatedAt = rec.Event.CreatedAt
	s.players[rec.PlayerID] = p

	if rec.Ledger != nil {
		s.appendLedgerLocked(*rec.Ledger)
	}
	s.appendEventLocked(rec.Event)
	return nil
}

func (s *Store) AppendGrants(_ context.Context, rec progression.GrantBatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range rec.Entries {
		if _, ok := s.players[entry.PlayerID]; !ok {
			return fmt.Errorf("player %s not found", entry.PlayerID)
		}
	}
	for _, entry := range rec.Entries {
		s.appendLedgerLocked(entry)
	}
	s.transactions = append(s.transactions, rec.BankCredits...)
	return nil
}

func (s *Store) AppendEvents(_ context.Context, evs []events.UpdateEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, event := range evs {
		s.appendEventLocked(event)
	}
	return nil
}

func (s *Store) appendLedgerLocked(entry tpe.LedgerEntry) {
	entry.ID = s.nextLedgerID
	s.nextLedgerID++
	s.ledger = append(s.ledger, entry)
}

func (s *Store) appendEventLocked(event events.UpdateEvent) {
	event.ID = s.nextEventID
	s.nextEventID++
	s.events = append(s.events, event)
}

func clonePlayer(p player.Player) player.Player {
	copied := p
	if p.DraftSeason != nil {
		v := *p.DraftSeason
		copied.DraftSeason = &v
	}
	if p.CurrentLeague != nil {
		v := *p.CurrentLeague
		copied.CurrentLeague = &v
	}
	if p.RetiredAt != nil {
		v := *p.RetiredAt
		copied.RetiredAt = &v
	}
	return copied
}

func cloneSet(set attributes.Set) attributes.Set {
	copied := attributes.Set{}
	if set.Skater != nil {
		v := *set.Skater
		copied.Skater = &v
	}
	if set.Goalie != nil {
		v := *set.Goalie
		copied.Goalie = &v
	}
	return copied
}
