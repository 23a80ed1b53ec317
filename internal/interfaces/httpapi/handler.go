package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/avenratt/league-portal/internal/domain/attributes"
	"github.com/avenratt/league-portal/internal/domain/player"
	"github.com/avenratt/league-portal/internal/domain/tpe"
	"github.com/avenratt/league-portal/internal/usecase"
)

type Handler struct {
	progressionService *usecase.ProgressionService
	readService        *usecase.PlayerReadService
	grantsService      *usecase.GrantsService
	seasonService      *usecase.SeasonService
	logger             *slog.Logger
	validator          *validator.Validate
}

func NewHandler(
	progressionService *usecase.ProgressionService,
	readService *usecase.PlayerReadService,
	grantsService *usecase.GrantsService,
	seasonService *usecase.SeasonService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		progressionService: progressionService,
		readService:        readService,
		grantsService:      grantsService,
		seasonService:      seasonService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type playerDTO struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"userId"`
	Name               string     `json:"name"`
	Position           string     `json:"position"`
	Status             string     `json:"status"`
	DraftSeason        *int       `json:"draftSeason,omitempty"`
	CurrentLeague      *string    `json:"currentLeague,omitempty"`
	TeamID             string     `json:"teamId,omitempty"`
	UsedRedistribution int        `json:"usedRedistribution"`
	PositionChanged    bool       `json:"positionChanged"`
	RetiredAt          *time.Time `json:"retiredAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

func playerToDTO(p player.Player) playerDTO {
	dto := playerDTO{
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
		dto.CurrentLeague = &league
	}
	return dto
}

// sheetToDTO flattens either attribute shape into a name-keyed map so
// clients never branch on position to read ratings.
func sheetToDTO(set attributes.Set) map[string]int {
	if set.Goalie != nil {
		out := make(map[string]int, len(attributes.GoalieAttributes))
		for _, attr := range attributes.GoalieAttributes {
			value, _ := set.Goalie.Value(attr)
			out[string(attr)] = value
		}
		return out
	}
	if set.Skater != nil {
		out := make(map[string]int, len(attributes.SkaterAttributes))
		for _, attr := range attributes.SkaterAttributes {
			value, _ := set.Skater.Value(attr)
			out[string(attr)] = value
		}
		return out
	}
	return map[string]int{}
}

// sheetFromDTO builds a creation sheet from wire ratings. Values start
// from the position's defaults so partial payloads stay valid.
func sheetFromDTO(position player.Position, ratings map[string]int) (attributes.Set, error) {
	set := attributes.DefaultFor(position)
	for name, value := range ratings {
		if position == player.PositionGoalie {
			attr, err := attributes.ParseGoalieAttribute(name)
			if err != nil {
				return attributes.Set{}, err
			}
			if err := set.Goalie.Set(attr, value); err != nil {
				return attributes.Set{}, err
			}
			continue
		}
		attr, err := attributes.ParseSkaterAttribute(name)
		if err != nil {
			return attributes.Set{}, err
		}
		if err := set.Skater.Set(attr, value); err != nil {
			return attributes.Set{}, err
		}
	}
	return set, nil
}

type ledgerEntryDTO struct {
	ID                int64     `json:"id"`
	PlayerID          string    `json:"playerId"`
	Delta             int       `json:"delta"`
	Category          string    `json:"category"`
	Description       string    `json:"description"`
	SubmittedBy       string    `json:"submittedBy"`
	GroupID           string    `json:"groupId,omitempty"`
	BankTransactionID string    `json:"bankTransactionId,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

func ledgerEntryToDTO(e tpe.LedgerEntry) ledgerEntryDTO {
	return ledgerEntryDTO{
		ID:                e.ID,
		PlayerID:          e.PlayerID,
		Delta:             e.Delta,
		Category:          string(e.Category),
		Description:       e.Description,
		SubmittedBy:       e.SubmittedBy,
		GroupID:           e.GroupID,
		BankTransactionID: e.BankTransactionID,
		CreatedAt:         e.CreatedAt,
	}
}

type profileDTO struct {
	Player     playerDTO          `json:"player"`
	Attributes map[string]int     `json:"attributes"`
	TPE        usecase.TPESummary `json:"tpe"`
}
