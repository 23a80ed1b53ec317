package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/avenratt/league-portal/internal/domain/player"
	"github.com/avenratt/league-portal/internal/usecase"
)

type createPlayerRequest struct {
	Name       string         `json:"name" validate:"required,max=100"`
	Position   string         `json:"position" validate:"required"`
	Attributes map[string]int `json:"attributes"`
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createPlayerRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.CreatePlayerInput{
		Principal: principal,
		Name:      req.Name,
		Position:  req.Position,
	}
	if len(req.Attributes) > 0 {
		sheet, err := sheetFromDTO(player.Position(strings.TrimSpace(req.Position)), req.Attributes)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
			return
		}
		input.Attributes = &sheet
	}

	created, err := h.progressionService.Create(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(created))
}

func (h *Handler) GetPlayerProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerProfile")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	profile, err := h.readService.Profile(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player profile failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileDTO{
		Player:     playerToDTO(profile.Player),
		Attributes: sheetToDTO(profile.Attributes),
		TPE:        profile.TPE,
	})
}

func (h *Handler) GetPlayerTPE(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerTPE")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	summary, err := h.readService.TPE(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player tpe failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) ListPlayerLedger(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerLedger")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	entries, err := h.readService.Ledger(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "list player ledger failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]ledgerEntryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, ledgerEntryToDTO(e))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListPlayerEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerEvents")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	items, err := h.readService.Events(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "list player events failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListPlayerBankTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerBankTransactions")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	items, err := h.readService.Bank(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "list player bank transactions failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetCurrentSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentSeason")
	defer span.End()

	current, err := h.seasonService.Current(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get current season failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, current)
}
