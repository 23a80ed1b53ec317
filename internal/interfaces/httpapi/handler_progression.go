package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/avenratt/league-portal/internal/domain/attributes"
	"github.com/avenratt/league-portal/internal/domain/player"
	"github.com/avenratt/league-portal/internal/usecase"
)

const (
	changeTypeUpdate       = "update"
	changeTypeRegression   = "regression"
	changeTypeRedistribute = "redistribute"

	retirementActionRetire   = "retire"
	retirementActionUnretire = "unretire"
)

type attributeChangeItem struct {
	Attribute string `json:"attribute" validate:"required"`
	From      int    `json:"from"`
	To        int    `json:"to"`
}

type attributeBatchRequest struct {
	Type    string                `json:"type" validate:"required,oneof=update regression redistribute"`
	Changes []attributeChangeItem `json:"changes" validate:"required,min=1,dive"`
}

// SubmitAttributeChanges is the one write endpoint for rating moves.
// The type field selects which progression rules apply; all three paths
// share the change list shape.
func (h *Handler) SubmitAttributeChanges(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitAttributeChanges")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	playerID := strings.TrimSpace(r.PathValue("playerID"))

	var req attributeBatchRequest
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

	changes := make([]usecase.AttributeChangeInput, 0, len(req.Changes))
	for _, c := range req.Changes {
		changes = append(changes, usecase.AttributeChangeInput{
			Attribute: c.Attribute,
			From:      c.From,
			To:        c.To,
		})
	}
	input := usecase.AttributeBatchInput{
		Principal: principal,
		PlayerID:  playerID,
		Changes:   changes,
	}

	var (
		sheet attributes.Set
		err   error
	)
	switch req.Type {
	case changeTypeUpdate:
		sheet, err = h.progressionService.Update(ctx, input)
	case changeTypeRegression:
		sheet, err = h.progressionService.Regression(ctx, input)
	case changeTypeRedistribute:
		sheet, err = h.progressionService.Redistribute(ctx, input)
	default:
		writeError(ctx, w, fmt.Errorf("%w: unknown change type: %s", usecase.ErrInvalidInput, req.Type))
		return
	}
	if err != nil {
		h.logger.WarnContext(ctx, "attribute change failed",
			"player_id", playerID,
			"type", req.Type,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sheetToDTO(sheet))
}

type retirementRequest struct {
	Action string `json:"action" validate:"required,oneof=retire unretire"`
}

func (h *Handler) SubmitRetirement(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitRetirement")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	playerID := strings.TrimSpace(r.PathValue("playerID"))

	var req retirementRequest
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

	input := usecase.RetirementInput{Principal: principal, PlayerID: playerID}

	var (
		updated player.Player
		err     error
	)
	switch req.Action {
	case retirementActionRetire:
		updated, err = h.progressionService.Retire(ctx, input)
	case retirementActionUnretire:
		updated, err = h.progressionService.Unretire(ctx, input)
	default:
		writeError(ctx, w, fmt.Errorf("%w: unknown retirement action: %s", usecase.ErrInvalidInput, req.Action))
		return
	}
	if err != nil {
		h.logger.WarnContext(ctx, "retirement action failed",
			"player_id", playerID,
			"action", req.Action,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(updated))
}
