package settlement

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fkhayef/splitledger/internal/group"
	"github.com/fkhayef/splitledger/pkg/middleware"
	"github.com/fkhayef/splitledger/pkg/response"
)

// Handler handles HTTP requests for settlement operations
type Handler struct {
	service *Service
}

// NewHandler creates a new settlement handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for individual settlement endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{id}", h.GetByID)
	r.Post("/{id}/pay", h.MarkAsPaid)
	r.Post("/{id}/confirm", h.Confirm)
	r.Post("/{id}/reject", h.Reject)

	return r
}

// RegisterGroupRoutes adds the group-scoped endpoints to a router carrying
// the {groupId} parameter.
func (h *Handler) RegisterGroupRoutes(r chi.Router) {
	r.Post("/settle", h.Settle)
	r.Get("/settle/preview", h.Preview)
	r.Get("/settlements", h.ListByGroup)
}

// Settle handles POST /groups/{groupId}/settle
// @Summary      Settle a group
// @Description  Records the minimum set of payments that zeroes every balance and clears the group
// @Tags         settlements
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      201 {object} response.APIResponse{data=BatchResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      422 {object} response.APIResponse
// @Router       /groups/{groupId}/settle [post]
func (h *Handler) Settle(w http.ResponseWriter, r *http.Request) {
	groupID, ok := group.GroupID(r)
	if !ok {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	batch, err := h.service.SettleGroup(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, ErrUnbalanced) {
			response.UnprocessableEntity(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to settle group")
		return
	}

	response.JSON(w, http.StatusCreated, batch.ToResponse())
}

// Preview handles GET /groups/{groupId}/settle/preview
// @Summary      Preview a group settlement
// @Description  Lists the payments a settlement would record, without writing anything
// @Tags         settlements
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]PaymentResponse}
// @Failure      422 {object} response.APIResponse
// @Router       /groups/{groupId}/settle/preview [get]
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	groupID, ok := group.GroupID(r)
	if !ok {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	txns, err := h.service.Preview(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, ErrUnbalanced) {
			response.UnprocessableEntity(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to preview settlement")
		return
	}

	payments := NewPaymentResponses(txns)
	response.JSONWithMeta(w, http.StatusOK, payments, &response.Meta{Count: len(payments)})
}

// ListByGroup handles GET /groups/{groupId}/settlements
// @Summary      List a group's settlements
// @Tags         settlements
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]SettlementResponse}
// @Router       /groups/{groupId}/settlements [get]
func (h *Handler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	groupID, ok := group.GroupID(r)
	if !ok {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	settlements, err := h.service.ListByGroup(r.Context(), groupID)
	if err != nil {
		response.InternalError(w, "Failed to list settlements")
		return
	}

	resp := make([]*SettlementResponse, len(settlements))
	for i, s := range settlements {
		resp[i] = s.ToResponse()
	}
	response.JSONWithMeta(w, http.StatusOK, resp, &response.Meta{Count: len(resp)})
}

// GetByID handles GET /settlements/{id}
// @Summary      Get a settlement
// @Tags         settlements
// @Produce      json
// @Param        id path string true "Settlement ID"
// @Success      200 {object} response.APIResponse{data=SettlementResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /settlements/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid settlement ID")
		return
	}

	st, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrSettlementNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get settlement")
		return
	}

	response.JSON(w, http.StatusOK, st.ToResponse())
}

// MarkAsPaid handles POST /settlements/{id}/pay
// @Summary      Mark a settlement as paid
// @Tags         settlements
// @Produce      json
// @Param        id path string true "Settlement ID"
// @Success      200 {object} response.APIResponse{data=SettlementResponse}
// @Router       /settlements/{id}/pay [post]
func (h *Handler) MarkAsPaid(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, h.service.MarkAsPaid)
}

// Confirm handles POST /settlements/{id}/confirm
// @Summary      Confirm a settlement was received
// @Tags         settlements
// @Produce      json
// @Param        id path string true "Settlement ID"
// @Success      200 {object} response.APIResponse{data=SettlementResponse}
// @Router       /settlements/{id}/confirm [post]
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, h.service.Confirm)
}

// Reject handles POST /settlements/{id}/reject
// @Summary      Reject a settlement
// @Description  The payment is put back into the group's balances
// @Tags         settlements
// @Produce      json
// @Param        id path string true "Settlement ID"
// @Success      200 {object} response.APIResponse{data=SettlementResponse}
// @Router       /settlements/{id}/reject [post]
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, h.service.Reject)
}

func (h *Handler) changeStatus(w http.ResponseWriter, r *http.Request, change func(ctx context.Context, id uuid.UUID, userID int64) (*Settlement, error)) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "User ID required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid settlement ID")
		return
	}

	st, err := change(r.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSettlementNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotDebtor), errors.Is(err, ErrNotCreditor):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrInvalidStatusChange):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to update settlement")
		}
		return
	}

	response.JSON(w, http.StatusOK, st.ToResponse())
}
