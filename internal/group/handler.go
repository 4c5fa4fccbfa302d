package group

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/splitledger/pkg/response"
)

// Handler handles HTTP requests for group balance operations
type Handler struct {
	service *Service
}

// NewHandler creates a new group balance handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for group balance endpoints. It expects to be
// mounted below a route carrying the {groupId} parameter.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{userId}", h.GetByUser)

	return r
}

// GroupID parses the {groupId} URL parameter
func GroupID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// List handles GET /groups/{groupId}/balances
// @Summary      Get group balances
// @Description  Returns every member's net balance in the group
// @Tags         groups
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=GroupBalancesResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /groups/{groupId}/balances [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	groupID, ok := GroupID(r)
	if !ok {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	balances, err := h.service.Balances(r.Context(), groupID)
	if err != nil {
		response.InternalError(w, "Failed to get group balances")
		return
	}

	resp := NewGroupBalancesResponse(groupID, balances)
	response.JSONWithMeta(w, http.StatusOK, resp, &response.Meta{Count: len(resp.Balances)})
}

// GetByUser handles GET /groups/{groupId}/balances/{userId}
// @Summary      Get a member's group balance
// @Tags         groups
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Param        userId  path int true "User ID"
// @Success      200 {object} response.APIResponse{data=BalanceResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupId}/balances/{userId} [get]
func (h *Handler) GetByUser(w http.ResponseWriter, r *http.Request) {
	groupID, ok := GroupID(r)
	if !ok {
		response.BadRequest(w, "Invalid group ID")
		return
	}
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	b, err := h.service.Find(r.Context(), userID, groupID)
	if err != nil {
		if errors.Is(err, ErrBalanceNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get group balance")
		return
	}

	response.JSON(w, http.StatusOK, b.ToResponse())
}
