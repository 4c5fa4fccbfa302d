package debt

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/splitledger/internal/database"
	"github.com/fkhayef/splitledger/internal/money"
	"github.com/fkhayef/splitledger/pkg/middleware"
	"github.com/fkhayef/splitledger/pkg/response"
)

// Handler handles HTTP requests for debt ledger operations
type Handler struct {
	service *Service
}

// NewHandler creates a new debt handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for debt endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Summary)
	r.Post("/", h.Update)
	r.Get("/find", h.Find)

	return r
}

// Summary handles GET /debts
// @Summary      Get the caller's debts
// @Description  Lists debts the caller lent and borrowed, with the net total
// @Tags         debts
// @Produce      json
// @Success      200 {object} response.APIResponse{data=SummaryResponse}
// @Router       /debts [get]
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "User ID required")
		return
	}

	summary, err := h.service.Summary(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to get debts")
		return
	}

	response.JSON(w, http.StatusOK, summary.ToResponse())
}

// Update handles POST /debts
// @Summary      Record a debt
// @Description  Adds to the borrower's debt towards the lender, cancelling against any reverse debt
// @Tags         debts
// @Accept       json
// @Produce      json
// @Param        request body UpdateDebtRequest true "Debt update request"
// @Success      200 {object} response.APIResponse{data=UpdateDebtResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /debts [post]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	amount, err := money.ParseCents(req.Amount)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	result, err := h.service.Update(r.Context(), req.LenderID, req.BorrowerID, amount, req.GroupID, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidUser), errors.Is(err, ErrSelfDebt),
			errors.Is(err, ErrInvalidGroupID), errors.Is(err, money.ErrAmountOutOfRange):
			response.BadRequest(w, err.Error())
		case database.IsUniqueViolation(err):
			response.Conflict(w, "Debt was modified concurrently")
		default:
			response.InternalError(w, "Failed to update debt")
		}
		return
	}

	response.JSON(w, http.StatusOK, result.ToResponse())
}

// Find handles GET /debts/find
// @Summary      Find a debt
// @Description  Exact-direction lookup of what the borrower owes the lender
// @Tags         debts
// @Produce      json
// @Param        lender_id   query int true  "Lender user ID"
// @Param        borrower_id query int true  "Borrower user ID"
// @Param        group_id    query int false "Group scope"
// @Success      200 {object} response.APIResponse{data=DebtResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /debts/find [get]
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lenderID, err := strconv.ParseInt(q.Get("lender_id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid lender ID")
		return
	}
	borrowerID, err := strconv.ParseInt(q.Get("borrower_id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid borrower ID")
		return
	}

	var groupID *int64
	if v := q.Get("group_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.BadRequest(w, "Invalid group ID")
			return
		}
		groupID = &id
	}

	d, err := h.service.Find(r.Context(), lenderID, borrowerID, groupID)
	if err != nil {
		if errors.Is(err, ErrDebtNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get debt")
		return
	}

	response.JSON(w, http.StatusOK, d.ToResponse())
}
