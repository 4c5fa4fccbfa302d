package expense

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/matryer/is"

	"github.com/fkhayef/splitledger/pkg/middleware"
	"github.com/fkhayef/splitledger/pkg/response"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	r.Use(middleware.UserID)
	r.Mount("/expenses", NewHandler(setup(t).svc).Routes())
	return r
}

func do(h http.Handler, method, target, body, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const dinner = `{
	"group_id": 4,
	"category": "food",
	"description": "dinner",
	"amount": 75.5,
	"payers_split": "PERCENTAGE",
	"payers": [{"user_id": 1, "weight": 100}],
	"owers_split": "AMOUNT",
	"owers": [{"user_id": 1, "weight": 25.5}, {"user_id": 2, "weight": 50}]
}`

func TestHandlerCreateAndGet(t *testing.T) {
	is := is.New(t)
	h := newTestRouter(t)

	is.Equal(do(h, http.MethodPost, "/expenses", dinner, "").Code, http.StatusUnauthorized)

	rec := do(h, http.MethodPost, "/expenses", dinner, "1")
	is.Equal(rec.Code, http.StatusCreated)
	var created struct {
		Data ExpenseResponse `json:"data"`
	}
	is.NoErr(json.NewDecoder(rec.Body).Decode(&created))
	is.Equal(created.Data.Amount, 75.5)
	is.Equal(len(created.Data.Balances), 2)
	is.Equal(*created.Data.Balances[0], BalanceResponse{UserID: 1, Paid: 75.5, Owed: 25.5, Total: 50})
	is.Equal(*created.Data.Balances[1], BalanceResponse{UserID: 2, Paid: 0, Owed: 50, Total: -50})

	rec = do(h, http.MethodGet, fmt.Sprintf("/expenses/%d", created.Data.ID), "", "")
	is.Equal(rec.Code, http.StatusOK)
	var got struct {
		Data ExpenseResponse `json:"data"`
	}
	is.NoErr(json.NewDecoder(rec.Body).Decode(&got))
	is.Equal(got.Data.Description, "dinner")
	is.Equal(*got.Data.GroupID, int64(4))
	is.Equal(got.Data.OwersSplit, "AMOUNT")

	rec = do(h, http.MethodGet, "/expenses/group/4", "", "")
	is.Equal(rec.Code, http.StatusOK)
	var list struct {
		Data []ExpenseResponse `json:"data"`
		Meta response.Meta     `json:"meta"`
	}
	is.NoErr(json.NewDecoder(rec.Body).Decode(&list))
	is.Equal(list.Meta, response.Meta{Page: 1, PerPage: 20, Total: 1, TotalPages: 1, Count: 1})

	is.Equal(do(h, http.MethodPost, "/expenses", dinner, "1").Code, http.StatusCreated)
	rec = do(h, http.MethodGet, "/expenses/group/4?page=2&per_page=1", "", "")
	is.Equal(rec.Code, http.StatusOK)
	list.Data, list.Meta = nil, response.Meta{}
	is.NoErr(json.NewDecoder(rec.Body).Decode(&list))
	is.Equal(len(list.Data), 1)
	is.Equal(list.Meta, response.Meta{Page: 2, PerPage: 1, Total: 2, TotalPages: 2, Count: 1})

	is.Equal(do(h, http.MethodGet, "/expenses/999", "", "").Code, http.StatusNotFound)
	is.Equal(do(h, http.MethodGet, "/expenses/abc", "", "").Code, http.StatusBadRequest)
}

func TestHandlerPreview(t *testing.T) {
	is := is.New(t)
	h := newTestRouter(t)

	rec := do(h, http.MethodPost, "/expenses/preview", dinner, "")
	is.Equal(rec.Code, http.StatusOK)
	var body struct {
		Data []BalanceResponse `json:"data"`
	}
	is.NoErr(json.NewDecoder(rec.Body).Decode(&body))
	is.Equal(len(body.Data), 2)

	// nothing persisted
	is.Equal(do(h, http.MethodGet, "/expenses/1", "", "").Code, http.StatusNotFound)
}

func TestHandlerCreateRejects(t *testing.T) {
	is := is.New(t)
	h := newTestRouter(t)

	is.Equal(do(h, http.MethodPost, "/expenses", `{`, "1").Code, http.StatusBadRequest)

	bad := strings.Replace(dinner, `"weight": 50}`, `"weight": 40}`, 1)
	rec := do(h, http.MethodPost, "/expenses", bad, "1")
	is.Equal(rec.Code, http.StatusBadRequest)
	is.True(strings.Contains(rec.Body.String(), "amounts must sum to total amount"))

	huge := strings.Replace(dinner, `"amount": 75.5`, `"amount": 1.9e17`, 1)
	rec = do(h, http.MethodPost, "/expenses", huge, "1")
	is.Equal(rec.Code, http.StatusBadRequest)
	is.True(strings.Contains(rec.Body.String(), "amount out of range"))
}
