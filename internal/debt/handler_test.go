package debt

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/fkhayef/splitledger/internal/database/dbtest"
	"github.com/fkhayef/splitledger/pkg/middleware"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	svc := NewService(NewRepository(dbtest.New(t)))
	return middleware.UserID(NewHandler(svc).Routes())
}

func do(t *testing.T, h http.Handler, method, target, body string, userID string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandlerUpdateAndSummary(t *testing.T) {
	is := is.New(t)
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/", `{"lender_id":1,"borrower_id":2,"amount":100}`, "1")
	is.Equal(rec.Code, http.StatusOK)

	rec = do(t, h, http.MethodPost, "/", `{"lender_id":2,"borrower_id":1,"amount":40.5}`, "1")
	is.Equal(rec.Code, http.StatusOK)
	var update struct {
		Data UpdateDebtResponse `json:"data"`
	}
	is.NoErr(json.NewDecoder(rec.Body).Decode(&update))
	is.Equal(update.Data.Outcome, OutcomeReduced)
	is.Equal(update.Data.Debt.Amount, 59.5)

	rec = do(t, h, http.MethodGet, "/", "", "2")
	is.Equal(rec.Code, http.StatusOK)
	var summary struct {
		Data SummaryResponse `json:"data"`
	}
	is.NoErr(json.NewDecoder(rec.Body).Decode(&summary))
	is.Equal(len(summary.Data.Borrowed), 1)
	is.Equal(len(summary.Data.Lent), 0)
	is.Equal(summary.Data.TotalBalance, -59.5)
	is.Equal(summary.Data.Message, "You owe $59.50 overall")
}

func TestHandlerFind(t *testing.T) {
	is := is.New(t)
	h := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/find?lender_id=1&borrower_id=2", "", "")
	is.Equal(rec.Code, http.StatusNotFound)

	do(t, h, http.MethodPost, "/", `{"lender_id":1,"borrower_id":2,"amount":12,"group_id":3}`, "")

	rec = do(t, h, http.MethodGet, "/find?lender_id=1&borrower_id=2", "", "")
	is.Equal(rec.Code, http.StatusNotFound) // scoped to group 3

	rec = do(t, h, http.MethodGet, "/find?lender_id=1&borrower_id=2&group_id=3", "", "")
	is.Equal(rec.Code, http.StatusOK)

	rec = do(t, h, http.MethodGet, "/find?lender_id=x&borrower_id=2", "", "")
	is.Equal(rec.Code, http.StatusBadRequest)
}

func TestHandlerRejects(t *testing.T) {
	is := is.New(t)
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/", `{"lender_id":1,"borrower_id":1,"amount":10}`, "")
	is.Equal(rec.Code, http.StatusBadRequest)

	rec = do(t, h, http.MethodPost, "/", `{"lender_id":1,"borrower_id":2,"amount":0}`, "")
	is.Equal(rec.Code, http.StatusBadRequest)

	rec = do(t, h, http.MethodPost, "/", `{"lender_id":1,"borrower_id":2,"amount":1.9e17}`, "")
	is.Equal(rec.Code, http.StatusBadRequest)

	rec = do(t, h, http.MethodPost, "/", `{"lender_id":0,"borrower_id":2,"amount":10}`, "")
	is.Equal(rec.Code, http.StatusBadRequest)

	rec = do(t, h, http.MethodPost, "/", `{"lender_id":1,"borrower_id":-2,"amount":10}`, "")
	is.Equal(rec.Code, http.StatusBadRequest)

	rec = do(t, h, http.MethodPost, "/", `not json`, "")
	is.Equal(rec.Code, http.StatusBadRequest)

	rec = do(t, h, http.MethodGet, "/", "", "")
	is.Equal(rec.Code, http.StatusUnauthorized)
}
