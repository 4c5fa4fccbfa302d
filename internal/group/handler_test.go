package group

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/matryer/is"

	"github.com/fkhayef/splitledger/internal/database/dbtest"
)

func newTestRouter(t *testing.T) (http.Handler, *Service) {
	t.Helper()
	svc := NewService(NewRepository(dbtest.New(t)))

	r := chi.NewRouter()
	r.Route("/groups/{groupId}", func(r chi.Router) {
		r.Mount("/balances", NewHandler(svc).Routes())
	})
	return r, svc
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandlerList(t *testing.T) {
	is := is.New(t)
	h, svc := newTestRouter(t)
	ctx := context.Background()

	_, err := svc.UpdateBalance(ctx, 2, trip, -1250)
	is.NoErr(err)
	_, err = svc.UpdateBalance(ctx, 1, trip, 1250)
	is.NoErr(err)

	rec := get(h, "/groups/10/balances")
	is.Equal(rec.Code, http.StatusOK)

	var body struct {
		Data GroupBalancesResponse `json:"data"`
		Meta struct {
			Count int `json:"count"`
		} `json:"meta"`
	}
	is.NoErr(json.NewDecoder(rec.Body).Decode(&body))
	is.Equal(body.Meta.Count, 2)
	is.Equal(body.Data.GroupID, trip)
	is.Equal(body.Data.Settled, false)
	is.Equal(body.Data.Balances[0].UserID, int64(1))
	is.Equal(body.Data.Balances[0].Balance, 12.5)
	is.Equal(body.Data.Balances[1].Balance, -12.5)
}

func TestHandlerGetByUser(t *testing.T) {
	is := is.New(t)
	h, svc := newTestRouter(t)

	_, err := svc.SetBalance(context.Background(), 3, trip, 99)
	is.NoErr(err)

	rec := get(h, "/groups/10/balances/3")
	is.Equal(rec.Code, http.StatusOK)
	var body struct {
		Data BalanceResponse `json:"data"`
	}
	is.NoErr(json.NewDecoder(rec.Body).Decode(&body))
	is.Equal(body.Data.Balance, 0.99)

	is.Equal(get(h, "/groups/10/balances/4").Code, http.StatusNotFound)
	is.Equal(get(h, "/groups/x/balances").Code, http.StatusBadRequest)
	is.Equal(get(h, "/groups/0/balances").Code, http.StatusBadRequest)
}
