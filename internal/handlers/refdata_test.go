package handlers

import (
	"net/http"
	"testing"
)

func newReferenceTestRouter() http.Handler {
	return NewRouter(WithReferenceRoutes(NewReferenceHandlers().Routes))
}

func TestListCountries(t *testing.T) {
	router := newReferenceTestRouter()

	t.Run("full table", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/reference/countries", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var payload struct {
			Countries []countryPayload `json:"countries"`
		}
		decodeJSON(t, rec, &payload)
		if len(payload.Countries) == 0 {
			t.Fatal("expected a non-empty country table")
		}
	})

	t.Run("search", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/reference/countries?q=united", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var payload struct {
			Countries []countryPayload `json:"countries"`
		}
		decodeJSON(t, rec, &payload)
		if len(payload.Countries) != 3 {
			t.Errorf("matches = %d, want 3", len(payload.Countries))
		}
	})

	t.Run("no matches", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/reference/countries?q=zzz", "", nil)
		var payload struct {
			Countries []countryPayload `json:"countries"`
		}
		decodeJSON(t, rec, &payload)
		if len(payload.Countries) != 0 {
			t.Errorf("matches = %d, want 0", len(payload.Countries))
		}
	})
}

func TestListStates(t *testing.T) {
	router := newReferenceTestRouter()

	t.Run("pakistan", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/reference/countries/pk/states", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var payload struct {
			Country string   `json:"country"`
			States  []string `json:"states"`
		}
		decodeJSON(t, rec, &payload)
		if payload.Country != "PK" {
			t.Errorf("country = %q, want PK", payload.Country)
		}
		if len(payload.States) == 0 {
			t.Error("expected provinces for PK")
		}
	})

	t.Run("country without states", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/reference/countries/DE/states", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, an unknown table should still answer 200", rec.Code)
		}
		var payload struct {
			States []string `json:"states"`
		}
		decodeJSON(t, rec, &payload)
		if len(payload.States) != 0 {
			t.Errorf("states = %v, want empty", payload.States)
		}
	})
}

func TestListDialingCodes(t *testing.T) {
	router := newReferenceTestRouter()

	rec := doJSON(t, router, http.MethodGet, "/api/v1/reference/dialing-codes", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload struct {
		DialingCodes []struct {
			Country string `json:"country"`
			Code    string `json:"code"`
		} `json:"dialingCodes"`
	}
	decodeJSON(t, rec, &payload)
	found := false
	for _, dc := range payload.DialingCodes {
		if dc.Code == "+92" {
			found = true
		}
	}
	if !found {
		t.Error("expected +92 in the dialing-code table")
	}
}

func TestListCatalog(t *testing.T) {
	router := newReferenceTestRouter()

	rec := doJSON(t, router, http.MethodGet, "/api/v1/reference/catalog", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload struct {
		Items []lineItemPayload `json:"items"`
	}
	decodeJSON(t, rec, &payload)
	if len(payload.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(payload.Items))
	}
	for _, item := range payload.Items {
		if item.PriceCents <= 0 {
			t.Errorf("item %q has price %d", item.Name, item.PriceCents)
		}
	}
}

func TestListShippingOptions(t *testing.T) {
	router := newReferenceTestRouter()

	rec := doJSON(t, router, http.MethodGet, "/api/v1/reference/shipping-options", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload struct {
		Options []struct {
			Method    string `json:"method"`
			Label     string `json:"label"`
			CostCents int64  `json:"costCents"`
		} `json:"options"`
	}
	decodeJSON(t, rec, &payload)
	costs := map[string]int64{}
	for _, opt := range payload.Options {
		costs[opt.Method] = opt.CostCents
	}
	if cost, ok := costs["standard"]; !ok || cost != 0 {
		t.Errorf("standard cost = %d (present %v), want free", cost, ok)
	}
	if cost, ok := costs["express"]; !ok || cost != 2500 {
		t.Errorf("express cost = %d (present %v), want 2500", cost, ok)
	}
}
