package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stethcare/checkout-api/internal/refdata"
)

// ReferenceHandlers serves the static checkout reference tables: countries,
// states, dialing codes, the recommended catalog, and shipping options.
type ReferenceHandlers struct{}

// NewReferenceHandlers constructs the reference data handlers.
func NewReferenceHandlers() *ReferenceHandlers {
	return &ReferenceHandlers{}
}

// Routes wires the /reference endpoints onto the provided router.
func (h *ReferenceHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/countries", h.listCountries)
	r.Get("/countries/{code}/states", h.listStates)
	r.Get("/dialing-codes", h.listDialingCodes)
	r.Get("/catalog", h.listCatalog)
	r.Get("/shipping-options", h.listShippingOptions)
}

func (h *ReferenceHandlers) listCountries(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	matches := refdata.Countries()
	if query != "" {
		matches = refdata.SearchCountries(query)
	}

	payload := struct {
		Countries []countryPayload `json:"countries"`
	}{Countries: make([]countryPayload, 0, len(matches))}
	for _, country := range matches {
		payload.Countries = append(payload.Countries, countryPayload{
			Name:    country.Name,
			ISOCode: country.ISOCode,
			Flag:    country.FlagGlyph,
		})
	}
	writeJSONResponse(w, http.StatusOK, payload)
}

// listStates returns the state table for a country. Countries outside the
// table answer with an empty list rather than an error.
func (h *ReferenceHandlers) listStates(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	states := refdata.StatesForCountry(code)
	payload := struct {
		Country string   `json:"country"`
		States  []string `json:"states"`
	}{Country: strings.ToUpper(strings.TrimSpace(code)), States: states}
	writeJSONResponse(w, http.StatusOK, payload)
}

func (h *ReferenceHandlers) listDialingCodes(w http.ResponseWriter, _ *http.Request) {
	codes := refdata.DialingCodes()

	type dialingCodePayload struct {
		Country string `json:"country"`
		Code    string `json:"code"`
		Flag    string `json:"flag,omitempty"`
	}
	payload := struct {
		DialingCodes []dialingCodePayload `json:"dialingCodes"`
	}{DialingCodes: make([]dialingCodePayload, 0, len(codes))}
	for _, code := range codes {
		payload.DialingCodes = append(payload.DialingCodes, dialingCodePayload{
			Country: code.Country,
			Code:    code.Code,
			Flag:    code.FlagGlyph,
		})
	}
	writeJSONResponse(w, http.StatusOK, payload)
}

func (h *ReferenceHandlers) listCatalog(w http.ResponseWriter, _ *http.Request) {
	items := refdata.RecommendedItems()

	payload := struct {
		Items []lineItemPayload `json:"items"`
	}{Items: make([]lineItemPayload, 0, len(items))}
	for _, item := range items {
		payload.Items = append(payload.Items, lineItemPayload{
			Name:       item.Name,
			Color:      item.Color,
			PriceCents: item.PriceCents,
		})
	}
	writeJSONResponse(w, http.StatusOK, payload)
}

func (h *ReferenceHandlers) listShippingOptions(w http.ResponseWriter, _ *http.Request) {
	options := refdata.ShippingOptions()

	type shippingOptionPayload struct {
		Method    string `json:"method"`
		Label     string `json:"label"`
		CostCents int64  `json:"costCents"`
	}
	payload := struct {
		Options []shippingOptionPayload `json:"options"`
	}{Options: make([]shippingOptionPayload, 0, len(options))}
	for _, option := range options {
		payload.Options = append(payload.Options, shippingOptionPayload{
			Method:    option.Method,
			Label:     option.Label,
			CostCents: option.CostCents,
		})
	}
	writeJSONResponse(w, http.StatusOK, payload)
}
