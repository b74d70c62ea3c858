package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	domain "github.com/stethcare/checkout-api/internal/domain"
	"github.com/stethcare/checkout-api/internal/platform/httpx"
	"github.com/stethcare/checkout-api/internal/services"
)

const (
	maxDraftBodySize = 16 * 1024
	clientKeyHeader  = "X-Client-Key"
)

// DraftHandlers exposes the checkout draft endpoints.
type DraftHandlers struct {
	drafts  services.DraftService
	limiter rateLimiter
	submit  func(http.Handler) http.Handler
}

// DraftHandlersOption customises draft handler construction.
type DraftHandlersOption func(*DraftHandlers)

// WithDraftRateLimit guards draft creation and submission with a fixed-window
// limiter keyed by client address. A non-positive limit disables throttling.
func WithDraftRateLimit(limit int, window time.Duration) DraftHandlersOption {
	return func(h *DraftHandlers) {
		h.limiter = newSimpleRateLimiter(limit, window, nil)
	}
}

// WithSubmitMiddleware wraps the submit endpoint, typically with the idempotency guard.
func WithSubmitMiddleware(mw func(http.Handler) http.Handler) DraftHandlersOption {
	return func(h *DraftHandlers) {
		h.submit = mw
	}
}

// NewDraftHandlers constructs handlers bound to the draft service.
func NewDraftHandlers(drafts services.DraftService, opts ...DraftHandlersOption) *DraftHandlers {
	h := &DraftHandlers{drafts: drafts}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Routes wires the /drafts endpoints onto the provided router.
func (h *DraftHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.createDraft)
	r.Route("/{draftID}", func(draft chi.Router) {
		draft.Get("/", h.getDraft)
		draft.Patch("/{section}", h.patchSection)
		draft.Post("/cart/items", h.addCartItem)
		draft.Delete("/cart/items/{name}", h.removeCartItem)
		draft.Post("/payment/receipt", h.uploadReceipt)

		submit := http.Handler(http.HandlerFunc(h.submitDraft))
		if h.submit != nil {
			submit = h.submit(submit)
		}
		draft.Method(http.MethodPost, "/submit", submit)
	})
}

func (h *DraftHandlers) createDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.drafts == nil {
		httpx.WriteError(ctx, w, httpx.NewError("draft_service_unavailable", "draft service is unavailable", http.StatusServiceUnavailable))
		return
	}
	if !h.allow(r) {
		httpx.WriteError(ctx, w, httpx.NewError("rate_limited", "too many requests", http.StatusTooManyRequests))
		return
	}

	cmd := services.CreateDraftCommand{ClientKey: strings.TrimSpace(r.Header.Get(clientKeyHeader))}

	body, err := readLimitedBody(r, maxDraftBodySize)
	switch {
	case err == nil:
		var req createDraftRequest
		if err := json.Unmarshal(body, &req); err != nil {
			httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be valid JSON", http.StatusBadRequest))
			return
		}
		if key := strings.TrimSpace(req.ClientKey); key != "" {
			cmd.ClientKey = key
		}
	case errors.Is(err, errEmptyBody):
		// Creation without a body is fine.
	case errors.Is(err, errBodyTooLarge):
		httpx.WriteError(ctx, w, httpx.NewError("payload_too_large", "request body exceeds allowed size", http.StatusRequestEntityTooLarge))
		return
	default:
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	result, err := h.drafts.CreateDraft(ctx, cmd)
	if err != nil {
		h.writeDraftError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, buildDraftResponse(result))
}

func (h *DraftHandlers) getDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.drafts == nil {
		httpx.WriteError(ctx, w, httpx.NewError("draft_service_unavailable", "draft service is unavailable", http.StatusServiceUnavailable))
		return
	}

	draft, err := h.drafts.GetDraft(ctx, chi.URLParam(r, "draftID"))
	if err != nil {
		h.writeDraftError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, buildDraftResponse(services.DraftResult{Draft: draft}))
}

func (h *DraftHandlers) patchSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.drafts == nil {
		httpx.WriteError(ctx, w, httpx.NewError("draft_service_unavailable", "draft service is unavailable", http.StatusServiceUnavailable))
		return
	}

	body, err := readLimitedBody(r, maxDraftBodySize)
	if err != nil {
		switch {
		case errors.Is(err, errBodyTooLarge):
			httpx.WriteError(ctx, w, httpx.NewError("payload_too_large", "request body exceeds allowed size", http.StatusRequestEntityTooLarge))
		default:
			httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		}
		return
	}

	cmd, err := parseSectionPatch(chi.URLParam(r, "draftID"), chi.URLParam(r, "section"), body)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	result, err := h.drafts.UpdateSection(ctx, cmd)
	if err != nil {
		h.writeDraftError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, buildDraftResponse(result))
}

func (h *DraftHandlers) submitDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.drafts == nil {
		httpx.WriteError(ctx, w, httpx.NewError("draft_service_unavailable", "draft service is unavailable", http.StatusServiceUnavailable))
		return
	}
	if !h.allow(r) {
		httpx.WriteError(ctx, w, httpx.NewError("rate_limited", "too many requests", http.StatusTooManyRequests))
		return
	}

	result, err := h.drafts.SubmitDraft(ctx, chi.URLParam(r, "draftID"))
	if err != nil {
		h.writeDraftError(ctx, w, err)
		return
	}

	payload := submitResponse{
		ConfirmationRef: result.ConfirmationRef,
		Draft:           buildDraftPayload(result.Draft),
	}
	writeJSONResponse(w, http.StatusOK, payload)
}

func (h *DraftHandlers) allow(r *http.Request) bool {
	if h.limiter == nil {
		return true
	}
	return h.limiter.Allow(clientAddr(r))
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err != nil || host == "" {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}

func (h *DraftHandlers) writeDraftError(ctx context.Context, w http.ResponseWriter, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		httpx.WriteError(ctx, w, httpx.NewError("draft_validation_failed", "draft has invalid fields", http.StatusUnprocessableEntity).
			WithDetails(map[string]any{"field_errors": validationErr.Fields}))
	case errors.Is(err, services.ErrDraftInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrDraftNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("draft_not_found", "draft not found", http.StatusNotFound))
	case errors.Is(err, services.ErrDraftSubmitted):
		httpx.WriteError(ctx, w, httpx.NewError("draft_already_submitted", "draft was already submitted", http.StatusConflict))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("draft_service_unavailable", "draft service is unavailable", http.StatusServiceUnavailable))
	}
}

type createDraftRequest struct {
	ClientKey string `json:"clientKey"`
}

// parseSectionPatch decodes the raw JSON body into the patch matching the
// section. Pointer fields distinguish absent keys from explicit values, so a
// partial body only touches the fields it names.
func parseSectionPatch(draftID, section string, body []byte) (services.UpdateSectionCommand, error) {
	cmd := services.UpdateSectionCommand{
		DraftID: strings.TrimSpace(draftID),
		Section: services.Section(strings.ToLower(strings.TrimSpace(section))),
	}

	decode := func(target any) error {
		if err := json.Unmarshal(body, target); err != nil {
			return errors.New("request body must be valid JSON for the section")
		}
		return nil
	}

	switch cmd.Section {
	case services.SectionContact:
		var req contactPatchRequest
		if err := decode(&req); err != nil {
			return services.UpdateSectionCommand{}, err
		}
		cmd.Contact = &services.ContactPatch{
			FirstName:        req.FirstName,
			LastName:         req.LastName,
			Email:            req.Email,
			MarketingConsent: req.MarketingConsent,
		}
	case services.SectionDelivery:
		var req deliveryPatchRequest
		if err := decode(&req); err != nil {
			return services.UpdateSectionCommand{}, err
		}
		cmd.Delivery = &services.DeliveryPatch{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Company:     req.Company,
			Address:     req.Address,
			Apartment:   req.Apartment,
			City:        req.City,
			State:       req.State,
			ZipCode:     req.ZipCode,
			CountryCode: req.CountryCode,
			SMSConsent:  req.SMSConsent,
		}
	case services.SectionPhone:
		var req phonePatchRequest
		if err := decode(&req); err != nil {
			return services.UpdateSectionCommand{}, err
		}
		cmd.Phone = &services.PhonePatch{
			CountryCode:    req.CountryCode,
			NationalNumber: req.NationalNumber,
			Combined:       req.Phone,
		}
	case services.SectionShipping:
		var req shippingPatchRequest
		if err := decode(&req); err != nil {
			return services.UpdateSectionCommand{}, err
		}
		cmd.Shipping = &services.ShippingPatch{Method: req.Method}
	case services.SectionPayment:
		var req paymentPatchRequest
		if err := decode(&req); err != nil {
			return services.UpdateSectionCommand{}, err
		}
		patch := &services.PaymentPatch{Method: req.Method}
		if req.Card != nil {
			patch.Card = &services.CardPatch{
				Number:                req.Card.Number,
				Expiry:                req.Card.Expiry,
				CVV:                   req.Card.SecurityCode,
				NameOnCard:            req.Card.Name,
				BillingSameAsShipping: req.Card.BillingSameAsShipping,
			}
		}
		cmd.Payment = patch
	case services.SectionRememberMe:
		var req rememberMePatchRequest
		if err := decode(&req); err != nil {
			return services.UpdateSectionCommand{}, err
		}
		patch := &services.RememberMePatch{SaveInfo: req.SaveInfo}
		if req.Phone != nil {
			patch.CountryCode = req.Phone.CountryCode
			patch.NationalNumber = req.Phone.NationalNumber
			patch.Combined = req.Phone.Phone
		}
		cmd.RememberMe = patch
	case services.SectionDiscount:
		var req discountPatchRequest
		if err := decode(&req); err != nil {
			return services.UpdateSectionCommand{}, err
		}
		cmd.Discount = &services.DiscountPatch{Code: req.Code}
	default:
		return services.UpdateSectionCommand{}, errors.New("unknown draft section")
	}

	return cmd, nil
}

type contactPatchRequest struct {
	FirstName        *string `json:"firstName"`
	LastName         *string `json:"lastName"`
	Email            *string `json:"email"`
	MarketingConsent *bool   `json:"marketingConsent"`
}

type deliveryPatchRequest struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	Company     *string `json:"company"`
	Address     *string `json:"address"`
	Apartment   *string `json:"apartment"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	ZipCode     *string `json:"zipCode"`
	CountryCode *string `json:"countryCode"`
	SMSConsent  *bool   `json:"smsConsent"`
}

type phonePatchRequest struct {
	CountryCode    *string `json:"countryCode"`
	NationalNumber *string `json:"nationalNumber"`
	// Phone takes the storefront's concatenated "+<code> <number>" form.
	Phone *string `json:"phone"`
}

type shippingPatchRequest struct {
	Method *string `json:"method"`
}

type paymentPatchRequest struct {
	Method *string           `json:"method"`
	Card   *cardPatchRequest `json:"card"`
}

type cardPatchRequest struct {
	Number                *string `json:"number"`
	Expiry                *string `json:"expiry"`
	SecurityCode          *string `json:"securityCode"`
	Name                  *string `json:"name"`
	BillingSameAsShipping *bool   `json:"billingSameAsShipping"`
}

type rememberMePatchRequest struct {
	SaveInfo *bool              `json:"saveInfo"`
	Phone    *phonePatchRequest `json:"phone"`
}

type discountPatchRequest struct {
	Code *string `json:"code"`
}

type draftResponse struct {
	Draft       draftPayload       `json:"draft"`
	FieldErrors domain.FieldErrors `json:"field_errors,omitempty"`
}

type submitResponse struct {
	ConfirmationRef string       `json:"confirmationRef"`
	Draft           draftPayload `json:"draft"`
}

type draftPayload struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	Contact      contactPayload  `json:"contact"`
	Delivery     deliveryPayload `json:"delivery"`
	Phone        phonePayload    `json:"phone"`
	Shipping     shippingPayload `json:"shipping"`
	Payment      paymentPayload  `json:"payment"`
	RememberMe   rememberPayload `json:"rememberMe"`
	DiscountCode string          `json:"discountCode,omitempty"`
	Cart         cartPayload     `json:"cart"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
	SubmittedAt  string          `json:"submittedAt,omitempty"`
}

type contactPayload struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	MarketingConsent bool   `json:"marketingConsent"`
}

type deliveryPayload struct {
	FirstName  string          `json:"firstName"`
	LastName   string          `json:"lastName"`
	Company    string          `json:"company,omitempty"`
	Address    string          `json:"address"`
	Apartment  string          `json:"apartment,omitempty"`
	City       string          `json:"city"`
	State      string          `json:"state,omitempty"`
	ZipCode    string          `json:"zipCode"`
	Country    *countryPayload `json:"country,omitempty"`
	SMSConsent bool            `json:"smsConsent"`
}

type countryPayload struct {
	Name    string `json:"name"`
	ISOCode string `json:"isoCode"`
	Flag    string `json:"flag,omitempty"`
}

type phonePayload struct {
	CountryCode    string `json:"countryCode"`
	NationalNumber string `json:"nationalNumber"`
}

type shippingPayload struct {
	Method    string `json:"method,omitempty"`
	CostCents int64  `json:"costCents"`
}

// paymentPayload echoes the stored payment union. The CVV never leaves the
// server.
type paymentPayload struct {
	Method    string        `json:"method"`
	Card      cardPayload   `json:"card"`
	Easypaisa walletPayload `json:"easypaisa"`
	Jazzcash  walletPayload `json:"jazzcash"`
}

type cardPayload struct {
	Number                string `json:"number,omitempty"`
	Expiry                string `json:"expiry,omitempty"`
	NameOnCard            string `json:"nameOnCard,omitempty"`
	BillingSameAsShipping bool   `json:"billingSameAsShipping"`
}

type walletPayload struct {
	Receipt *receiptPayload `json:"receipt,omitempty"`
}

type receiptPayload struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType,omitempty"`
	SizeBytes   int64  `json:"sizeBytes,omitempty"`
}

type rememberPayload struct {
	SaveInfo bool         `json:"saveInfo"`
	Phone    phonePayload `json:"phone"`
}

type cartPayload struct {
	Items       []lineItemPayload `json:"items"`
	GiftMessage string            `json:"giftMessage,omitempty"`
	TotalCents  int64             `json:"totalCents"`
}

type lineItemPayload struct {
	Name       string `json:"name"`
	Color      string `json:"color,omitempty"`
	PriceCents int64  `json:"priceCents"`
}

type cartResponse struct {
	Cart cartPayload `json:"cart"`
}

func buildDraftResponse(result services.DraftResult) draftResponse {
	resp := draftResponse{Draft: buildDraftPayload(result.Draft)}
	if result.FieldErrors.HasErrors() {
		resp.FieldErrors = result.FieldErrors
	}
	return resp
}

func buildDraftPayload(draft domain.OrderDraft) draftPayload {
	payload := draftPayload{
		ID:     draft.ID,
		Status: string(draft.Status),
		Contact: contactPayload{
			FirstName:        draft.Contact.FirstName,
			LastName:         draft.Contact.LastName,
			Email:            draft.Contact.Email,
			MarketingConsent: draft.Contact.MarketingConsent,
		},
		Delivery: deliveryPayload{
			FirstName:  draft.Delivery.FirstName,
			LastName:   draft.Delivery.LastName,
			Company:    draft.Delivery.Company,
			Address:    draft.Delivery.Address,
			Apartment:  draft.Delivery.Apartment,
			City:       draft.Delivery.City,
			State:      draft.Delivery.State,
			ZipCode:    draft.Delivery.ZipCode,
			SMSConsent: draft.Delivery.SMSConsent,
		},
		Phone: phonePayload{
			CountryCode:    draft.Phone.CountryCode,
			NationalNumber: draft.Phone.NationalNumber,
		},
		Shipping: shippingPayload{
			Method:    draft.Shipping.Method,
			CostCents: draft.Shipping.CostCents,
		},
		Payment: paymentPayload{
			Method: string(draft.Payment.Method),
			Card: cardPayload{
				Number:                draft.Payment.Card.Number,
				Expiry:                draft.Payment.Card.Expiry,
				NameOnCard:            draft.Payment.Card.NameOnCard,
				BillingSameAsShipping: draft.Payment.Card.BillingSameAsShipping,
			},
			Easypaisa: buildWalletPayload(draft.Payment.Easypaisa),
			Jazzcash:  buildWalletPayload(draft.Payment.Jazzcash),
		},
		RememberMe: rememberPayload{
			SaveInfo: draft.RememberMe.SaveInfo,
			Phone: phonePayload{
				CountryCode:    draft.RememberMe.Phone.CountryCode,
				NationalNumber: draft.RememberMe.Phone.NationalNumber,
			},
		},
		DiscountCode: draft.DiscountCode,
		Cart:         buildCartPayload(draft.Cart),
		CreatedAt:    formatTime(draft.CreatedAt),
		UpdatedAt:    formatTime(draft.UpdatedAt),
		SubmittedAt:  formatTimePointer(draft.SubmittedAt),
	}

	if draft.Delivery.Country != nil {
		payload.Delivery.Country = &countryPayload{
			Name:    draft.Delivery.Country.Name,
			ISOCode: draft.Delivery.Country.ISOCode,
			Flag:    draft.Delivery.Country.FlagGlyph,
		}
	}
	return payload
}

func buildWalletPayload(wallet domain.WalletDraft) walletPayload {
	if wallet.Receipt == nil {
		return walletPayload{}
	}
	return walletPayload{Receipt: &receiptPayload{
		Filename:    wallet.Receipt.Filename,
		ContentType: wallet.Receipt.ContentType,
		SizeBytes:   wallet.Receipt.SizeBytes,
	}}
}

func buildCartPayload(cart domain.Cart) cartPayload {
	payload := cartPayload{
		Items:       make([]lineItemPayload, 0, len(cart.Items)),
		GiftMessage: cart.GiftMessage,
		TotalCents:  cart.TotalCents,
	}
	for _, item := range cart.Items {
		payload.Items = append(payload.Items, lineItemPayload{
			Name:       item.Name,
			Color:      item.Color,
			PriceCents: item.PriceCents,
		})
	}
	return payload
}
