package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stethcare/checkout-api/internal/platform/httpx"
	"github.com/stethcare/checkout-api/internal/services"
)

type addCartItemRequest struct {
	Name string `json:"name"`
}

func (h *DraftHandlers) addCartItem(w http.ResponseWriter, r *http.Request) {
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

	var req addCartItemRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be valid JSON", http.StatusBadRequest))
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "item name is required", http.StatusBadRequest))
		return
	}

	cart, err := h.drafts.AddLineItem(ctx, services.LineItemCommand{
		DraftID: chi.URLParam(r, "draftID"),
		Name:    req.Name,
	})
	if err != nil {
		h.writeDraftError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, cartResponse{Cart: buildCartPayload(cart)})
}

func (h *DraftHandlers) removeCartItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.drafts == nil {
		httpx.WriteError(ctx, w, httpx.NewError("draft_service_unavailable", "draft service is unavailable", http.StatusServiceUnavailable))
		return
	}

	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	if strings.TrimSpace(name) == "" {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "item name is required", http.StatusBadRequest))
		return
	}

	cart, err := h.drafts.RemoveLineItem(ctx, services.LineItemCommand{
		DraftID: chi.URLParam(r, "draftID"),
		Name:    name,
	})
	if err != nil {
		h.writeDraftError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, cartResponse{Cart: buildCartPayload(cart)})
}
