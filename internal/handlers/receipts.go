package handlers

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	domain "github.com/stethcare/checkout-api/internal/domain"
	"github.com/stethcare/checkout-api/internal/platform/httpx"
	"github.com/stethcare/checkout-api/internal/services"
	"github.com/stethcare/checkout-api/internal/validation"
)

// The multipart budget leaves headroom above the receipt limit so an
// oversized file is rejected with the proper code instead of a parse error.
const maxReceiptFormSize = validation.MaxReceiptSize + 64*1024

func (h *DraftHandlers) uploadReceipt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.drafts == nil {
		httpx.WriteError(ctx, w, httpx.NewError("draft_service_unavailable", "draft service is unavailable", http.StatusServiceUnavailable))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxReceiptFormSize)
	if err := r.ParseMultipartForm(maxReceiptFormSize); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("receipt_too_large", "receipt exceeds the 5MB size limit", http.StatusRequestEntityTooLarge))
		return
	}

	method := domain.PaymentMethod(strings.ToLower(strings.TrimSpace(r.FormValue("method"))))
	file, header, err := r.FormFile("receipt")
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "receipt file is required", http.StatusBadRequest))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = parsed
	}

	result, err := h.drafts.AttachReceipt(ctx, services.AttachReceiptCommand{
		DraftID:     chi.URLParam(r, "draftID"),
		Method:      method,
		Filename:    header.Filename,
		ContentType: contentType,
		SizeBytes:   header.Size,
	})
	if err != nil {
		switch {
		case errors.Is(err, validation.ErrReceiptType):
			httpx.WriteError(ctx, w, httpx.NewError("receipt_invalid_type", err.Error(), http.StatusBadRequest))
		case errors.Is(err, validation.ErrReceiptTooLarge):
			httpx.WriteError(ctx, w, httpx.NewError("receipt_too_large", err.Error(), http.StatusRequestEntityTooLarge))
		default:
			h.writeDraftError(ctx, w, err)
		}
		return
	}

	writeJSONResponse(w, http.StatusOK, buildDraftResponse(result))
}
