package validation

import (
	"errors"
	"fmt"
	"strings"
)

// MaxReceiptSize is the upload ceiling for wallet receipts. A file of exactly
// this size passes; one byte over fails.
const MaxReceiptSize = 5 * 1024 * 1024

// ErrReceiptType indicates the uploaded file's MIME type is not accepted.
var ErrReceiptType = errors.New("receipt must be a PNG, JPG or PDF file")

// ErrReceiptTooLarge indicates the uploaded file exceeds MaxReceiptSize.
var ErrReceiptTooLarge = errors.New("receipt exceeds the 5MB size limit")

var acceptedReceiptTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"application/pdf": {},
}

// Receipt checks a candidate upload's MIME type and size. Unlike the field
// rules these violations are request-level errors, not inline messages.
func Receipt(contentType string, sizeBytes int64) error {
	mediaType := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}
	if _, ok := acceptedReceiptTypes[mediaType]; !ok {
		return fmt.Errorf("%w: got %q", ErrReceiptType, contentType)
	}
	if sizeBytes > MaxReceiptSize {
		return ErrReceiptTooLarge
	}
	return nil
}
