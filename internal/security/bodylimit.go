package security

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/noah-isme/discount-function/internal/common"
)

// CodePayloadTooLarge is returned when a function input exceeds the body limit.
const CodePayloadTooLarge = "PAYLOAD_TOO_LARGE"

// BodyLimit caps the size of posted function inputs.
type BodyLimit struct {
	Max int64
}

// Middleware buffers the body up to Max bytes and rejects larger payloads with 413.
func (b BodyLimit) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if b.Max <= 0 || r.Body == nil {
			next.ServeHTTP(w, r)
			return
		}
		if r.ContentLength > b.Max {
			tooLarge(w)
			return
		}

		buf, err := io.ReadAll(io.LimitReader(r.Body, b.Max+1))
		if err != nil && !errors.Is(err, io.EOF) {
			common.JSONError(w, http.StatusBadRequest, common.CodeInvalidInput, "invalid request body", nil)
			return
		}
		if int64(len(buf)) > b.Max {
			tooLarge(w)
			return
		}
		_ = r.Body.Close()

		r.Body = io.NopCloser(bytes.NewReader(buf))
		r.ContentLength = int64(len(buf))
		next.ServeHTTP(w, r)
	})
}

func tooLarge(w http.ResponseWriter) {
	common.JSONError(w, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, "request entity too large", nil)
}
