package discount

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/noah-isme/discount-function/internal/common"
	"github.com/noah-isme/discount-function/internal/obs"
)

// Handler exposes discount evaluation over HTTP.
type Handler struct {
	Svc *Service
}

type previewRequest struct {
	Value *string `json:"value"`
}

// Routes mounts the discount endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/run", h.Run)
	r.Post("/configuration/preview", h.PreviewConfiguration)
}

// Run evaluates the posted input and returns the operations as produced by the function.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "discount service not configured", nil)
		return
	}
	input, err := DecodeInput(r.Body)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	ctx := obs.WithInvocationID(r.Context(), middleware.GetReqID(r.Context()))
	common.JSON(w, http.StatusOK, h.Svc.Run(ctx, input))
}

// PreviewConfiguration reports how a raw configuration payload resolves.
func (h *Handler) PreviewConfiguration(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "discount service not configured", nil)
		return
	}
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeInvalidInput, "invalid payload", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Svc.PreviewConfiguration(req.Value)})
}
