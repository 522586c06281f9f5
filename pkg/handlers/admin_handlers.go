package handlers

import (
	"net/http"

	"portfolio-catalog/pkg/catalog"
)

// ReloadHandler drops the cached catalog and rebuilds it from disk, returning
// the fresh report. Use it after editing site files while serving.
func (h *Handlers) ReloadHandler(w http.ResponseWriter, _ *http.Request) {
	h.logger.Info("reloading catalog")
	h.service.Invalidate()

	report, err := h.service.Check()
	if err != nil {
		if loadErrs := catalog.LoadErrors(err); len(loadErrs) > 0 {
			h.writeJSON(w, http.StatusUnprocessableEntity, loadErrorBody(loadErrs))
			return
		}
		h.serverError(w, "reload catalog", err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"status":   "reloaded",
		"stats":    report.Stats,
		"findings": len(report.Findings),
	})
}
