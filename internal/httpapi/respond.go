package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/luniksss/lunikiss-storefront/internal/fault"
	"github.com/luniksss/lunikiss-storefront/internal/middleware"
)

type errorResponse struct {
	Error         string     `json:"error"`
	Code          fault.Code `json:"code,omitempty"`
	CorrelationID string     `json:"correlationId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeFault maps a fault code to an HTTP status so the UI can render by
// error kind. Unclassified errors become a plain 500.
func writeFault(w http.ResponseWriter, r *http.Request, err error) {
	code := fault.CodeOf(err)
	writeJSON(w, statusForCode(code), errorResponse{
		Error:         err.Error(),
		Code:          code,
		CorrelationID: middleware.GetCorrelationID(r.Context()),
	})
}

func statusForCode(code fault.Code) int {
	switch code {
	case fault.CodeUnauthenticated:
		return http.StatusUnauthorized
	case fault.CodeNoOutletSelected, fault.CodeSizeRequired, fault.CodeInvalidAmount:
		return http.StatusBadRequest
	case fault.CodeNotFound:
		return http.StatusNotFound
	case fault.CodeSizeUnavailable, fault.CodeInsufficientStock,
		fault.CodeOperationInProgress, fault.CodeInvalidOrderState:
		return http.StatusConflict
	case fault.CodeOrderAlreadyDeleted, fault.CodeItemAlreadyRemoved:
		return http.StatusGone
	case fault.CodeRemoteUnavailable, fault.CodeRemoteRejected:
		return http.StatusBadGateway
	case fault.CodeCascadeDeleteFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
