// internal/common/errors/http.go
package errors

import (
	"encoding/json"
	"net/http"
)

// HTTPStatus maps an error code to the response status the transport layer
// uses. Unknown codes map to 500.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidRequest, ErrCodeValidationFailed:
		return http.StatusBadRequest
	case ErrCodeCategoryNotFound, ErrCodeProductNotFound:
		return http.StatusNotFound
	case ErrCodeQueryTimeout, ErrCodeSearchTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeDatabaseConnectionFailed, ErrCodeQueryExecutionFailed,
		ErrCodeSearchQueryFailed, ErrCodeCacheUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorBody is the JSON error envelope written to clients. Details stay
// server-side; clients get code and message only.
type errorBody struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// WriteHTTP normalizes err and writes it as a JSON error response.
func WriteHTTP(w http.ResponseWriter, err error) {
	stdErr := Normalize(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(HTTPStatus(stdErr.Code))
	_ = json.NewEncoder(w).Encode(errorBody{Code: stdErr.Code, Message: stdErr.Message})
}
