// internal/transport/http/handlers.go
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"storefront-filters/internal/common/errors"
	"storefront-filters/internal/common/logger"
	"storefront-filters/internal/common/observability"
	"storefront-filters/internal/models"
	"storefront-filters/internal/service/listing"
)

// ListingService computes filtered category listings.
type ListingService interface {
	Listing(ctx context.Context, req listing.Request) (*models.FilteredListing, error)
	Facets(ctx context.Context, req listing.Request) ([]models.Facet, error)
}

// AlertService registers back-in-stock subscriptions.
type AlertService interface {
	Subscribe(ctx context.Context, productID int64, email, phone string) (int64, error)
}

type handlers struct {
	listing ListingService
	alerts  AlertService
	obs     *observability.Observability
	logger  logger.Logger
}

func (h *handlers) categoryProducts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, err := h.listingRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.listing.Listing(r.Context(), req)
	h.recordListing(r.Context(), start, err)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handlers) recordListing(ctx context.Context, start time.Time, err error) {
	if h.obs == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	h.obs.RecordListingServed(ctx, status)
	h.obs.RecordListingDuration(ctx, time.Since(start), status)
}

func (h *handlers) categoryFilters(w http.ResponseWriter, r *http.Request) {
	req, err := h.listingRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	facets, err := h.listing.Facets(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"facets": facets})
}

type stockAlertRequest struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (h *handlers) createStockAlert(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		h.writeError(w, r, errors.NewInvalidRequestError("productID must be an integer"))
		return
	}

	var body stockAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, r, errors.NewInvalidRequestError("request body must be valid JSON"))
		return
	}

	id, err := h.alerts.Subscribe(r.Context(), productID, body.Email, body.Phone)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"id": id})
}

func (h *handlers) listingRequest(r *http.Request) (listing.Request, error) {
	categoryID, err := strconv.ParseInt(chi.URLParam(r, "categoryID"), 10, 64)
	if err != nil {
		return listing.Request{}, errors.NewInvalidRequestError("categoryID must be an integer")
	}

	query := r.URL.Query()
	req := listing.Request{
		CategoryID: categoryID,
		Params:     query,
		Query:      query.Get("q"),
	}
	// malformed page/limit fall back to defaults, same as any other
	// malformed filter input
	req.Page, _ = strconv.Atoi(query.Get("page"))
	req.Limit, _ = strconv.Atoi(query.Get("limit"))
	return req, nil
}

func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := errors.Normalize(err)
	if errors.HTTPStatus(stdErr.Code) >= http.StatusInternalServerError {
		h.logger.Error("request failed", map[string]interface{}{
			"path":  r.URL.Path,
			"code":  string(stdErr.Code),
			"error": stdErr.Message,
		})
	}
	errors.WriteHTTP(w, err)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
