package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/MillyinVR/tovis-app-sub004/internal/app"
	"github.com/MillyinVR/tovis-app-sub004/internal/auth"
	"github.com/MillyinVR/tovis-app-sub004/internal/domain"
)

// SlotReserver is the minimal interface needed to place a hold.
type SlotReserver interface {
	Reserve(ctx context.Context, in app.ReserveInput) (domain.Hold, bool, error)
}

// HandleCreateHold returns the handler for reservation attempts. A newly
// created hold answers 201; an idempotent re-issue of the caller's own
// unexpired hold answers 200 with the same hold.
func HandleCreateHold(svc SlotReserver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		clientID := auth.ClientID(r.Context())
		if clientID == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
			return
		}

		var req createHoldRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.OfferingID == "" {
			writeError(w, http.StatusBadRequest, codeMissingRequiredField, "offering_id is required")
			return
		}
		mode, ok := domain.ParseLocationType(req.LocationType)
		if !ok {
			writeError(w, http.StatusBadRequest, codeInvalidLocationType, "location_type must be IN_PERSON or TRAVELING")
			return
		}
		scheduledFor, err := time.Parse(time.RFC3339, req.ScheduledFor)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidScheduledFor, "scheduled_for must be an RFC 3339 timestamp")
			return
		}

		hold, created, err := svc.Reserve(r.Context(), app.ReserveInput{
			ClientID:     clientID,
			OfferingID:   req.OfferingID,
			ScheduledFor: scheduledFor,
			LocationType: mode,
			LocationID:   req.LocationID,
		})
		if err != nil {
			status, code := classifyReserveError(err)
			if status == http.StatusInternalServerError {
				writeError(w, status, code, "internal error")
				return
			}
			writeError(w, status, code, err.Error())
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(holdEnvelope{Hold: toHoldResponse(hold)})
	}
}

// classifyReserveError maps a rejection to its HTTP status and stable code.
// Anything unrecognized is an infrastructure failure, surfaced as 500 with
// no business reason attached.
func classifyReserveError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrFutureTimeRequired):
		return http.StatusBadRequest, codeFutureTimeRequired
	case errors.Is(err, domain.ErrOfferingInactive):
		return http.StatusBadRequest, codeOfferingInactive
	case errors.Is(err, domain.ErrModeNotSupported):
		return http.StatusBadRequest, codeModeNotSupported
	case errors.Is(err, domain.ErrNoWorkingHours):
		return http.StatusBadRequest, codeNoWorkingHours
	case errors.Is(err, domain.ErrOutsideWorkingHours):
		return http.StatusBadRequest, codeOutsideWorkingHours
	case errors.Is(err, domain.ErrMisconfiguredHours):
		return http.StatusBadRequest, codeMisconfiguredHours
	case errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest, codeInvalidID
	case errors.Is(err, domain.ErrOfferingNotFound):
		return http.StatusNotFound, codeOfferingNotFound
	case errors.Is(err, domain.ErrLocationNotFound):
		return http.StatusNotFound, codeLocationNotFound
	case errors.Is(err, domain.ErrNoBookableLocation):
		return http.StatusNotFound, codeNoBookableLocation
	case errors.Is(err, domain.ErrSlotHeld):
		return http.StatusConflict, codeSlotHeld
	case errors.Is(err, domain.ErrSlotBooked):
		return http.StatusConflict, codeSlotBooked
	}
	return http.StatusInternalServerError, codeInternalError
}

type createHoldRequest struct {
	OfferingID   string `json:"offering_id"`
	ScheduledFor string `json:"scheduled_for"`
	LocationType string `json:"location_type"`
	LocationID   string `json:"location_id,omitempty"`
}

type holdEnvelope struct {
	Hold holdResponse `json:"hold"`
}

type holdResponse struct {
	ID               string    `json:"id"`
	ExpiresAt        time.Time `json:"expires_at"`
	ScheduledFor     time.Time `json:"scheduled_for"`
	LocationType     string    `json:"location_type"`
	LocationID       string    `json:"location_id"`
	LocationTimeZone string    `json:"location_time_zone"`
	CreatedAt        time.Time `json:"created_at"`
}

func toHoldResponse(h domain.Hold) holdResponse {
	return holdResponse{
		ID:               h.ID,
		ExpiresAt:        h.ExpiresAt,
		ScheduledFor:     h.ScheduledFor,
		LocationType:     string(h.LocationType),
		LocationID:       h.LocationID,
		LocationTimeZone: h.TimeZone,
		CreatedAt:        h.CreatedAt,
	}
}
