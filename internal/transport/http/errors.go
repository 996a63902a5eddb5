package http

import (
	"encoding/json"
	"net/http"
)

const (
	codeMethodNotAllowed     = "method_not_allowed"
	codeNotFound             = "not_found"
	codeInvalidRequestBody   = "invalid_request_body"
	codeMissingRequiredField = "missing_required_field"
	codeInvalidScheduledFor  = "invalid_scheduled_for"
	codeInvalidLocationType  = "invalid_location_type"
	codeInvalidID            = "invalid_id"
	codeFutureTimeRequired   = "future_time_required"
	codeOfferingNotFound     = "offering_not_found"
	codeOfferingInactive     = "offering_inactive"
	codeModeNotSupported     = "mode_not_supported"
	codeLocationNotFound     = "location_not_found"
	codeNoBookableLocation   = "no_bookable_location"
	codeNoWorkingHours       = "no_working_hours"
	codeOutsideWorkingHours  = "outside_working_hours"
	codeMisconfiguredHours   = "misconfigured_hours"
	codeSlotHeld             = "slot_held"
	codeSlotBooked           = "slot_booked"
	codeInternalError        = "internal_error"
)

// errorResponse is the uniform failure envelope. Error carries the stable
// user-facing reason, rendered verbatim by the UI; Code is the
// machine-readable condition.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}
