package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"lineup-manager/internal/constants"
	"lineup-manager/internal/lineup"
	"lineup-manager/internal/middleware"
	"lineup-manager/internal/service"

	"github.com/rs/zerolog"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
	Assigned  int    `json:"assigned,omitempty"`
	Required  int    `json:"required,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	body := errorResponse{
		Error:     err.Error(),
		RequestID: middleware.GetRequestID(r.Context()),
	}

	var shortfall *lineup.ShortfallError
	if errors.As(err, &shortfall) {
		body.Assigned = shortfall.Assigned
		body.Required = shortfall.Required
	}

	logger := zerolog.Ctx(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		body.Error = "internal error"
	} else {
		logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	writeJSON(w, r, status, body)
}

func statusFor(err error) int {
	var shortfall *lineup.ShortfallError
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, service.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.As(err, &shortfall):
		return http.StatusUnprocessableEntity
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, lineup.ErrSlotNotRemovable),
		errors.Is(err, lineup.ErrPlayerAssigned),
		errors.Is(err, lineup.ErrNotInRoster):
		return http.StatusConflict
	case errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrInvalidNumber),
		errors.Is(err, service.ErrInvalidPosition),
		errors.Is(err, service.ErrInvalidCSV),
		errors.Is(err, service.ErrInvalidTarget),
		errors.Is(err, lineup.ErrIndexOutOfRange),
		errors.Is(err, lineup.ErrInvalidLabel),
		errors.Is(err, lineup.ErrInvalidInning),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

var errBadRequest = errors.New("bad request")

// decode reads a JSON body into v. An empty body leaves v at its zero value.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxRequestBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return err
		}
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func pathInt(r *http.Request, name string) (int, error) {
	n, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", errBadRequest, name)
	}
	return n, nil
}
