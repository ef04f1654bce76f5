package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/foosball-league/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "foosball-league"

	permissionDeniedMessage = "permission denied"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		http.Error(w, `{"apiVersion":"2.0","error":{"code":500,"message":"encode response","status":"INTERNAL"}}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	if mapped.HTTPStatus == http.StatusInternalServerError {
		writeInternalError(ctx, w)
		return
	}

	// Authorization failures never say which check failed.
	message := err.Error()
	if errors.Is(err, usecase.ErrUnauthorized) {
		message = permissionDeniedMessage
	}

	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: message,
				},
			},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  "INTERNAL",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "internalError",
					Message: msg,
				},
			},
		},
	})
}

// mapError checks the specific vocabulary first so the reason is precise, then falls back
// to the error kind.
func mapError(err error) mappedError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPair):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidPair", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, usecase.ErrInvalidGroup):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidGroup", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, usecase.ErrInvalidDateRange):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidDateRange", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, usecase.ErrInvalidScore):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidScore", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, usecase.ErrTooFewParticipants):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "tooFewParticipants", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, usecase.ErrDuplicateTeamName):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "duplicateTeamName", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, usecase.ErrOwnerHasTeam):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "ownerHasTeam", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, usecase.ErrDuplicateTournamentName):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "duplicateTournamentName", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, usecase.ErrUnknownTournament):
		return mappedError{HTTPStatus: http.StatusNotFound, Reason: "unknownTournament", Status: "NOT_FOUND"}
	case errors.Is(err, usecase.ErrUnknownTeam):
		return mappedError{HTTPStatus: http.StatusNotFound, Reason: "unknownTeam", Status: "NOT_FOUND"}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"}
	case errors.Is(err, usecase.ErrGroupMismatch):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "groupMismatch", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, usecase.ErrAssignmentConflict):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "assignmentConflict", Status: "ABORTED"}
	case errors.Is(err, usecase.ErrEmptyRoster):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "emptyRoster", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, usecase.ErrConflict):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "conflict", Status: "ABORTED"}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{HTTPStatus: http.StatusUnauthorized, Reason: "unauthorized", Status: "UNAUTHENTICATED"}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}
	}
}
