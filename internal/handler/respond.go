package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/templui/soulsync/internal/ctxkeys"
	"github.com/templui/soulsync/internal/model"
	"github.com/templui/soulsync/internal/repository"
	"github.com/templui/soulsync/internal/service"
	"github.com/templui/soulsync/internal/ui"
	"github.com/templui/soulsync/internal/validation"
)

// maxBodySize fits a 5MB avatar after base64 encoding.
const maxBodySize = 8 << 20

var errMalformedBody = errors.New("malformed request body")

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		return fmt.Errorf("%w: %w", errMalformedBody, err)
	}
	return nil
}

// statusFor maps service errors to HTTP status codes. Anything unknown is a
// server error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errMalformedBody),
		errors.Is(err, service.ErrInvalidFormat),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrMissingUsername),
		errors.Is(err, service.ErrMissingOccupation),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, validation.ErrPasswordTooLong),
		errors.Is(err, validation.ErrNameTooLong),
		errors.Is(err, service.ErrInvalidAvatar),
		errors.Is(err, service.ErrInvalidMoodScore),
		errors.Is(err, service.ErrMoodNoteTooLong),
		errors.Is(err, service.ErrEmptyJournalEntry),
		errors.Is(err, service.ErrHabitTitleRequired),
		errors.Is(err, service.ErrInvalidHabitStatus),
		errors.Is(err, service.ErrFutureCheckIn),
		errors.Is(err, service.ErrUnknownCategory),
		errors.Is(err, service.ErrPostTitleRequired),
		errors.Is(err, service.ErrPostBodyRequired),
		errors.Is(err, service.ErrReplyRequired):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrInvalidAdminCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrWrongPortal),
		errors.Is(err, service.ErrPendingVerification):
		return http.StatusForbidden
	case errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrHabitArchived):
		return http.StatusConflict
	case errors.Is(err, repository.ErrJournalEntryNotFound),
		errors.Is(err, repository.ErrHabitNotFound),
		errors.Is(err, repository.ErrPostNotFound),
		errors.Is(err, repository.ErrNotificationNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err, "path", r.URL.Path)
		ui.Error(w, status, "something went wrong, please try again")
		return
	}

	// Wrapped details of these would leak account state or decoder internals
	message := err.Error()
	for _, sentinel := range []error{errMalformedBody, service.ErrWrongPortal, service.ErrNotFound} {
		if errors.Is(err, sentinel) {
			message = sentinel.Error()
			break
		}
	}
	ui.Error(w, status, message)
}

// sessionFrom returns the request's session or answers 401. Guarded routes
// always have one.
func sessionFrom(w http.ResponseWriter, r *http.Request) (*model.Session, bool) {
	session := ctxkeys.Session(r.Context())
	if session == nil {
		ui.Error(w, http.StatusUnauthorized, "not signed in")
		return nil, false
	}
	return session, true
}
