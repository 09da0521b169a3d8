package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"contacts/internal/contact"
	"contacts/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

const (
	maxBodyBytes = 16 << 10

	internalErrorMsg = "internal server error"
)

type contactService interface {
	CreateContact(ctx context.Context, in contact.Input) (domain.Contact, error)
	UpdateContact(ctx context.Context, id int64, in contact.Input) (domain.Contact, error)
	GetContact(ctx context.Context, id int64) (domain.Contact, error)
	ListContacts(ctx context.Context, q contact.ListQuery) (domain.ContactPage, error)
	DeleteContact(ctx context.Context, id int64) error
}

type Handler struct {
	service contactService
}

func NewContactHandler(service contactService) *Handler {
	return &Handler{service: service}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// writeServiceError maps domain errors to status codes. Anything unknown is
// logged in full and answered with a generic 500.
func writeServiceError(w http.ResponseWriter, err error, handlerName string, fields logrus.Fields) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrContactNotFound):
		writeError(w, http.StatusNotFound, "contact not found")
	case errors.Is(err, domain.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, "email already in use")
	default:
		logrus.WithError(err).WithFields(fields).WithField("handler", handlerName).Error("request failed")
		writeError(w, http.StatusInternalServerError, internalErrorMsg)
	}
}

func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
