package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/wstore/webshop/internal/common"
)

// writeServiceError is the single boundary that maps the error taxonomy to
// HTTP status codes. Every failure is raised once where it is detected and
// travels here unchanged; nothing is retried.
func (s *Server) writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrorAlreadyExists),
		errors.Is(err, common.ErrorUnknownToken):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrorMissingToken),
		errors.Is(err, common.ErrorMalformedHeader),
		errors.Is(err, common.ErrorInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrorInvalidCredentials),
		errors.Is(err, common.ErrorForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrorNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		s.logger.Error(ctx, "unexpected error", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "unexpected error"})
	}
}

// writeValidation reports a boundary validation failure with its message.
func (s *Server) writeValidation(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// writeRefreshError is the cookie-path variant of the boundary: on the
// refresh endpoint a missing or unverifiable token is a bad request, not an
// authentication challenge.
func (s *Server) writeRefreshError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorMissingToken),
		errors.Is(err, common.ErrorInvalidToken):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		s.writeServiceError(ctx, w, err)
	}
}
