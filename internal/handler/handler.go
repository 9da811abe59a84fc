package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"shopfront/internal/auth"
	"shopfront/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

var (
	validate       = newValidator()
	errInvalidBody = model.NewDomainError(model.ErrCodeInvalidJSON, "Invalid request body.")
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes a {"detail": ...} response with the given status code.
func writeError(w http.ResponseWriter, status int, detail string, logger zerolog.Logger) {
	logger.Debug().Str("detail", detail).Int("status", status).Msg("request rejected")
	writeJSON(w, status, model.ErrorResponse{Detail: detail})
}

// handleError maps domain errors to their status code. Anything else is logged and
// reported as a generic 500.
func handleError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeError(w, statusFor(domainErr.Kind), domainErr.Message, logger)
		return
	}

	logger.Error().Err(err).Msg("request failed")
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Detail: "Internal server error."})
}

func statusFor(kind model.ErrorKind) int {
	switch kind {
	case model.KindNotFound:
		return http.StatusNotFound
	case model.KindForbidden:
		return http.StatusForbidden
	case model.KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

// decodeJSON reads the body into dst and validates it. An empty body leaves dst zeroed.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return errInvalidBody
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return model.NewDomainError(model.ErrCodeInvalidJSON, fmt.Sprintf("Invalid value for %s.", fieldErrs[0].Field()))
		}
		return errInvalidBody
	}
	return nil
}

// principal returns the authenticated caller, writing a 401 when there is none.
func principal(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (auth.Principal, bool) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrUnauthenticated.Message, logger)
		return auth.Principal{}, false
	}
	return p, true
}

// pathID parses the {id} path value.
func pathID(w http.ResponseWriter, r *http.Request, notFound *model.DomainError, logger zerolog.Logger) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, notFound.Message, logger)
		return uuid.Nil, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, model.NewDomainError(model.ErrCodeInvalidJSON, fmt.Sprintf("Invalid %s parameter.", name))
	}
	return v, nil
}
