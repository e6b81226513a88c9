package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"logistics-backoffice/internal/domain"
	"logistics-backoffice/internal/platform/logger"
	"logistics-backoffice/internal/platform/obs"
	"logistics-backoffice/internal/ports"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 1000
	maxBodyBytes     = 1 << 20
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// notblank rejects whitespace-only strings.
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

func writeJSON(w http.ResponseWriter, r *http.Request, log *logger.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && log != nil {
		log.Warn("encode failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log *logger.Logger, status int, msg string) {
	writeJSON(w, r, log, status, map[string]string{"error": msg})
}

// writeServiceError maps domain error kinds to HTTP statuses. Unexpected
// errors are logged and reported as a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, log *logger.Logger, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		writeError(w, r, log, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, log, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, r, log, http.StatusConflict, err.Error())
	default:
		if log != nil {
			log.Error(op+" failed", "req_id", obs.RequestID(r.Context()), "error", err)
		}
		writeError(w, r, log, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads exactly one JSON object into dst and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json body: %w", domain.ErrInvalidArgument)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("body must contain only one JSON object: %w", domain.ErrInvalidArgument)
	}

	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%s: %w", describeValidation(err), domain.ErrInvalidArgument)
	}
	return nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request"
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", strings.ToLower(fe.Field()), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

// queryInt parses an integer query parameter, returning fallback when absent.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", name, domain.ErrInvalidArgument)
	}
	return n, nil
}

// pageFromQuery reads skip/limit passthrough parameters.
func pageFromQuery(r *http.Request) (ports.Page, error) {
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		return ports.Page{}, err
	}
	limit, err := queryInt(r, "limit", defaultPageLimit)
	if err != nil {
		return ports.Page{}, err
	}

	if skip < 0 {
		return ports.Page{}, fmt.Errorf("skip must not be negative: %w", domain.ErrInvalidArgument)
	}
	if limit < 1 || limit > maxPageLimit {
		return ports.Page{}, fmt.Errorf("limit must be between 1 and %d: %w", maxPageLimit, domain.ErrInvalidArgument)
	}
	return ports.Page{Skip: skip, Limit: limit}, nil
}

func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%s must be a positive integer: %w", name, domain.ErrInvalidArgument)
	}
	return id, nil
}
