package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasker-api/internal/api/shared"
	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/platform/logger"
	"github.com/phrazzld/tasker-api/internal/service/auth"
)

// DateLayout is the format of the date filter on task listings.
const DateLayout = "2006-01-02"

// getUserIDFromContext extracts the authenticated user's id from the request
// context, where the authentication middleware put it.
func getUserIDFromContext(r *http.Request) (int64, bool) {
	return shared.UserIDFromContext(r.Context())
}

// getPathID extracts a positive integer id from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", nil)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "must be a positive integer", nil)
	}

	return id, nil
}

// handleUserIDAndPathID extracts both the user ID from context and an id
// from the path parameters. It writes an error response if either
// extraction fails.
func handleUserIDAndPathID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (int64, int64, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, auth.ErrMissingToken, "")
		return 0, 0, false
	}

	pathID, err := getPathID(r, paramName)
	if err != nil {
		log.Debug("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return 0, 0, false
	}

	return userID, pathID, true
}

// parseTaskQuery reads listing criteria from the query string. Dates are
// calendar days in loc. An unknown sort key falls back to the default order;
// a malformed priority, date, limit or offset is a validation error.
func parseTaskQuery(r *http.Request, loc *time.Location) (domain.TaskQuery, error) {
	values := r.URL.Query()
	var q domain.TaskQuery

	if raw := strings.TrimSpace(values.Get("priority")); raw != "" {
		p, err := domain.ParsePriority(raw)
		if err != nil {
			return domain.TaskQuery{}, err
		}
		q.Priority = &p
	}

	if raw := strings.TrimSpace(values.Get("date")); raw != "" {
		if loc == nil {
			loc = time.UTC
		}
		day, err := time.ParseInLocation(DateLayout, raw, loc)
		if err != nil {
			return domain.TaskQuery{}, domain.NewValidationError("date", "must be formatted as YYYY-MM-DD", nil)
		}
		q.Date = &day
	}

	q.TitleContains = values.Get("title")
	q.Sort = domain.ParseTaskSort(values.Get("sort"))

	var err error
	if q.Limit, err = nonNegativeParam(values.Get("limit"), "limit"); err != nil {
		return domain.TaskQuery{}, err
	}
	if q.Offset, err = nonNegativeParam(values.Get("offset"), "offset"); err != nil {
		return domain.TaskQuery{}, err
	}

	return q, nil
}

func nonNegativeParam(raw, name string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domain.NewValidationError(name, "must be a non-negative integer", nil)
	}
	return n, nil
}
