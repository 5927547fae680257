package demo

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/navikt/otel-argbind/binding"
	"github.com/navikt/otel-argbind/logging"
)

// PathPrefix is the path prefix served by Handler.
const PathPrefix = "/users/"

type response struct {
	User  string   `json:"user"`
	Names []string `json:"names,omitempty"`
	Tags  []string `json:"tags,omitempty"`
	Error string   `json:"error,omitempty"`
}

// Handler serves
//
//	GET  /users/lookup?user=alice&ids=1,2
//	POST /users/tag?user=alice&tags=a,,b
//
// An empty entry in tags is passed on as a null element.
func Handler(svc *UserService) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+PathPrefix+"lookup", func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		user := r.URL.Query().Get("user")

		ids, err := parseIDs(r.URL.Query().Get("ids"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, response{User: user, Error: err.Error()})
			return
		}

		names, err := svc.Lookup(ctx, user, ids)
		if err != nil {
			logging.FromContext(ctx).Warn("Lookup failed",
				slog.String("user", user),
				slog.String("error", err.Error()),
			)
			writeJSON(w, statusOf(err), response{User: user, Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, response{User: user, Names: names})
	})
	mux.HandleFunc("POST "+PathPrefix+"tag", func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		user := r.URL.Query().Get("user")

		tags, err := svc.Tag(ctx, user, parseTags(r.URL.Query().Get("tags")))
		if err != nil {
			writeJSON(w, statusOf(err), response{User: user, Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, response{User: user, Tags: tags})
	})
	return mux
}

func parseIDs(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int, len(parts))
	for i, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.New("ids must be a comma separated list of integers")
		}
		ids[i] = id
	}
	return ids, nil
}

func parseTags(raw string) binding.List {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make(binding.Values, len(parts))
	for i, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags[i] = p
		}
	}
	return tags
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrMissingUser):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnknownID):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to write response", slog.String("error", err.Error()))
	}
}
