package demo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/navikt/otel-argbind/binding"
	"github.com/navikt/otel-argbind/config"
	"github.com/navikt/otel-argbind/telemetry"
)

func newService(t *testing.T) (*UserService, *tracetest.SpanRecorder) {
	t.Helper()
	spans := tracetest.NewSpanRecorder()
	inst, err := telemetry.NewInstrumenter(true, config.Default().Naming(),
		telemetry.WithTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))),
	)
	require.NoError(t, err)
	return NewUserService(inst, map[int]string{1: "Ada", 2: "Grace"}), spans
}

func lastSpanAttrs(t *testing.T, spans *tracetest.SpanRecorder) (string, map[attribute.Key]attribute.Value) {
	t.Helper()
	ended := spans.Ended()
	require.NotEmpty(t, ended)
	span := ended[len(ended)-1]
	out := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		out[kv.Key] = kv.Value
	}
	return span.Name(), out
}

func TestMethods(t *testing.T) {
	assert.Equal(t, "UserService.lookup(String,long[])", LookupMethod.String())
	assert.Equal(t, "UserService.tag(String,List<String>)", TagMethod.String())
}

func TestLookup(t *testing.T) {
	svc, spans := newService(t)

	names, err := svc.Lookup(context.Background(), "alice", []int{2, 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Grace", "Ada"}, names)

	name, attrs := lastSpanAttrs(t, spans)
	assert.Equal(t, "UserService.lookup", name)
	assert.Equal(t, "alice", attrs["user.name"].AsString())
	assert.Equal(t, []int64{2, 1}, attrs["user.ids"].AsInt64Slice())
}

func TestLookup_Errors(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Lookup(context.Background(), "", []int{1})
	assert.ErrorIs(t, err, ErrMissingUser)

	_, err = svc.Lookup(context.Background(), "alice", []int{9})
	assert.ErrorIs(t, err, ErrUnknownID)
}

func TestTag(t *testing.T) {
	svc, spans := newService(t)

	tags, err := svc.Tag(context.Background(), "alice", binding.Values{"admin", nil, "ops"})
	require.NoError(t, err)
	assert.Equal(t, []string{"admin", "ops"}, tags)

	tags, err = svc.Tag(context.Background(), "alice", binding.Values{"ops", "dev"})
	require.NoError(t, err)
	assert.Equal(t, []string{"admin", "ops", "dev"}, tags)

	_, attrs := lastSpanAttrs(t, spans)
	assert.Equal(t, "alice", attrs["user.name"].AsString())
	assert.Equal(t, []string{"ops", "dev"}, attrs["user.tags"].AsStringSlice())
}

func TestHandler(t *testing.T) {
	svc, spans := newService(t)
	handler := Handler(svc)

	tests := []struct {
		name   string
		method string
		target string
		status int
		want   response
	}{
		{
			name:   "lookup",
			method: http.MethodGet,
			target: "/users/lookup?user=alice&ids=1,2",
			status: http.StatusOK,
			want:   response{User: "alice", Names: []string{"Ada", "Grace"}},
		},
		{
			name:   "lookup unknown id",
			method: http.MethodGet,
			target: "/users/lookup?user=alice&ids=3",
			status: http.StatusNotFound,
			want:   response{User: "alice", Error: "demo: unknown id: 3"},
		},
		{
			name:   "lookup bad ids",
			method: http.MethodGet,
			target: "/users/lookup?user=alice&ids=x",
			status: http.StatusBadRequest,
			want:   response{User: "alice", Error: "ids must be a comma separated list of integers"},
		},
		{
			name:   "tag with null element",
			method: http.MethodPost,
			target: "/users/tag?user=bob&tags=a,,b",
			status: http.StatusOK,
			want:   response{User: "bob", Tags: []string{"a", "b"}},
		},
		{
			name:   "tag without user",
			method: http.MethodPost,
			target: "/users/tag?tags=a",
			status: http.StatusBadRequest,
			want:   response{Error: "demo: missing user"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.status, rec.Code)
			var got response
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.want, got)
		})
	}

	_, attrs := lastSpanAttrs(t, spans)
	assert.Equal(t, []string{"a"}, attrs["user.tags"].AsStringSlice())
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	svc, _ := newService(t)
	rec := httptest.NewRecorder()

	Handler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/tag?user=a", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
