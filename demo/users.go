// Package demo is a small user service whose methods are traced with their arguments
// captured as span attributes.
package demo

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/navikt/otel-argbind/binding"
	"github.com/navikt/otel-argbind/telemetry"
	"github.com/navikt/otel-argbind/typegraph"
)

var (
	// ErrMissingUser is returned when a call names no user.
	ErrMissingUser = errors.New("demo: missing user")
	// ErrUnknownID is returned by Lookup for ids that are not registered.
	ErrUnknownID = errors.New("demo: unknown id")
)

// UserServiceClass is the declaring class of the traced UserService methods.
var UserServiceClass = typegraph.NewClass("UserService")

var (
	// LookupMethod is Lookup(String user, long[] ids).
	LookupMethod = mustMethod(binding.MethodOf(UserServiceClass, "lookup",
		func(string, []int) {}, "user", "ids"))

	// TagMethod is Tag(String user, List<String> tags).
	TagMethod = &binding.Method{
		Declaring: UserServiceClass,
		Name:      "tag",
		Params: []binding.Parameter{
			{Name: "user", Type: typegraph.String},
			{Name: "tags", Type: typegraph.ListOf(typegraph.String)},
		},
	}
)

func mustMethod(m *binding.Method, err error) *binding.Method {
	if err != nil {
		panic(err)
	}
	return m
}

// UserService keeps users and their tags in memory.
type UserService struct {
	inst *telemetry.Instrumenter

	mu    sync.RWMutex
	names map[int]string
	tags  map[string][]string
}

// NewUserService creates a service seeded with names, keyed by id.
func NewUserService(inst *telemetry.Instrumenter, names map[int]string) *UserService {
	s := &UserService{
		inst:  inst,
		names: make(map[int]string, len(names)),
		tags:  make(map[string][]string),
	}
	for id, name := range names {
		s.names[id] = name
	}
	return s
}

// Lookup returns the names registered for ids, on behalf of user.
func (s *UserService) Lookup(ctx context.Context, user string, ids []int) ([]string, error) {
	var names []string
	err := s.inst.Call(ctx, LookupMethod, []any{user, ids}, func(ctx context.Context) error {
		if user == "" {
			return ErrMissingUser
		}
		s.mu.RLock()
		defer s.mu.RUnlock()

		names = make([]string, 0, len(ids))
		for _, id := range ids {
			name, ok := s.names[id]
			if !ok {
				return fmt.Errorf("%w: %d", ErrUnknownID, id)
			}
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Tag adds tags to user and returns all tags of the user. Null tags are ignored.
func (s *UserService) Tag(ctx context.Context, user string, tags binding.List) ([]string, error) {
	var all []string
	err := s.inst.Call(ctx, TagMethod, []any{user, tags}, func(ctx context.Context) error {
		if user == "" {
			return ErrMissingUser
		}
		s.mu.Lock()
		defer s.mu.Unlock()

		current := s.tags[user]
		for i := range lenOf(tags) {
			tag, ok := tags.At(i).(string)
			if !ok || slices.Contains(current, tag) {
				continue
			}
			current = append(current, tag)
		}
		s.tags[user] = current
		all = slices.Clone(current)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

func lenOf(l binding.List) int {
	if l == nil {
		return 0
	}
	return l.Len()
}
