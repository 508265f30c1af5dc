// Package repotest provides store doubles for tests.
package repotest

import (
	"context"
	"sync/atomic"

	"github.com/sangkips/preferences-api/internal/domain/repository"
)

// Store counts calls and either delegates to Inner or fails with Err
type Store[T any, P any] struct {
	Inner repository.PreferenceStore[T, P]
	Err   error

	calls atomic.Int64
}

// Calls returns how many store operations were invoked
func (s *Store[T, P]) Calls() int64 {
	return s.calls.Load()
}

func (s *Store[T, P]) Fetch(ctx context.Context, userID string) (*T, error) {
	s.calls.Add(1)
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Inner.Fetch(ctx, userID)
}

func (s *Store[T, P]) FetchOrDefault(ctx context.Context, userID string) (*T, error) {
	s.calls.Add(1)
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Inner.FetchOrDefault(ctx, userID)
}

func (s *Store[T, P]) UpsertPartial(ctx context.Context, userID string, patch P) (*T, error) {
	s.calls.Add(1)
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Inner.UpsertPartial(ctx, userID, patch)
}
