package snapshot

import (
	"context"

	"hostpulse/internal/domain"
)

type SystemStore struct {
	Store[domain.SystemSnapshot]
}

func NewSystemStore() *SystemStore {
	return &SystemStore{}
}

// Sink records each scheduled snapshot as the latest one.
func (s *SystemStore) Sink(_ context.Context, snap domain.SystemSnapshot) {
	s.Set(snap)
}
