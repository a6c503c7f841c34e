package session

import (
	"context"
	"sync"

	"github.com/shouni/gemini-floorplan-kit/pkg/domain"
)

// --- Mocks ---

type mockGenerator struct {
	mu           sync.Mutex
	calls        int
	lastReq      domain.Requirements
	lastUnits    domain.Units
	generateFunc func(ctx context.Context, req domain.Requirements, units domain.Units) ([]domain.Image, error)
}

func (m *mockGenerator) Generate(ctx context.Context, req domain.Requirements, units domain.Units) ([]domain.Image, error) {
	m.mu.Lock()
	m.calls++
	m.lastReq = req
	m.lastUnits = units
	fn := m.generateFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req, units)
	}
	return nil, nil
}

func (m *mockGenerator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
