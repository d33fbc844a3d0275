package area

import (
	"fmt"
	"sync"

	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/apperror"
)

// Registry keeps the areas of the server by id.
type Registry struct {
	mu    sync.RWMutex
	areas map[string]*Area
}

func NewRegistry() *Registry {
	return &Registry{
		areas: make(map[string]*Area),
	}
}

func (that *Registry) GetOrCreate(id string) *Area {
	that.mu.Lock()
	defer that.mu.Unlock()

	existing, ok := that.areas[id]
	if !ok {
		existing = New(id)
		that.areas[id] = existing
	}

	return existing
}

func (that *Registry) Get(id string) (*Area, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	existing, ok := that.areas[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrAreaNotFound, id)
	}

	return existing, nil
}

func (that *Registry) Remove(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.areas, id)
}

func (that *Registry) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.areas)
}
