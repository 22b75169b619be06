package templates

import (
	"context"
	"slices"
	"sort"
	"sync"
)

// MemoryStorage is an in-memory implementation of the Storage interface.
// Suitable for development and testing.
type MemoryStorage struct {
	templates map[string]Template // id -> template
	names     map[string]string   // name -> id
	mu        sync.RWMutex
}

// NewMemoryStorage creates a new in-memory template storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		templates: make(map[string]Template),
		names:     make(map[string]string),
	}
}

func (s *MemoryStorage) Create(ctx context.Context, tpl Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.names[tpl.Name]; taken {
		return ErrDuplicateName
	}

	tpl.Variables = slices.Clone(tpl.Variables)
	s.templates[tpl.ID] = tpl
	s.names[tpl.Name] = tpl.ID
	return nil
}

func (s *MemoryStorage) Update(ctx context.Context, tpl Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.templates[tpl.ID]
	if !exists {
		return ErrTemplateNotFound
	}
	if owner, taken := s.names[tpl.Name]; taken && owner != tpl.ID {
		return ErrDuplicateName
	}

	delete(s.names, existing.Name)
	tpl.Variables = slices.Clone(tpl.Variables)
	s.templates[tpl.ID] = tpl
	s.names[tpl.Name] = tpl.ID
	return nil
}

func (s *MemoryStorage) Get(ctx context.Context, id string) (*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tpl, exists := s.templates[id]
	if !exists {
		return nil, ErrTemplateNotFound
	}

	tpl.Variables = slices.Clone(tpl.Variables)
	return &tpl, nil
}

func (s *MemoryStorage) GetByName(ctx context.Context, name string) (*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.names[name]
	if !exists {
		return nil, ErrTemplateNotFound
	}

	tpl := s.templates[id]
	tpl.Variables = slices.Clone(tpl.Variables)
	return &tpl, nil
}

func (s *MemoryStorage) List(ctx context.Context, includeInactive bool) ([]Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listed := make([]Template, 0, len(s.templates))
	for _, tpl := range s.templates {
		if !tpl.Active && !includeInactive {
			continue
		}
		tpl.Variables = slices.Clone(tpl.Variables)
		listed = append(listed, tpl)
	}

	sort.Slice(listed, func(i, j int) bool {
		return listed[i].CreatedAt.After(listed[j].CreatedAt)
	})

	return listed, nil
}
