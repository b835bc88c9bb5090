package breadcrumb

import (
	"sync"

	"superadmin/navigation/internal/domain"
)

const defaultMemoSize = 1024

// Memo caches resolved trails per scope and pathname for one route table
// generation. A new generation drops every entry. Callers resolving against
// different tables must use different scopes.
type Memo struct {
	resolver *Resolver
	maxSize  int

	mu         sync.Mutex
	generation uint64
	entries    map[string][]domain.BreadcrumbItem
}

func NewMemo(resolver *Resolver, maxSize int) *Memo {
	if maxSize <= 0 {
		maxSize = defaultMemoSize
	}
	return &Memo{
		resolver: resolver,
		maxSize:  maxSize,
		entries:  make(map[string][]domain.BreadcrumbItem),
	}
}

func (m *Memo) Resolve(scope, pathname string, table domain.RouteTable, generation uint64) []domain.BreadcrumbItem {
	key := scope + "\x00" + pathname

	m.mu.Lock()
	if generation != m.generation {
		m.generation = generation
		m.entries = make(map[string][]domain.BreadcrumbItem)
	}
	if cached, ok := m.entries[key]; ok {
		m.mu.Unlock()
		return append([]domain.BreadcrumbItem(nil), cached...)
	}
	m.mu.Unlock()

	items := m.resolver.Resolve(pathname, table)

	m.mu.Lock()
	defer m.mu.Unlock()
	if generation == m.generation {
		if len(m.entries) >= m.maxSize {
			m.entries = make(map[string][]domain.BreadcrumbItem)
		}
		m.entries[key] = items
	}
	return append([]domain.BreadcrumbItem(nil), items...)
}
