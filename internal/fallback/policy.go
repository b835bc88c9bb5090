package fallback

import (
	"context"

	"superadmin/navigation/internal/domain"

	log "github.com/sirupsen/logrus"
)

// SnapshotLoader returns the last navigation successfully fetched for a query.
// It returns nil items and a nil error when nothing was stored.
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context, query domain.MenuQuery) ([]domain.NavigationItem, error)
}

// Policy decides what navigation to show when the menu API fails
type Policy struct {
	UseFallback bool
	Development bool
	Snapshots   SnapshotLoader
}

// Navigation never returns nil. Production and disabled policies yield an
// empty list so users never see data that may not apply to them.
func (p Policy) Navigation(ctx context.Context, query domain.MenuQuery) []domain.NavigationItem {
	if !p.UseFallback || !p.Development {
		return []domain.NavigationItem{}
	}

	// Snapshots hold service-token navigation only
	if p.Snapshots != nil && query.Shared() {
		items, err := p.Snapshots.LoadSnapshot(ctx, query)
		if err != nil {
			log.Warnf("⚠️ Failed to load snapshot for %s: %v", query.CacheKey(), err)
		} else if len(items) > 0 {
			log.Infof("📦 Using last known navigation snapshot for %s", query.CacheKey())
			return items
		}
	}

	log.Infof("🧪 Using mock navigation for %s", query.CacheKey())
	return Mock(query.MenuType)
}
