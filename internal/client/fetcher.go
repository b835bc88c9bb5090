package client

import (
	"context"
	"fmt"

	"superadmin/navigation/internal/domain"
)

// NavigationFetcher loads a menu hierarchy and converts it to navigation items
type NavigationFetcher struct {
	client MenuClient
}

func NewNavigationFetcher(client MenuClient) *NavigationFetcher {
	return &NavigationFetcher{client: client}
}

func (f *NavigationFetcher) Fetch(ctx context.Context, query domain.MenuQuery) ([]domain.NavigationItem, error) {
	nodes, err := f.client.GetMenuHierarchy(ctx, query)
	if err != nil {
		return nil, err
	}

	items, err := ToNavigationItems(nodes)
	if err != nil {
		return nil, fmt.Errorf("failed to transform menu %s: %w", query.CacheKey(), err)
	}
	return items, nil
}
