package routes

import (
	"superadmin/navigation/internal/domain"
)

// BuildRouteConfigFromMenu converts a navigation tree into a route table keyed
// by path segment. The result does not depend on the order of items.
func BuildRouteConfigFromMenu(items []domain.NavigationItem, menuType domain.MenuTypeCode) domain.RouteTable {
	table := domain.RouteTable{}
	for _, item := range flatten(items) {
		insert(table, item, menuType)
	}
	return table
}

func flatten(items []domain.NavigationItem) []domain.NavigationItem {
	var out []domain.NavigationItem
	for _, item := range items {
		out = append(out, item)
		out = append(out, flatten(item.Children)...)
	}
	return out
}

func insert(table domain.RouteTable, item domain.NavigationItem, menuType domain.MenuTypeCode) {
	segments := SplitPath(item.Href)
	if len(segments) == 0 {
		return
	}

	level := table
	for i, segment := range segments {
		key, dynamic := NormalizeSegment(segment)
		node, ok := level[key]
		if !ok {
			node = &domain.RouteConfigNode{
				Key:            key,
				TranslationKey: TranslationKey(key),
				RequiresAuth:   true,
				Dynamic:        dynamic,
				SourceMenuType: menuType.String(),
			}
			level[key] = node
		}

		if i == len(segments)-1 {
			applyItem(node, item)
			return
		}

		if node.Children == nil {
			node.Children = domain.RouteTable{}
		}
		level = node.Children
	}
}

// applyItem gives a node full metadata. Placeholders always take it; when two
// items end on the same node the one ordered first by precedes wins.
func applyItem(node *domain.RouteConfigNode, item domain.NavigationItem) {
	if !node.Placeholder() && !precedes(item, node) {
		return
	}
	node.Label = item.Name
	node.Href = item.Href
	node.Icon = item.Icon
}

// precedes orders full items ending on the same node by href, name, then icon
func precedes(item domain.NavigationItem, node *domain.RouteConfigNode) bool {
	if item.Href != node.Href {
		return item.Href < node.Href
	}
	if item.Name != node.Label {
		return item.Name < node.Label
	}
	return item.Icon < node.Icon
}
