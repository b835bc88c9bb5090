package domain

import "sort"

// WildcardKey replaces purely numeric path segments in route tables
const WildcardKey = "[id]"

// RouteConfigNode describes one URL path segment
type RouteConfigNode struct {
	Key            string     `json:"key"`
	TranslationKey string     `json:"translation_key"`
	Label          string     `json:"label,omitempty"`
	Href           string     `json:"href,omitempty"`
	Icon           Icon       `json:"icon,omitempty"`
	RequiresAuth   bool       `json:"requires_auth"`
	Dynamic        bool       `json:"dynamic"`
	SourceMenuType string     `json:"source_menu_type"`
	Children       RouteTable `json:"children,omitempty"`
}

// Placeholder reports whether the node was created only as an intermediate segment
func (n *RouteConfigNode) Placeholder() bool {
	return n.Href == ""
}

// Clone deep-copies the node and its subtree
func (n *RouteConfigNode) Clone() *RouteConfigNode {
	if n == nil {
		return nil
	}
	c := *n
	c.Children = n.Children.Clone()
	return &c
}

// RouteTable maps a path segment to its configuration
type RouteTable map[string]*RouteConfigNode

func (t RouteTable) Clone() RouteTable {
	if t == nil {
		return nil
	}
	out := make(RouteTable, len(t))
	for k, v := range t {
		out[k] = v.Clone()
	}
	return out
}

// Keys returns the table's keys in sorted order
func (t RouteTable) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Depth is the number of levels in the deepest branch
func (t RouteTable) Depth() int {
	depth := 0
	for _, node := range t {
		if d := 1 + node.Children.Depth(); d > depth {
			depth = d
		}
	}
	return depth
}

// SourcedRouteTable pairs a route table with the menu type it was built from
type SourcedRouteTable struct {
	MenuType    MenuTypeCode
	RouteConfig RouteTable
}
