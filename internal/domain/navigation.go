package domain

// NavigationItem is one navigable menu entry as consumed by the sidebar
type NavigationItem struct {
	Name     string           `json:"name"`
	Href     string           `json:"href"`
	Icon     Icon             `json:"icon"`
	Children []NavigationItem `json:"children,omitempty"`
}

// CloneNavigation returns a deep copy so callers can't alias cached arrays
func CloneNavigation(items []NavigationItem) []NavigationItem {
	if items == nil {
		return nil
	}
	out := make([]NavigationItem, len(items))
	for i, item := range items {
		out[i] = item
		out[i].Children = CloneNavigation(item.Children)
	}
	return out
}

// MenuState mirrors what the sidebar and breadcrumb consumers need from a menu query
type MenuState struct {
	Items     []NavigationItem `json:"items"`
	IsLoading bool             `json:"is_loading"`
	IsError   bool             `json:"is_error"`
	Error     string           `json:"error,omitempty"`
	// Fallback is set when Items came from the fallback policy instead of the API
	Fallback bool `json:"fallback"`
}
