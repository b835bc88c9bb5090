package domain

type BreadcrumbItem struct {
	Name     string `json:"name"`
	Href     string `json:"href"`
	Current  bool   `json:"current"`
	Icon     Icon   `json:"icon,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}
