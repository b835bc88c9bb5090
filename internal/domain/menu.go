package domain

// MenuItemAPIResponse is a single node of the menu hierarchy endpoint
type MenuItemAPIResponse struct {
	GlobalUniqueID       string                `json:"globalUniqueId"`
	Name                 string                `json:"name"`
	Description          string                `json:"description"`
	Icon                 string                `json:"icon"`
	URL                  string                `json:"url"`
	EventName            string                `json:"eventName"`
	ParentGlobalUniqueID *string               `json:"parentGlobalUniqueId,omitempty"`
	Children             []MenuItemAPIResponse `json:"children"`
}

type MenuHierarchyValue struct {
	Items []MenuItemAPIResponse `json:"items"`
}

// MenuHierarchyResponse is the envelope returned by the menu hierarchy endpoint
type MenuHierarchyResponse struct {
	IsSuccess        bool               `json:"isSuccess"`
	IsFailure        bool               `json:"isFailure"`
	Value            MenuHierarchyValue `json:"value"`
	Errors           []string           `json:"errors"`
	ValidationErrors []string           `json:"validationErrors,omitempty"`
}

// MenuQuery identifies one menu hierarchy request
type MenuQuery struct {
	MenuType        MenuTypeCode `json:"menu_type"`
	LanguageCode    string       `json:"language_code"`
	IncludeInactive bool         `json:"include_inactive"`

	// Principal identifies a caller whose own token fetches the menu.
	// Empty means the service token, whose results are shared.
	Principal string `json:"-"`
}

// Shared reports whether the result may be served to any caller and persisted
func (q MenuQuery) Shared() bool {
	return q.Principal == ""
}

// BaseKey identifies the menu regardless of principal
func (q MenuQuery) BaseKey() string {
	return q.MenuType.String() + ":" + q.LanguageCode
}

// CacheKey is the dedupe and cache key. includeInactive is not part of it;
// callers asking for a different flag than configured bypass the cache.
func (q MenuQuery) CacheKey() string {
	if q.Principal == "" {
		return q.BaseKey()
	}
	return q.BaseKey() + ":" + q.Principal
}
