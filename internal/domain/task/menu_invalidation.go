package task

import "superadmin/navigation/internal/domain"

// MenuInvalidationTask asks a worker to drop and refetch a cached menu.
// An empty LanguageCode invalidates all configured languages.
type MenuInvalidationTask struct {
	MenuType     domain.MenuTypeCode `json:"menu_type"`
	LanguageCode string              `json:"language_code"`
	Reason       string              `json:"reason,omitempty"`
}

func (t *MenuInvalidationTask) TaskType() string {
	return TypeMenuInvalidation
}

func (t *MenuInvalidationTask) TaskValue() ([]byte, error) {
	return DefaultTaskValue(t)
}
