package task

import "superadmin/navigation/internal/domain"

type MenuRefreshRetryTask struct {
	MenuType     domain.MenuTypeCode `json:"menu_type"`
	LanguageCode string              `json:"language_code"`
	RetryCount   int                 `json:"retry_count"` // Number of times this refresh has been retried
	Error        string              `json:"error"`       // Error message from the last failure
}

func (t *MenuRefreshRetryTask) TaskType() string {
	return TypeMenuRefreshRetry
}

func (t *MenuRefreshRetryTask) TaskValue() ([]byte, error) {
	return DefaultTaskValue(t)
}
