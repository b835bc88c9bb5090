package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"superadmin/navigation/internal/domain"
)

func TestUnmarshalTaskRestoresPayload(t *testing.T) {
	original := &MenuRefreshRetryTask{
		MenuType:     domain.MenuTypeUser,
		LanguageCode: "en",
		RetryCount:   3,
		Error:        "HTTP error: 503",
	}

	raw, err := original.TaskValue()
	require.NoError(t, err)

	decoded, err := UnmarshalTask[*MenuRefreshRetryTask](raw)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
	assert.Equal(t, TypeMenuRefreshRetry, decoded.TaskType())
}

func TestInvalidationTaskType(t *testing.T) {
	task := &MenuInvalidationTask{MenuType: domain.MenuTypeMain}
	assert.Equal(t, "MenuInvalidationTask", task.TaskType())
	assert.Contains(t, Types, task.TaskType())
}
