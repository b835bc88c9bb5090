package task

import "encoding/json"

type Task interface {
	TaskType() string
	TaskValue() ([]byte, error)
}

// Stream task types, also used as stream name suffixes
const (
	TypeMenuInvalidation = "MenuInvalidationTask"
	TypeMenuRefreshRetry = "MenuRefreshRetryTask"
)

var Types = []string{TypeMenuInvalidation, TypeMenuRefreshRetry}

// DefaultTaskValue provides a common implementation for TaskValue
func DefaultTaskValue(task interface{}) ([]byte, error) {
	return json.Marshal(task)
}

func UnmarshalTask[T Task](task []byte) (T, error) {
	var t T
	err := json.Unmarshal(task, &t)
	return t, err
}
