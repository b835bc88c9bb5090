package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"superadmin/navigation/internal/domain"
	"superadmin/navigation/internal/domain/task"
)

type fakeStreams struct {
	groups   map[string]string
	added    []*redis.XAddArgs
	read     *redis.XReadGroupArgs
	readErr  error
	messages map[string][]redis.XMessage
	acked    []string
	claim    *redis.XAutoClaimArgs
	claimed  []redis.XMessage
}

func newFakeStreams() *fakeStreams {
	return &fakeStreams{groups: map[string]string{}, messages: map[string][]redis.XMessage{}}
}

func (f *fakeStreams) XGroupCreateMkStream(_ context.Context, stream, group, _ string) *redis.StatusCmd {
	if _, ok := f.groups[stream]; ok {
		return redis.NewStatusResult("", errors.New("BUSYGROUP Consumer Group name already exists"))
	}
	f.groups[stream] = group
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeStreams) XAdd(_ context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.added = append(f.added, a)
	id := "1-0"
	f.messages[a.Stream] = append(f.messages[a.Stream], redis.XMessage{ID: id, Values: a.Values.(map[string]interface{})})
	return redis.NewStringResult(id, nil)
}

func (f *fakeStreams) XReadGroup(_ context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd {
	f.read = a
	if f.readErr != nil {
		return redis.NewXStreamSliceCmdResult(nil, f.readErr)
	}
	stream := a.Streams[0]
	pending := f.messages[stream]
	if len(pending) == 0 {
		return redis.NewXStreamSliceCmdResult(nil, redis.Nil)
	}
	f.messages[stream] = pending[1:]
	return redis.NewXStreamSliceCmdResult([]redis.XStream{{Stream: stream, Messages: pending[:1]}}, nil)
}

func (f *fakeStreams) XAck(_ context.Context, stream, _ string, ids ...string) *redis.IntCmd {
	for _, id := range ids {
		f.acked = append(f.acked, stream+"/"+id)
	}
	return redis.NewIntResult(int64(len(ids)), nil)
}

func (f *fakeStreams) XAutoClaim(_ context.Context, a *redis.XAutoClaimArgs) *redis.XAutoClaimCmd {
	f.claim = a
	cmd := redis.NewXAutoClaimCmd(context.Background())
	cmd.SetVal(f.claimed, "0-0")
	return cmd
}

func TestEnsureStreamsExistCreatesGroupPerTaskType(t *testing.T) {
	streams := newFakeStreams()
	q := newRedisQueue(streams, "navigation_consumer")

	require.NoError(t, q.EnsureStreamsExist(context.Background()))
	require.NoError(t, q.EnsureStreamsExist(context.Background()), "existing groups are not an error")

	assert.Equal(t, map[string]string{
		"navigation:stream:MenuInvalidationTask": "navigation_consumer",
		"navigation:stream:MenuRefreshRetryTask": "navigation_consumer",
	}, streams.groups)
}

func TestAddTaskThenGetTask(t *testing.T) {
	streams := newFakeStreams()
	q := newRedisQueue(streams, "navigation_consumer")
	ctx := context.Background()

	id, err := q.AddTask(ctx, &task.MenuInvalidationTask{MenuType: domain.MenuTypeMain, LanguageCode: "es", Reason: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "1-0", id)
	require.Len(t, streams.added, 1)
	assert.Equal(t, "navigation:stream:MenuInvalidationTask", streams.added[0].Stream)

	stream := StreamName(task.TypeMenuInvalidation)
	msg, err := q.GetTask(ctx, "navigation_consumer", "invalidation-worker-1", stream)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, []string{stream, ">"}, streams.read.Streams)
	assert.Equal(t, int64(1), streams.read.Count)

	taskType, data, err := MessageTask(msg)
	require.NoError(t, err)
	assert.Equal(t, task.TypeMenuInvalidation, taskType)

	decoded, err := task.UnmarshalTask[*task.MenuInvalidationTask]([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, "edited", decoded.Reason)

	require.NoError(t, q.AckTask(ctx, stream, "navigation_consumer", msg.ID))
	assert.Equal(t, []string{stream + "/1-0"}, streams.acked)
}

func TestGetTaskWithoutMessages(t *testing.T) {
	q := newRedisQueue(newFakeStreams(), "navigation_consumer")

	msg, err := q.GetTask(context.Background(), "navigation_consumer", "c", StreamName(task.TypeMenuRefreshRetry))
	require.NoError(t, err)
	assert.Nil(t, msg)
}

func TestGetTaskReadError(t *testing.T) {
	streams := newFakeStreams()
	streams.readErr = errors.New("connection reset")
	q := newRedisQueue(streams, "navigation_consumer")

	_, err := q.GetTask(context.Background(), "navigation_consumer", "c", StreamName(task.TypeMenuRefreshRetry))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "navigation:stream:MenuRefreshRetryTask")
}

func TestAutoClaimRequestsBoundedBatch(t *testing.T) {
	streams := newFakeStreams()
	streams.claimed = []redis.XMessage{{ID: "3-0"}, {ID: "4-0"}}
	q := newRedisQueue(streams, "navigation_consumer")

	stream := StreamName(task.TypeMenuRefreshRetry)
	claimed, err := q.AutoClaim(context.Background(), "navigation_consumer", "autoclaimer", stream, 2*time.Minute)
	require.NoError(t, err)
	assert.Len(t, claimed, 2)

	require.NotNil(t, streams.claim)
	assert.Equal(t, stream, streams.claim.Stream)
	assert.Equal(t, int64(10), streams.claim.Count)
	assert.Equal(t, "0-0", streams.claim.Start)
	assert.Equal(t, 2*time.Minute, streams.claim.MinIdle)
}

func TestMessageTaskRejectsMalformedMessages(t *testing.T) {
	_, _, err := MessageTask(&redis.XMessage{ID: "1-0", Values: map[string]interface{}{"task_data": "{}"}})
	require.Error(t, err)

	_, _, err = MessageTask(&redis.XMessage{ID: "1-0", Values: map[string]interface{}{"task_type": task.TypeMenuInvalidation}})
	require.Error(t, err)
}
