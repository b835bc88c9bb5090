package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"superadmin/navigation/internal/config"
	"superadmin/navigation/internal/domain/task"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const (
	StreamPrefix = "navigation:stream:"

	fieldTaskType = "task_type"
	fieldTaskData = "task_data"

	readBlock  = 5 * time.Second
	claimCount = 10
)

// StreamName returns the stream a task type is published to
func StreamName(taskType string) string {
	return StreamPrefix + taskType
}

type Queue interface {
	AddTask(ctx context.Context, task task.Task) (string, error) // Returns message ID
	GetTask(ctx context.Context, group, consumer, stream string) (*redis.XMessage, error)
	AckTask(ctx context.Context, stream, group, msgID string) error
	CreateGroup(ctx context.Context, stream, group string) error
	AutoClaim(ctx context.Context, group, consumer, stream string, minIdleTime time.Duration) ([]redis.XMessage, error)
	EnsureStreamsExist(ctx context.Context) error
}

// MessageTask extracts the task type and payload written by AddTask
func MessageTask(msg *redis.XMessage) (taskType, data string, err error) {
	taskType, ok := msg.Values[fieldTaskType].(string)
	if !ok || taskType == "" {
		return "", "", fmt.Errorf("invalid task type in message %s", msg.ID)
	}
	data, ok = msg.Values[fieldTaskData].(string)
	if !ok {
		return "", "", fmt.Errorf("invalid task data in message %s", msg.ID)
	}
	return taskType, data, nil
}

type streamCommands interface {
	XGroupCreateMkStream(ctx context.Context, stream, group, start string) *redis.StatusCmd
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	XReadGroup(ctx context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd
	XAck(ctx context.Context, stream, group string, ids ...string) *redis.IntCmd
	XAutoClaim(ctx context.Context, a *redis.XAutoClaimArgs) *redis.XAutoClaimCmd
}

// RedisQueue carries menu tasks over one redis stream per task type
type RedisQueue struct {
	streams   streamCommands
	groupName string
}

func NewRedisQueue(ctx context.Context, redisClient *redis.Client, cfg config.RedisConfig) (Queue, error) {
	q := newRedisQueue(redisClient, cfg.ConsumerGroup)

	// Groups must exist before workers read with ">"
	if err := q.EnsureStreamsExist(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure streams exist: %w", err)
	}

	return q, nil
}

func newRedisQueue(streams streamCommands, groupName string) *RedisQueue {
	return &RedisQueue{
		streams:   streams,
		groupName: groupName,
	}
}

// CreateGroup creates the group at the stream's tail; an existing group is fine
func (q *RedisQueue) CreateGroup(ctx context.Context, stream, group string) error {
	err := q.streams.XGroupCreateMkStream(ctx, stream, group, "$").Err()
	if err != nil && strings.HasPrefix(err.Error(), "BUSYGROUP") {
		log.Debugf("Group %s already exists for stream %s", group, stream)
		return nil
	}
	return err
}

func (q *RedisQueue) AddTask(ctx context.Context, t task.Task) (string, error) {
	stream := StreamName(t.TaskType())

	payload, err := t.TaskValue()
	if err != nil {
		return "", fmt.Errorf("failed to serialize %s: %w", t.TaskType(), err)
	}

	id, err := q.streams.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			fieldTaskType: t.TaskType(),
			fieldTaskData: string(payload),
		},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("failed to publish to %s: %w", stream, err)
	}

	log.Debugf("📨 Published %s to %s as %s", t.TaskType(), stream, id)
	return id, nil
}

// GetTask blocks briefly for the next undelivered message; nil means none arrived
func (q *RedisQueue) GetTask(ctx context.Context, group, consumer, stream string) (*redis.XMessage, error) {
	streams, err := q.streams.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{stream, ">"},
		Count:    1,
		Block:    readBlock,
	}).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read from %s: %w", stream, err)
	}

	for _, s := range streams {
		if len(s.Messages) > 0 {
			return &s.Messages[0], nil
		}
	}
	return nil, nil
}

func (q *RedisQueue) AckTask(ctx context.Context, stream, group, msgID string) error {
	if err := q.streams.XAck(ctx, stream, group, msgID).Err(); err != nil {
		return fmt.Errorf("failed to ack %s on %s: %w", msgID, stream, err)
	}
	return nil
}

// AutoClaim takes over messages another consumer left pending for minIdleTime
func (q *RedisQueue) AutoClaim(ctx context.Context, group, consumer, stream string, minIdleTime time.Duration) ([]redis.XMessage, error) {
	claimed, _, err := q.streams.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   stream,
		Group:    group,
		Consumer: consumer,
		MinIdle:  minIdleTime,
		Start:    "0-0",
		Count:    claimCount,
	}).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to claim pending messages on %s: %w", stream, err)
	}
	return claimed, nil
}

// EnsureStreamsExist creates every task stream and its consumer group
func (q *RedisQueue) EnsureStreamsExist(ctx context.Context) error {
	for _, taskType := range task.Types {
		stream := StreamName(taskType)
		if err := q.CreateGroup(ctx, stream, q.groupName); err != nil {
			return fmt.Errorf("failed to create consumer group for %s: %w", taskType, err)
		}
		log.Infof("✅ Stream %s ready for group %s", stream, q.groupName)
	}
	return nil
}
