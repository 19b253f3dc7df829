// Package outbox 实现事务性发件箱：事件与业务变更在同一事务内落库，
// 再由后台中继异步投递到 Kafka，保证至少一次送达。
package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wyfcoding/creatorlaunch/pkg/db"
	"github.com/wyfcoding/creatorlaunch/pkg/errs"
	"github.com/wyfcoding/creatorlaunch/pkg/logger"
)

const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

// Message 发件箱消息
type Message struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey"`
	EventID   string    `gorm:"column:event_id;type:varchar(36);index;not null"`
	EventType string    `gorm:"column:event_type;type:varchar(100);index;not null"`
	Topic     string    `gorm:"column:topic;type:varchar(100);not null"`
	Key       string    `gorm:"column:msg_key;type:varchar(100)"`
	Payload   string    `gorm:"column:payload;type:text;not null"`
	Status    string    `gorm:"column:status;type:varchar(20);index;not null;default:'pending'"`
	Retries   int       `gorm:"column:retries;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName 指定表名
func (Message) TableName() string { return "outbox_messages" }

// Store 在环境事务内写入发件箱
type Store struct {
	db *gorm.DB
}

// NewStore 创建发件箱存储
func NewStore(gdb *gorm.DB) *Store {
	return &Store{db: gdb}
}

// Append 序列化事件并写入发件箱，加入 ctx 携带的事务
func (s *Store) Append(ctx context.Context, topic, eventType, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errs.Internal(err)
	}
	msg := Message{
		ID:        uuid.NewString(),
		EventID:   uuid.NewString(),
		EventType: eventType,
		Topic:     topic,
		Key:       key,
		Payload:   string(payload),
		Status:    StatusPending,
	}
	if err := db.TxFrom(ctx, s.db).WithContext(ctx).Create(&msg).Error; err != nil {
		return errs.Internal(err)
	}
	return nil
}

// Producer 消息投递接口，由 pkg/mq 的 Kafka 生产者实现
type Producer interface {
	SendRaw(ctx context.Context, topic string, key string, value []byte) error
}

// Relay 轮询发件箱并投递到消息队列
type Relay struct {
	db         *gorm.DB
	producer   Producer
	interval   time.Duration
	batchSize  int
	maxRetries int
}

// NewRelay 创建发件箱中继
func NewRelay(gdb *gorm.DB, producer Producer, interval time.Duration, batchSize, maxRetries int) *Relay {
	if batchSize <= 0 {
		batchSize = 100
	}
	if maxRetries <= 0 {
		maxRetries = 5
	}
	return &Relay{db: gdb, producer: producer, interval: interval, batchSize: batchSize, maxRetries: maxRetries}
}

// Run 循环投递直到 ctx 取消
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.dispatchBatch(ctx); err != nil {
				logger.Error(ctx, "outbox dispatch failed", "error", err)
			}
		}
	}
}

// PendingCount 返回待投递消息数，供指标上报
func (r *Relay) PendingCount(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Message{}).
		Where("status = ?", StatusPending).
		Count(&n).Error
	return n, err
}

func (r *Relay) dispatchBatch(ctx context.Context) error {
	var messages []Message
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Order("created_at ASC").
		Limit(r.batchSize).
		Find(&messages).Error
	if err != nil {
		return err
	}
	for _, msg := range messages {
		if err := r.producer.SendRaw(ctx, msg.Topic, msg.Key, []byte(msg.Payload)); err != nil {
			logger.Warn(ctx, "outbox message delivery failed",
				"event_id", msg.EventID, "event_type", msg.EventType, "retries", msg.Retries, "error", err)
			updates := map[string]any{"retries": msg.Retries + 1}
			if msg.Retries+1 >= r.maxRetries {
				updates["status"] = StatusFailed
			}
			if uerr := r.db.WithContext(ctx).Model(&Message{}).
				Where("id = ?", msg.ID).Updates(updates).Error; uerr != nil {
				return uerr
			}
			continue
		}
		if err := r.db.WithContext(ctx).Model(&Message{}).
			Where("id = ?", msg.ID).Update("status", StatusSent).Error; err != nil {
			return err
		}
	}
	return nil
}

// Cleanup 删除给定时刻之前已投递的消息
func (r *Relay) Cleanup(ctx context.Context, before time.Time) error {
	return r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", StatusSent, before).
		Delete(&Message{}).Error
}
