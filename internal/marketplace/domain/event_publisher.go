package domain

import "context"

// EventPublisher 领域事件发布端口。持久化模式下由 Outbox 实现，
// 内存模式下为空实现。
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}
