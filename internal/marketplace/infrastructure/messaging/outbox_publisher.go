package messaging

import (
	"context"

	"github.com/wyfcoding/marketledger/internal/marketplace/domain"
	"github.com/wyfcoding/pkg/messagequeue/outbox"
)

// outboxPublisher 基于 Outbox 模式的事件发布者实现（持久化模式）
type outboxPublisher struct {
	manager *outbox.Manager
}

// NewOutboxPublisher 创建一个新的 OutboxPublisher 实例
func NewOutboxPublisher(manager *outbox.Manager) domain.EventPublisher {
	return &outboxPublisher{manager: manager}
}

// Publish 将事件写入 outbox 表，由中继异步投递到消息队列。
func (p *outboxPublisher) Publish(ctx context.Context, topic string, key string, event any) error {
	return p.manager.PublishInTx(ctx, p.manager.DB(), topic, key, event)
}
