package messaging

import (
	"context"

	"github.com/wyfcoding/marketledger/internal/marketplace/domain"
)

// noopPublisher 事件发布者的空实现，非持久化模式下使用。
type noopPublisher struct{}

// NewNoopPublisher 创建空事件发布者。
func NewNoopPublisher() domain.EventPublisher {
	return &noopPublisher{}
}

func (p *noopPublisher) Publish(ctx context.Context, topic string, key string, event any) error {
	return nil
}
