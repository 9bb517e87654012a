package consumer

import (
	"context"
	"encoding/json"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/wyfcoding/marketledger/internal/marketplace/application"
	"github.com/wyfcoding/marketledger/internal/marketplace/domain"
	"github.com/wyfcoding/pkg/messagequeue/kafka"
)

// TradeFeedHandler 消费成交事件流，驱动行情投影。
type TradeFeedHandler struct {
	projection *application.TickerProjectionService
	logger     *slog.Logger
}

// NewTradeFeedHandler 创建成交事件处理器实例
func NewTradeFeedHandler(projection *application.TickerProjectionService, logger *slog.Logger) *TradeFeedHandler {
	return &TradeFeedHandler{projection: projection, logger: logger}
}

// Handle 处理一条成交消息。反序列化失败返回错误交由消费框架重试。
func (h *TradeFeedHandler) Handle(ctx context.Context, msg kafkago.Message) error {
	var event domain.TradeExecutedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		h.logger.ErrorContext(ctx, "failed to unmarshal trade event", "error", err)
		return err
	}
	if event.ProductName == "" {
		return nil
	}
	return h.projection.Apply(ctx, event)
}

// Subscribe 挂接到 kafka 消费者。
func (h *TradeFeedHandler) Subscribe(ctx context.Context, consumer *kafka.Consumer) {
	consumer.Start(ctx, 1, h.Handle)
}
