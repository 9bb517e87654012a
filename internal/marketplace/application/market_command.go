package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wyfcoding/marketledger/internal/marketplace/domain"
	"github.com/wyfcoding/pkg/idgen"
	"github.com/wyfcoding/pkg/logging"
)

// RegisterProductCommand 注册产品命令
type RegisterProductCommand struct {
	ID              string
	Name            string
	Category        string
	InitialQuantity int
}

// UpsertOfferCommand 创建/合并报价命令
type UpsertOfferCommand struct {
	ProductName   string
	Seller        string
	Price         float64
	QuantityDelta int
}

// PurchaseCommand 购买命令
type PurchaseCommand struct {
	ProductName string
	Seller      string
	Quantity    int
}

// MarketCommandService 市场写路径：注册产品、报价 upsert、购买。
// 校验失败返回 (false, nil)，基础设施失败返回非 nil error，二者不混用。
type MarketCommandService struct {
	repo      domain.MarketRepository
	publisher domain.EventPublisher
}

// NewMarketCommandService 创建市场命令服务实例
func NewMarketCommandService(repo domain.MarketRepository, publisher domain.EventPublisher) *MarketCommandService {
	return &MarketCommandService{repo: repo, publisher: publisher}
}

// RegisterProduct 注册产品；初始数量为正时以基准价种入保留卖家 "Stock" 的报价。
// 重复注册的冲突策略由存储实现决定（见 domain.MarketRepository）：登记未被
// 接纳时整体不生效，不挂库存也不发事件。
func (s *MarketCommandService) RegisterProduct(ctx context.Context, cmd RegisterProductCommand) error {
	created, err := s.repo.UpsertProduct(ctx, cmd.ID, cmd.Name, cmd.Category)
	if err != nil {
		return err
	}
	if !created {
		logging.Info(ctx, "product registration not admitted", "product", cmd.Name)
		return nil
	}

	if cmd.InitialQuantity > 0 {
		ok, err := s.repo.UpsertOffer(ctx, cmd.ID, domain.StockSeller, domain.BaselineListedPrice, cmd.InitialQuantity)
		if err != nil {
			return err
		}
		if !ok {
			logging.Warn(ctx, "initial stock offer rejected", "product", cmd.Name)
		}
	}

	s.publish(ctx, domain.ProductRegisteredTopic, cmd.Name, domain.ProductRegisteredEvent{
		ProductID:       cmd.ID,
		Name:            cmd.Name,
		Category:        cmd.Category,
		InitialQuantity: cmd.InitialQuantity,
		Timestamp:       time.Now(),
	})
	return nil
}

// UpsertOffer 为已存在的产品创建或合并卖家报价。产品不存在、新报价数量
// 非正或合并后数量为负均返回 false。
func (s *MarketCommandService) UpsertOffer(ctx context.Context, cmd UpsertOfferCommand) (bool, error) {
	productID, found, err := s.repo.FindProductIDByName(ctx, cmd.ProductName)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}

	ok, err := s.repo.UpsertOffer(ctx, productID, cmd.Seller, cmd.Price, cmd.QuantityDelta)
	if err != nil || !ok {
		return ok, err
	}

	s.publish(ctx, domain.OfferUpsertedTopic, cmd.ProductName, domain.OfferUpsertedEvent{
		ProductID:     productID,
		Seller:        cmd.Seller,
		Price:         cmd.Price,
		QuantityDelta: cmd.QuantityDelta,
		Timestamp:     time.Now(),
	})
	return true, nil
}

// Purchase 购买：记录成交价（修正前）、扣减报价数量、按产品剩余总量修正
// 挂牌价、追加两级历史窗口，全部作为单个原子单元由存储适配器执行。
// 任一前置校验失败返回 false 且状态不变。
func (s *MarketCommandService) Purchase(ctx context.Context, cmd PurchaseCommand) (bool, error) {
	if cmd.Quantity <= 0 {
		return false, nil
	}

	offer, err := s.lookupOffer(ctx, cmd.ProductName, cmd.Seller)
	if err != nil {
		return false, err
	}
	if offer == nil || offer.Quantity < cmd.Quantity {
		return false, nil
	}

	executionPrice := offer.Price

	totalQuantity, err := s.repo.TotalAvailableQuantity(ctx, cmd.ProductName)
	if err != nil {
		return false, err
	}
	remainingAfter := totalQuantity - cmd.Quantity
	if remainingAfter < 0 {
		return false, nil
	}

	newListedPrice := domain.ReviseListedPrice(executionPrice, cmd.Quantity, remainingAfter)

	// 适配器内部复核库存，这里的预检与提交之间的竞争由它兜底。
	ok, err := s.repo.ExecutePurchase(ctx, cmd.ProductName, cmd.Seller, cmd.Quantity, executionPrice, newListedPrice)
	if err != nil || !ok {
		return ok, err
	}

	s.publish(ctx, domain.TradeExecutedTopic, cmd.ProductName, domain.TradeExecutedEvent{
		TradeID:           fmt.Sprintf("TRD-%d", idgen.GenID()),
		ProductName:       cmd.ProductName,
		Seller:            cmd.Seller,
		Quantity:          cmd.Quantity,
		ExecutionPrice:    executionPrice,
		NewListedPrice:    newListedPrice,
		RemainingQuantity: remainingAfter,
		Timestamp:         time.Now(),
	})
	return true, nil
}

func (s *MarketCommandService) lookupOffer(ctx context.Context, productName, seller string) (*domain.Offer, error) {
	products, err := s.repo.FetchAllWithOffers(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if strings.EqualFold(p.Name, productName) {
			return p.FindOffer(seller), nil
		}
	}
	return nil, nil
}

// publish 事件发布失败只记日志，不影响已提交的业务结果。
func (s *MarketCommandService) publish(ctx context.Context, topic, key string, event any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, topic, key, event); err != nil {
		logging.Error(ctx, "failed to publish market event", "topic", topic, "error", err)
	}
}
