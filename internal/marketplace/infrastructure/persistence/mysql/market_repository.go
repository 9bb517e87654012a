package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/marketledger/internal/marketplace/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// errRejected 事务内校验失败的哨兵，用于触发回滚并转换为 false 返回。
var errRejected = errors.New("marketplace: validation rejected")

// marketRepository 持久化模式的市场存储实现
type marketRepository struct {
	db *gorm.DB
}

// NewMarketRepository 创建 MySQL 市场存储。
func NewMarketRepository(db *gorm.DB) domain.MarketRepository {
	return &marketRepository{db: db}
}

func (r *marketRepository) FetchAllWithOffers(ctx context.Context) ([]*domain.Product, error) {
	var pos []*ProductPO
	if err := r.db.WithContext(ctx).Preload("Offers").Order("id").Find(&pos).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, len(pos))
	for i, po := range pos {
		products[i] = toProduct(po)
	}
	return products, nil
}

// UpsertProduct 持久化模式冲突策略：按 id upsert，覆盖 name/category。
// 冲突同样视为登记被接纳。
func (r *marketRepository) UpsertProduct(ctx context.Context, id, name, category string) (bool, error) {
	po := &ProductPO{ID: id, Name: name, Category: category}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "category", "updated_at"}),
	}).Create(po).Error
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpsertOffer 事务内先读后写：已有报价数量累加（拒绝负结果）、价格替换；
// 无报价时要求初始数量为正。
func (r *marketRepository) UpsertOffer(ctx context.Context, productID, seller string, price float64, quantityDelta int) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing OfferPO
		err := tx.Where("product_id = ? AND LOWER(seller) = LOWER(?)", productID, seller).
			First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if quantityDelta <= 0 {
				return errRejected
			}
			return tx.Create(&OfferPO{
				ProductID: productID,
				Seller:    seller,
				Price:     price,
				Quantity:  quantityDelta,
			}).Error
		}
		if err != nil {
			return err
		}
		if existing.Quantity+quantityDelta < 0 {
			return errRejected
		}
		return tx.Model(&OfferPO{}).Where("id = ?", existing.ID).
			Updates(map[string]any{
				"price":    price,
				"quantity": gorm.Expr("quantity + ?", quantityDelta),
			}).Error
	})
	if errors.Is(err, errRejected) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ExecutePurchase 单个事务内完成扣减、改价与成交历史插入。
// 条件更新自带库存护栏，两个并发购买不可能都越过容量。
func (r *marketRepository) ExecutePurchase(ctx context.Context, productName, seller string, quantity int, executionPrice, newListedPrice float64) (bool, error) {
	if quantity <= 0 {
		return false, nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var po ProductPO
		err := tx.Where("LOWER(name) = LOWER(?)", productName).First(&po).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errRejected
		}
		if err != nil {
			return err
		}

		res := tx.Model(&OfferPO{}).
			Where("product_id = ? AND LOWER(seller) = LOWER(?) AND quantity >= ?", po.ID, seller, quantity).
			Updates(map[string]any{
				"quantity": gorm.Expr("quantity - ?", quantity),
				"price":    newListedPrice,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errRejected
		}

		return tx.Create(&PriceHistoryPO{ProductID: po.ID, Price: executionPrice}).Error
	})
	if errors.Is(err, errRejected) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *marketRepository) FindProductIDByName(ctx context.Context, name string) (string, bool, error) {
	var po ProductPO
	err := r.db.WithContext(ctx).Select("id").Where("LOWER(name) = LOWER(?)", name).First(&po).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return po.ID, true, nil
}

func (r *marketRepository) TotalAvailableQuantity(ctx context.Context, name string) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&OfferPO{}).
		Joins("JOIN products ON products.id = offers.product_id").
		Where("LOWER(products.name) = LOWER(?)", name).
		Select("COALESCE(SUM(offers.quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

func (r *marketRepository) LastTradePrices(ctx context.Context, name string, limit int) ([]float64, error) {
	if limit <= 0 {
		return []float64{}, nil
	}
	prices := []float64{}
	err := r.db.WithContext(ctx).Model(&PriceHistoryPO{}).
		Joins("JOIN products ON products.id = price_history.product_id").
		Where("LOWER(products.name) = LOWER(?)", name).
		Order("price_history.id DESC").
		Limit(limit).
		Pluck("price_history.price", &prices).Error
	if err != nil {
		return nil, err
	}
	return prices, nil
}
