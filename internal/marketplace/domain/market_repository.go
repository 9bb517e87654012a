package domain

import "context"

// MarketRepository 市场存储端口。内存实现与 MySQL 实现共享同一契约，
// 业务层不感知运行模式。
//
// 模式差异（有意保留并在两种实现各自的测试中断言）：
//   - UpsertProduct：内存实现按名称（不区分大小写）去重，重名时为 no-op；
//     持久化实现按 id 执行 upsert，覆盖 name/category。
//   - 报价级挂牌价窗口仅存在于内存模式；持久化模式的 FetchAllWithOffers
//     返回空窗口（参考 schema 不落盘该数据）。
//
// 产品级成交历史统一经由 LastTradePrices 读取，FetchAllWithOffers 不回填。
type MarketRepository interface {
	// FetchAllWithOffers 返回全部产品及其子报价。
	FetchAllWithOffers(ctx context.Context) ([]*Product, error)

	// UpsertProduct 创建或更新产品，冲突策略见接口说明。返回登记是否被
	// 接纳：内存实现重名时为 no-op 并返回 false，持久化实现的 upsert
	// 总是接纳。
	UpsertProduct(ctx context.Context, id, name, category string) (bool, error)

	// UpsertOffer 创建或合并卖家报价，冲突策略为"数量累加、价格替换"。
	// 校验失败（新报价数量非正 / 合并后数量为负）返回 false，不报错。
	UpsertOffer(ctx context.Context, productID, seller string, price float64, quantityDelta int) (bool, error)

	// ExecutePurchase 以单个隔离单元执行购买：复核库存、扣减数量、
	// 改写挂牌价、追加成交历史。产品/报价不存在或库存不足返回 false
	// 且不产生任何可见变更；基础设施失败返回非 nil error 并完整回滚。
	ExecutePurchase(ctx context.Context, productName, seller string, quantity int, executionPrice, newListedPrice float64) (bool, error)

	// FindProductIDByName 按名称（不区分大小写）精确查找产品 id。
	FindProductIDByName(ctx context.Context, name string) (string, bool, error)

	// TotalAvailableQuantity 产品全部报价的可售数量之和，产品不存在时为 0。
	TotalAvailableQuantity(ctx context.Context, name string) (int, error)

	// LastTradePrices 最近 limit 条成交价，从新到旧。产品不存在、无历史
	// 或 limit <= 0 时返回空切片而非错误。
	LastTradePrices(ctx context.Context, name string, limit int) ([]float64, error)
}
