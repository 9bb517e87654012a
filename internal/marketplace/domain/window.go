package domain

// priceWindowCapacity 历史价格窗口的固定容量。
// 产品级成交价窗口与报价级挂牌价窗口共用同一常量，不可配置。
const priceWindowCapacity = 3

// PriceWindow 固定容量的滚动价格窗口，最旧的条目先被淘汰。
// 零值即可使用。
type PriceWindow struct {
	prices []float64
}

// NewPriceWindow 从已有价格序列（从旧到新）构建窗口，超出容量的旧条目被丢弃。
func NewPriceWindow(prices ...float64) PriceWindow {
	w := PriceWindow{}
	for _, p := range prices {
		w.Append(p)
	}
	return w
}

// Append 追加一个价格，超出容量时淘汰最旧的条目。
func (w *PriceWindow) Append(price float64) {
	w.prices = append(w.prices, price)
	if len(w.prices) > priceWindowCapacity {
		w.prices = w.prices[len(w.prices)-priceWindowCapacity:]
	}
}

// Len 返回窗口内条目数。
func (w *PriceWindow) Len() int { return len(w.prices) }

// Prices 返回窗口内全部价格（从旧到新）的副本。
func (w *PriceWindow) Prices() []float64 {
	out := make([]float64, len(w.prices))
	copy(out, w.prices)
	return out
}

// Recent 返回最多 limit 条最新价格（从新到旧）。limit <= 0 返回空切片。
func (w *PriceWindow) Recent(limit int) []float64 {
	if limit <= 0 || len(w.prices) == 0 {
		return []float64{}
	}
	if limit > len(w.prices) {
		limit = len(w.prices)
	}
	out := make([]float64, 0, limit)
	for i := len(w.prices) - 1; i >= len(w.prices)-limit; i-- {
		out = append(out, w.prices[i])
	}
	return out
}
