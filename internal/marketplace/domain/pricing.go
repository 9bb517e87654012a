package domain

import "github.com/shopspring/decimal"

// 价格修正系数：成交吃掉剩余库存的比例越高，挂牌价上调越多。
// factor = floorFactor + spanFactor * consumedFraction，范围 [0.9, 1.1]。
var (
	reviseFloorFactor = decimal.NewFromFloat(0.9)
	reviseSpanFactor  = decimal.NewFromFloat(0.2)
)

// ReviseListedPrice 依据本次成交计算新的挂牌价。纯函数，输入相同输出相同。
//
// consumedFraction = tradedQuantity / (tradedQuantity + remainingAfterTrade)，
// 取值 (0, 1]；清空全部库存时系数为 1.1，成交占比趋近 0 时系数趋近 0.9。
// 结果四舍五入到分。
//
// tradedQuantity 必须为正，remainingAfterTrade 必须非负；调用方（购买校验）
// 保证这一点。
func ReviseListedPrice(executionPrice float64, tradedQuantity, remainingAfterTrade int) float64 {
	traded := decimal.NewFromInt(int64(tradedQuantity))
	total := decimal.NewFromInt(int64(tradedQuantity + remainingAfterTrade))
	fraction := traded.Div(total)

	factor := reviseFloorFactor.Add(reviseSpanFactor.Mul(fraction))
	revised := decimal.NewFromFloat(executionPrice).Mul(factor).Round(2)
	out, _ := revised.Float64()
	return out
}
