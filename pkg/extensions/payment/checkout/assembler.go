package checkout

import (
	"github.com/flaboy/aira-pay/pkg/extensions/payment/currency"
	ptypes "github.com/flaboy/aira-pay/pkg/extensions/payment/types"
	"github.com/flaboy/aira-pay/pkg/models"
	"github.com/shopspring/decimal"
)

// Assemble 把订单商品拆成结账行与折扣合计。
// 负价商品不产生行项目，绝对值累加进折扣合计；
// 数量默认1，有同名发票行时用其数量覆盖。
// 不变量：行项目单价合计 + 折扣合计 = 商品价格绝对值合计。
func Assemble(products []models.Product, currencyCode string, overrides []ptypes.QuantityOverride) ([]ptypes.CheckoutLineItem, decimal.Decimal) {
	var items []ptypes.CheckoutLineItem
	discount := decimal.Zero

	for _, product := range products {
		if product.Price.IsNegative() {
			discount = discount.Add(product.Price.Abs())
			continue
		}

		quantity := int64(1)
		for _, override := range overrides {
			if override.Name == product.Name {
				quantity = override.Quantity
				break
			}
		}

		items = append(items, ptypes.CheckoutLineItem{
			Currency:    currencyCode,
			UnitAmount:  currency.ToMinorUnits(product.Price),
			Name:        product.Name,
			Description: product.Description,
			Quantity:    quantity,
		})
	}

	return items, discount
}
