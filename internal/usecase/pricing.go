package usecase

import (
	"fmt"

	"readnwin/internal/domain/model"
)

// VATは7.5%の固定ポリシー。利用者入力では変わらない。
const (
	vatRateNumerator   = 75
	vatRateDenominator = 1000
)

type QuoteLine struct {
	BookID   int64
	Quantity int64
}

// 見積り結果。全額とも最小通貨単位。
type Quote struct {
	Subtotal      int64
	ShippingCost  int64
	Tax           int64
	Total         int64
	PhysicalCount int64
}

// ComputeQuote は純関数。DBにもネットワークにも触らない。
// booksは呼び出し側が引き当て済みの本のmap。載っていないbook_idが
// 混ざっていたら入力不備として弾く（呼び出し側の事前フィルタの保険）。
func ComputeQuote(lines []QuoteLine, books map[int64]model.Book, shipping *model.ShippingMethod) (Quote, error) {
	var q Quote

	for _, line := range lines {
		b, ok := books[line.BookID]
		if !ok {
			return Quote{}, NewValidationError(fmt.Sprintf("book %d is not available", line.BookID))
		}
		if line.Quantity < 1 {
			return Quote{}, NewValidationError("invalid quantity")
		}

		q.Subtotal += b.Price * line.Quantity

		if b.Format.IsPhysical() {
			q.PhysicalCount += line.Quantity
		}
	}

	//電子書籍のみなら配送方法の指定があっても送料は常に0
	if q.PhysicalCount > 0 {
		if shipping == nil {
			return Quote{}, NewValidationError("shipping method is required for physical items")
		}

		q.ShippingCost = shipping.BaseCost + shipping.CostPerItem*q.PhysicalCount

		if shipping.FreeShippingThreshold > 0 && q.Subtotal >= shipping.FreeShippingThreshold {
			q.ShippingCost = 0
		}
	}

	q.Tax = roundHalfUp(q.Subtotal*vatRateNumerator, vatRateDenominator)
	q.Total = q.Subtotal + q.ShippingCost + q.Tax

	return q, nil
}

// 四捨五入（正の値のみ想定）
func roundHalfUp(numerator int64, denominator int64) int64 {
	return (numerator + denominator/2) / denominator
}
