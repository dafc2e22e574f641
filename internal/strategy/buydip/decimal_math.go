package buydip

import "github.com/shopspring/decimal"

// 부동소수점 가격으로 익절/손절 경계를 판정하면 경계값 틱에서
// 판정이 흔들릴 수 있어 비교는 decimal로 수행합니다.
// (예: 진입 144.00, 익절 2%일 때 146.88 틱은 정확히 경계에 위치합니다)

// relativeReturn은 진입가 대비 수익률 (price - entry) / entry 를 계산합니다
func relativeReturn(entry, price float64) float64 {
	entryDec := decimal.NewFromFloat(entry)
	priceDec := decimal.NewFromFloat(price)

	ret, _ := priceDec.Sub(entryDec).Div(entryDec).Float64()
	return ret
}

func decimalGTE(a, b float64) bool {
	return decimal.NewFromFloat(a).Cmp(decimal.NewFromFloat(b)) >= 0
}

func decimalLTE(a, b float64) bool {
	return decimal.NewFromFloat(a).Cmp(decimal.NewFromFloat(b)) <= 0
}
