package portfolio

import "github.com/assist-by/quant/internal/domain"

// Position은 단일 상품에 대한 보유 내역을 나타냅니다.
// AveragePrice는 Quantity가 0보다 클 때만 의미를 가지며,
// 수량이 0으로 돌아온 포지션은 Portfolio가 보유 맵에서 제거합니다.
type Position struct {
	Instrument   domain.Instrument
	Quantity     float64
	AveragePrice float64
}

// NewPosition은 첫 매수 체결로 새 포지션을 생성합니다
func NewPosition(instrument domain.Instrument, quantity, price float64) (*Position, error) {
	p := &Position{Instrument: instrument}
	if err := p.Update(quantity, price); err != nil {
		return nil, err
	}
	return p, nil
}

// Update는 매수 체결을 적용합니다.
// 가중 평균 단가를 재계산하고 수량을 증가시킵니다.
func (p *Position) Update(quantity, price float64) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if price <= 0 {
		return ErrInvalidPrice
	}

	previousCost := p.Quantity * p.AveragePrice
	newTradeCost := quantity * price

	p.Quantity += quantity
	p.AveragePrice = (previousCost + newTradeCost) / p.Quantity

	return nil
}

// Reduce는 매도 체결을 적용하고 이번 매도분의 실현 손익을 반환합니다.
// 매도는 남은 수량의 평균 단가를 변경하지 않습니다.
func (p *Position) Reduce(quantity, price float64) (float64, error) {
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}
	if price <= 0 {
		return 0, ErrInvalidPrice
	}
	if quantity > p.Quantity {
		return 0, ErrInsufficientPosition
	}

	pnl := (price - p.AveragePrice) * quantity
	p.Quantity -= quantity

	return pnl, nil
}

// TotalBookValue는 포지션의 장부 가치(수량 * 평균 단가)를 반환합니다
func (p *Position) TotalBookValue() float64 {
	return p.Quantity * p.AveragePrice
}
