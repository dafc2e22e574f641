package portfolio

import (
	"log"

	"github.com/assist-by/quant/internal/domain"
)

// Portfolio는 계좌 단위 원장을 구현합니다.
// 현금 잔고, 상품별 포지션, 누적 실현 손익을 관리하며
// 상태 변경은 ApplyFill을 통해서만 일어납니다.
//
// 동기화는 제공하지 않습니다. Portfolio는 세션 동안 ExecutionLoop가
// 단독으로 소유하며 틱 처리 사이에 동시 접근이 없습니다.
type Portfolio struct {
	cash        float64
	holdings    map[domain.Instrument]*Position
	realizedPnL float64
}

// New는 초기 현금 잔고로 새 포트폴리오를 생성합니다
func New(initialCash float64) *Portfolio {
	return &Portfolio{
		cash:     initialCash,
		holdings: make(map[domain.Instrument]*Position),
	}
}

// ApplyFill은 체결된 주문을 원장에 반영합니다.
// 호출은 원자적입니다: 검증에 실패하면 어떤 상태도 변경되지 않습니다.
//
// 매수는 현금 충분성을 검사하지 않습니다. 그 검사는 주문을 내기 전에
// 호출자(ExecutionLoop)가 HasSufficientCash로 수행해야 합니다.
func (p *Portfolio) ApplyFill(instrument domain.Instrument, side domain.OrderSide, quantity, price float64) error {
	if quantity <= 0 {
		return NewFillError(instrument.Symbol, string(side), ErrInvalidQuantity)
	}
	if price <= 0 {
		return NewFillError(instrument.Symbol, string(side), ErrInvalidPrice)
	}

	cost := quantity * price

	switch side {
	case domain.Buy:
		pos, exists := p.holdings[instrument]
		if !exists {
			created, err := NewPosition(instrument, quantity, price)
			if err != nil {
				return NewFillError(instrument.Symbol, "매수", err)
			}
			p.holdings[instrument] = created
		} else {
			if err := pos.Update(quantity, price); err != nil {
				return NewFillError(instrument.Symbol, "매수", err)
			}
		}
		p.cash -= cost

		log.Printf("[Portfolio] %s %.4f 매수 체결, 잔여 현금: %.2f", instrument.Symbol, quantity, p.cash)

	case domain.Sell:
		pos, exists := p.holdings[instrument]
		if !exists {
			// 현금을 먼저 입금하지 않으므로 롤백이 필요 없습니다
			return NewFillError(instrument.Symbol, "매도", ErrNoOpenPosition)
		}

		pnl, err := pos.Reduce(quantity, price)
		if err != nil {
			return NewFillError(instrument.Symbol, "매도", err)
		}

		p.cash += cost
		p.realizedPnL += pnl
		if pos.Quantity == 0 {
			delete(p.holdings, instrument)
		}

		log.Printf("[Portfolio] %s %.4f 매도 체결, 실현 손익: %.2f, 현금: %.2f",
			instrument.Symbol, quantity, pnl, p.cash)

	default:
		return NewFillError(instrument.Symbol, string(side), ErrInvalidSide)
	}

	return nil
}

// TotalEquity는 순자산(현금 + 보유 포지션의 평가 가치)을 계산합니다.
// marks에 평가 가격이 없는 상품은 0으로 계산됩니다. 모든 열린 포지션의
// 평가 가격을 제공하는 것은 호출자의 책임이며, 누락 시 과소평가를 감수합니다.
func (p *Portfolio) TotalEquity(marks map[domain.Instrument]float64) float64 {
	marketValue := 0.0
	for instrument, pos := range p.holdings {
		marketValue += pos.Quantity * marks[instrument]
	}
	return p.cash + marketValue
}

// HasSufficientCash는 주문 실행 전 현금 충분성을 검사합니다.
// 매수는 상품의 명목 가치(승수 포함) 이상의 현금이 필요하고,
// 매도는 현금이 필요하지 않으므로 항상 true입니다
// (보유 수량 검사는 ApplyFill 내부에서 수행됩니다).
func (p *Portfolio) HasSufficientCash(instrument domain.Instrument, quantity, price float64, side domain.OrderSide) bool {
	if side != domain.Buy {
		return true
	}
	return p.cash >= instrument.CalculateValue(price, quantity)
}

// Positions는 현재 보유 포지션의 읽기 전용 스냅샷을 반환합니다.
// 순서는 보장되지 않습니다.
func (p *Portfolio) Positions() []Position {
	result := make([]Position, 0, len(p.holdings))
	for _, pos := range p.holdings {
		result = append(result, *pos)
	}
	return result
}

// Position은 특정 상품의 포지션 스냅샷을 반환합니다
func (p *Portfolio) Position(instrument domain.Instrument) (Position, bool) {
	pos, exists := p.holdings[instrument]
	if !exists {
		return Position{}, false
	}
	return *pos, true
}

// Cash는 현재 현금 잔고를 반환합니다
func (p *Portfolio) Cash() float64 {
	return p.cash
}

// RealizedPnL은 누적 실현 손익을 반환합니다
func (p *Portfolio) RealizedPnL() float64 {
	return p.realizedPnL
}
