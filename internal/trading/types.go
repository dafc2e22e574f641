package trading

import (
	"time"

	"github.com/assist-by/quant/internal/domain"
)

// Tick은 하나의 가격 갱신을 나타냅니다
type Tick struct {
	Instrument domain.Instrument
	Price      float64
	Time       time.Time
}

// TradeRecord는 원장에 반영된 개별 체결 기록입니다
type TradeRecord struct {
	OrderID     string           // 거래소가 반환한 주문 ID
	Instrument  domain.Instrument
	Side        domain.OrderSide
	Quantity    float64
	Price       float64
	RealizedPnL float64 // 이번 체결로 실현된 손익 (매수는 항상 0)
	Time        time.Time
}
