package paper

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/assist-by/quant/internal/domain"
	"github.com/assist-by/quant/internal/exchange"
)

// Exchange는 페이퍼 트레이딩용 모의 거래소를 구현합니다.
// 실제 서버에 연결하지 않으며 주문은 즉시 체결된 것으로 처리합니다.
type Exchange struct {
	name      string
	connected bool
	prices    map[string]float64 // 심볼별 고정 가격 (설정된 경우 기본 가격보다 우선)
}

// Option은 페이퍼 거래소 생성 옵션을 정의합니다
type Option func(*Exchange)

// WithPrice는 특정 심볼의 고정 가격을 설정합니다
func WithPrice(symbol string, price float64) Option {
	return func(e *Exchange) {
		e.prices[symbol] = price
	}
}

// New는 새로운 페이퍼 거래소를 생성합니다
func New(name string, opts ...Option) *Exchange {
	e := &Exchange{
		name:   name,
		prices: make(map[string]float64),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Connect는 연결을 시뮬레이션합니다. 항상 성공합니다
func (e *Exchange) Connect(ctx context.Context) error {
	log.Printf("[%s] 연결 시뮬레이션... 연결됨", e.name)
	e.connected = true
	return nil
}

// SetPrice는 특정 심볼의 가격을 갱신합니다.
// 데모 하네스가 시나리오 가격을 주입할 때 사용합니다.
func (e *Exchange) SetPrice(symbol string, price float64) {
	e.prices[symbol] = price
}

// GetMarketPrice는 상품의 시뮬레이션 가격을 반환합니다.
// 설정된 가격이 없으면 자산군 특성에 기반한 기본 가격을 돌려줍니다.
func (e *Exchange) GetMarketPrice(ctx context.Context, instrument domain.Instrument) (float64, error) {
	if price, ok := e.prices[instrument.Symbol]; ok {
		return price, nil
	}

	// 실제 시스템이라면 과거 데이터나 실시간 피드를 조회합니다
	if strings.Contains(instrument.Symbol, string(instrument.QuoteCurrency)) {
		return 1.0, nil
	}
	return 100.00 + instrument.LotSize*0.1, nil
}

// PlaceOrder는 주문을 즉시 체결 처리하고 모의 주문 ID를 반환합니다
func (e *Exchange) PlaceOrder(ctx context.Context, instrument domain.Instrument, quantity float64, side domain.OrderSide) (string, error) {
	if !e.connected {
		return "", exchange.ErrNotConnected
	}

	orderID := uuid.NewString()[:8]

	price, err := e.GetMarketPrice(ctx, instrument)
	if err != nil {
		return "", err
	}
	notional := instrument.CalculateValue(price, quantity)

	log.Printf("[%s] %s 주문 체결: %.4fx %s @ %.2f (명목 가치 %.2f)",
		e.name, side, quantity, instrument.Symbol, price, notional)

	return orderID, nil
}
