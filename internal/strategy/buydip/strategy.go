package buydip

import (
	"context"
	"fmt"
	"log"

	"github.com/assist-by/quant/internal/domain"
	"github.com/assist-by/quant/internal/strategy"
)

// Strategy는 하락 매수 / 목표 청산 전략을 구현합니다.
// 가격이 진입 임계값 아래로 내려가면 매수하고, 진입가 대비 수익률이
// 익절 비율에 도달하거나 손절 비율만큼 하락하면 매도합니다.
//
// 상품별 상태는 두 가지입니다: 진입가 기록이 없으면 FLAT,
// 있으면 ENTERED. 이 기록은 전략 인스턴스의 전용 상태이며
// 포트폴리오의 실제 보유 내역과는 독립적입니다.
type Strategy struct {
	strategy.BaseStrategy

	entryThreshold float64
	takeProfitPct  float64
	stopLossPct    float64

	// 상품별 진입 가격. 엔트리는 BUY 시그널에서 생성되고
	// 대응하는 SELL 시그널에서 제거됩니다.
	entries map[domain.Instrument]float64
}

// NewStrategy는 새로운 하락 매수 전략 인스턴스를 생성합니다
func NewStrategy(config map[string]interface{}) (strategy.Strategy, error) {
	s := &Strategy{
		BaseStrategy: strategy.BaseStrategy{
			Name:        "BuyTheDip",
			Description: "가격이 임계값 아래로 떨어지면 매수하고 TP/SL 도달 시 매도하는 전략",
			Config:      config,
		},
		entries: make(map[domain.Instrument]float64),
	}

	var err error
	if s.entryThreshold, err = getFloatConfig(config, "entryThreshold"); err != nil {
		return nil, err
	}
	if s.takeProfitPct, err = getFloatConfig(config, "takeProfitPct"); err != nil {
		return nil, err
	}
	if s.stopLossPct, err = getFloatConfig(config, "stopLossPct"); err != nil {
		return nil, err
	}

	if s.entryThreshold <= 0 {
		return nil, fmt.Errorf("진입 임계값은 0보다 커야 합니다: %f", s.entryThreshold)
	}
	if s.takeProfitPct <= 0 || s.stopLossPct <= 0 {
		return nil, fmt.Errorf("익절/손절 비율은 0보다 커야 합니다: tp=%f, sl=%f",
			s.takeProfitPct, s.stopLossPct)
	}

	return s, nil
}

// RegisterStrategy는 전략을 레지스트리에 등록합니다
func RegisterStrategy(registry *strategy.Registry) {
	registry.Register("BuyTheDip", NewStrategy)
}

// OnStart는 세션 시작을 기록합니다. 상태 기계에는 영향이 없습니다
func (s *Strategy) OnStart(ctx context.Context) error {
	log.Printf("[%s] 전략 시작 (진입 임계값: %.2f, 익절: %.2f%%, 손절: %.2f%%)",
		s.Name, s.entryThreshold, s.takeProfitPct*100, s.stopLossPct*100)
	return nil
}

// OnMarketData는 틱을 평가하여 시그널을 생성합니다.
// 청산 조건을 진입 조건보다 먼저 평가하므로 한 틱에서
// 청산과 재진입이 동시에 일어나지 않습니다.
func (s *Strategy) OnMarketData(ctx context.Context, instrument domain.Instrument, price float64) (*domain.Signal, error) {
	if price <= 0 {
		return nil, fmt.Errorf("유효하지 않은 가격입니다: %f", price)
	}
	if !s.IsSubscribed(instrument) {
		return nil, nil
	}

	// 1. ENTERED 상태: 청산 조건 평가
	if entry, entered := s.entries[instrument]; entered {
		ret := relativeReturn(entry, price)

		if decimalGTE(ret, s.takeProfitPct) {
			log.Printf("[%s] %s 익절: 진입 %.2f → 현재 %.2f (%.2f%%)",
				s.Name, instrument.Symbol, entry, price, ret*100)
			delete(s.entries, instrument)
			return domain.NewSignal(instrument, domain.Sell, 1.0), nil
		}

		if decimalLTE(ret, -s.stopLossPct) {
			log.Printf("[%s] %s 손절: 진입 %.2f → 현재 %.2f (%.2f%%)",
				s.Name, instrument.Symbol, entry, price, ret*100)
			delete(s.entries, instrument)
			return domain.NewSignal(instrument, domain.Sell, 1.0), nil
		}

		return nil, nil
	}

	// 2. FLAT 상태: 진입 조건 평가
	if price < s.entryThreshold {
		log.Printf("[%s] %s 가격 %.2f가 임계값 %.2f 아래입니다. 매수 시그널 생성",
			s.Name, instrument.Symbol, price, s.entryThreshold)
		s.entries[instrument] = price
		return domain.NewSignal(instrument, domain.Buy, 1.0), nil
	}

	return nil, nil
}

// OnStop은 세션 종료를 기록합니다. 상태 기계에는 영향이 없습니다
func (s *Strategy) OnStop(ctx context.Context) error {
	log.Printf("[%s] 트레이딩 세션 종료", s.Name)
	return nil
}

// getFloatConfig는 설정 맵에서 float64 값을 추출합니다
func getFloatConfig(config map[string]interface{}, key string) (float64, error) {
	value, exists := config[key]
	if !exists {
		return 0, fmt.Errorf("필수 전략 설정이 없습니다: %s", key)
	}

	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("전략 설정 %s의 타입이 올바르지 않습니다: %T", key, value)
	}
}
