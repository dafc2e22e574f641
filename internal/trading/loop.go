package trading

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/assist-by/quant/internal/domain"
	"github.com/assist-by/quant/internal/exchange"
	"github.com/assist-by/quant/internal/notification"
	"github.com/assist-by/quant/internal/portfolio"
	"github.com/assist-by/quant/internal/strategy"
)

// Loop는 시그널-체결 이벤트 루프를 구현합니다.
// 틱마다 전략 의사결정 → 사전 현금 검사 → 주문 실행 → 원장 갱신을
// 순서대로 수행하며, 한 틱의 처리가 끝나기 전에는 다음 틱을 받지 않습니다.
//
// Portfolio와 Strategy는 세션 동안 Loop가 단독으로 소유합니다.
type Loop struct {
	exchange  exchange.Exchange
	strategy  strategy.Strategy
	portfolio *portfolio.Portfolio
	notifier  notification.Notifier

	orderSize float64
	trades    []TradeRecord
}

// LoopOption은 루프 생성 옵션을 정의합니다
type LoopOption func(*Loop)

// WithNotifier는 시그널/체결 알림 전송기를 설정합니다
func WithNotifier(notifier notification.Notifier) LoopOption {
	return func(l *Loop) {
		l.notifier = notifier
	}
}

// NewLoop는 새로운 실행 루프를 생성합니다
func NewLoop(ex exchange.Exchange, strat strategy.Strategy, pf *portfolio.Portfolio, orderSize float64, opts ...LoopOption) *Loop {
	l := &Loop{
		exchange:  ex,
		strategy:  strat,
		portfolio: pf,
		orderSize: orderSize,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// OnTick은 하나의 가격 틱을 처리합니다.
//
// 1. 전략에 틱을 전달해 시그널을 받습니다. 시그널이 없으면 종료합니다.
// 2. 사전 현금 검사에 실패하면 주문을 건너뜁니다 (재시도 없음, 정상 흐름).
// 3. 거래소 주문이 실패하면 원장은 변경되지 않습니다.
// 4. 주문이 성공한 경우에만 체결을 원장에 반영합니다.
//
// 주문 실행(3)과 원장 갱신(4)은 별개의 연산이므로 그 사이의 장애는
// 체결이 원장에 반영되지 않는 공백을 남깁니다. 멱등한 체결 조회나
// 대사(reconciliation)는 거래소 협력자의 몫입니다.
func (l *Loop) OnTick(ctx context.Context, instrument domain.Instrument, price float64) error {
	signal, err := l.strategy.OnMarketData(ctx, instrument, price)
	if err != nil {
		return fmt.Errorf("전략 분석 실패 (%s): %w", instrument.Symbol, err)
	}
	if signal == nil {
		return nil
	}

	if l.notifier != nil {
		if err := l.notifier.SendSignal(signal, price); err != nil {
			log.Printf("시그널 알림 전송 실패: %v", err)
		}
	}

	if !l.portfolio.HasSufficientCash(signal.Instrument, l.orderSize, price, signal.Side) {
		// 현금 부족은 예외가 아니라 정상적인 제어 흐름입니다
		log.Printf("[Loop] %s %s 주문 건너뜀: 현금 부족 (현재 %.2f)",
			signal.Instrument.Symbol, signal.Side, l.portfolio.Cash())
		return nil
	}

	orderID, err := l.exchange.PlaceOrder(ctx, signal.Instrument, l.orderSize, signal.Side)
	if err != nil {
		// 주문이 실패했으므로 원장에는 어떤 체결도 반영하지 않습니다
		return fmt.Errorf("주문 실행 실패 (%s %s): %w", signal.Instrument.Symbol, signal.Side, err)
	}

	pnlBefore := l.portfolio.RealizedPnL()
	if err := l.portfolio.ApplyFill(signal.Instrument, signal.Side, l.orderSize, price); err != nil {
		return fmt.Errorf("체결 반영 실패 (주문 %s): %w", orderID, err)
	}

	record := TradeRecord{
		OrderID:     orderID,
		Instrument:  signal.Instrument,
		Side:        signal.Side,
		Quantity:    l.orderSize,
		Price:       price,
		RealizedPnL: l.portfolio.RealizedPnL() - pnlBefore,
		Time:        time.Now(),
	}
	l.trades = append(l.trades, record)

	if l.notifier != nil {
		info := notification.TradeInfo{
			OrderID:     record.OrderID,
			Symbol:      record.Instrument.Symbol,
			Side:        record.Side,
			Quantity:    record.Quantity,
			Price:       record.Price,
			RealizedPnL: record.RealizedPnL,
			Cash:        l.portfolio.Cash(),
		}
		if err := l.notifier.SendTradeInfo(info); err != nil {
			log.Printf("체결 알림 전송 실패: %v", err)
		}
	}

	return nil
}

// Trades는 지금까지 원장에 반영된 체결 기록의 스냅샷을 반환합니다
func (l *Loop) Trades() []TradeRecord {
	result := make([]TradeRecord, len(l.trades))
	copy(result, l.trades)
	return result
}

// Portfolio는 루프가 소유한 포트폴리오를 반환합니다
func (l *Loop) Portfolio() *portfolio.Portfolio {
	return l.portfolio
}

// Stats는 현재 세션의 거래 통계를 계산합니다
func (l *Loop) Stats() *SessionStats {
	return CalculateSessionStats(l.trades)
}
