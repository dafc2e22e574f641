package market

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assist-by/quant/internal/domain"
	"github.com/assist-by/quant/internal/exchange"
	"github.com/assist-by/quant/internal/portfolio"
	"github.com/assist-by/quant/internal/strategy"
	"github.com/assist-by/quant/internal/trading"
)

// priceExchange는 종목별 가격과 일시 장애를 흉내 내는 테스트용 거래소입니다
type priceExchange struct {
	prices    map[string]float64
	failures  map[string]int // 심볼별로 남은 실패 횟수
	calls     map[string]int
	connected bool
}

func newPriceExchange() *priceExchange {
	return &priceExchange{
		prices:   make(map[string]float64),
		failures: make(map[string]int),
		calls:    make(map[string]int),
	}
}

func (p *priceExchange) Connect(ctx context.Context) error {
	p.connected = true
	return nil
}

func (p *priceExchange) GetMarketPrice(ctx context.Context, instrument domain.Instrument) (float64, error) {
	if !p.connected {
		return 0, exchange.ErrNotConnected
	}
	p.calls[instrument.Symbol]++
	if p.failures[instrument.Symbol] > 0 {
		p.failures[instrument.Symbol]--
		return 0, fmt.Errorf("일시적인 조회 실패")
	}
	return p.prices[instrument.Symbol], nil
}

func (p *priceExchange) PlaceOrder(ctx context.Context, instrument domain.Instrument, quantity float64, side domain.OrderSide) (string, error) {
	return "ORDER-1", nil
}

// tickRecorder는 받은 틱만 기록하는 전략입니다
type tickRecorder struct {
	strategy.BaseStrategy
	ticks []float64
}

func (r *tickRecorder) OnStart(ctx context.Context) error { return nil }
func (r *tickRecorder) OnStop(ctx context.Context) error  { return nil }

func (r *tickRecorder) OnMarketData(ctx context.Context, instrument domain.Instrument, price float64) (*domain.Signal, error) {
	r.ticks = append(r.ticks, price)
	return nil, nil
}

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxRetries: 2,
		BaseDelay:  time.Millisecond,
		MaxDelay:   5 * time.Millisecond,
		Factor:     2.0,
	}
}

func TestCollector_SkipsUnsupportedInstruments(t *testing.T) {
	aapl := domain.NewInstrument("AAPL", domain.Equity, "NASDAQ")
	btc := domain.NewInstrument("BTCUSD", domain.Crypto, "BINANCE")

	ex := newPriceExchange()
	require.NoError(t, ex.Connect(context.Background()))
	ex.prices["AAPL"] = 155.0
	ex.prices["BTCUSD"] = 0 // 이 거래소에서 지원하지 않는 종목

	recorder := &tickRecorder{BaseStrategy: strategy.BaseStrategy{Name: "recorder", Config: map[string]interface{}{}}}
	loop := trading.NewLoop(ex, recorder, portfolio.New(10_000), 1)

	collector := NewCollector(ex, loop, []domain.Instrument{aapl, btc}, WithRetryConfig(fastRetry()))
	require.NoError(t, collector.Collect(context.Background()))

	// 지원 종목의 틱만 루프에 전달됩니다
	assert.Equal(t, []float64{155.0}, recorder.ticks)
}

func TestCollector_RetriesTransientFailures(t *testing.T) {
	aapl := domain.NewInstrument("AAPL", domain.Equity, "NASDAQ")

	ex := newPriceExchange()
	require.NoError(t, ex.Connect(context.Background()))
	ex.prices["AAPL"] = 150.0
	ex.failures["AAPL"] = 2 // 두 번 실패 후 성공

	recorder := &tickRecorder{BaseStrategy: strategy.BaseStrategy{Name: "recorder", Config: map[string]interface{}{}}}
	loop := trading.NewLoop(ex, recorder, portfolio.New(10_000), 1)

	collector := NewCollector(ex, loop, []domain.Instrument{aapl}, WithRetryConfig(fastRetry()))
	require.NoError(t, collector.Collect(context.Background()))

	assert.Equal(t, 3, ex.calls["AAPL"])
	assert.Equal(t, []float64{150.0}, recorder.ticks)
}

func TestCollector_GivesUpAfterMaxRetries(t *testing.T) {
	aapl := domain.NewInstrument("AAPL", domain.Equity, "NASDAQ")

	ex := newPriceExchange()
	require.NoError(t, ex.Connect(context.Background()))
	ex.failures["AAPL"] = 10 // 재시도 한도보다 많은 실패

	recorder := &tickRecorder{BaseStrategy: strategy.BaseStrategy{Name: "recorder", Config: map[string]interface{}{}}}
	loop := trading.NewLoop(ex, recorder, portfolio.New(10_000), 1)

	collector := NewCollector(ex, loop, []domain.Instrument{aapl}, WithRetryConfig(fastRetry()))
	err := collector.Collect(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "최대 재시도 횟수 초과")
	assert.Empty(t, recorder.ticks)
}

func TestCollector_NotConnectedFailsFast(t *testing.T) {
	aapl := domain.NewInstrument("AAPL", domain.Equity, "NASDAQ")

	ex := newPriceExchange() // Connect 호출 안 함

	recorder := &tickRecorder{BaseStrategy: strategy.BaseStrategy{Name: "recorder", Config: map[string]interface{}{}}}
	loop := trading.NewLoop(ex, recorder, portfolio.New(10_000), 1)

	collector := NewCollector(ex, loop, []domain.Instrument{aapl}, WithRetryConfig(fastRetry()))
	err := collector.Collect(context.Background())

	require.ErrorIs(t, err, exchange.ErrNotConnected)
	assert.Equal(t, 0, ex.calls["AAPL"], "연결 오류는 재시도 없이 바로 반환되어야 합니다")
}
