package buydip

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assist-by/quant/internal/domain"
	"github.com/assist-by/quant/internal/strategy"
)

func newTestStrategy(t *testing.T) strategy.Strategy {
	t.Helper()

	s, err := NewStrategy(map[string]interface{}{
		"entryThreshold": 145.0,
		"takeProfitPct":  0.02,
		"stopLossPct":    0.01,
	})
	require.NoError(t, err)
	return s
}

func TestStrategy_DipEntryAndTakeProfit(t *testing.T) {
	s := newTestStrategy(t)
	inst := domain.NewInstrument("AAPL", domain.Equity, "NASDAQ")
	s.Subscribe(inst)

	ctx := context.Background()
	require.NoError(t, s.OnStart(ctx))

	// 진입 임계값 145, 익절 2%, 손절 1%일 때의 기대 시그널 순서:
	// 144에서 매수, 146.88(= 144 * 1.02, 정확한 경계)에서 익절,
	// 그 외 틱은 시그널 없음
	ticks := []float64{150, 148, 144, 146.88, 146.00, 150}
	wantSides := []domain.OrderSide{"", "", domain.Buy, domain.Sell, "", ""}

	for i, price := range ticks {
		sig, err := s.OnMarketData(ctx, inst, price)
		require.NoError(t, err)

		if wantSides[i] == "" {
			assert.Nil(t, sig, "틱 %d (%.2f)에서 시그널이 없어야 합니다", i, price)
			continue
		}

		require.NotNil(t, sig, "틱 %d (%.2f)에서 시그널이 있어야 합니다", i, price)
		assert.Equal(t, wantSides[i], sig.Side)
		assert.Equal(t, inst, sig.Instrument)
		assert.InDelta(t, 1.0, sig.Strength, 1e-9)
	}

	require.NoError(t, s.OnStop(ctx))
}

func TestStrategy_StopLossExit(t *testing.T) {
	s := newTestStrategy(t)
	inst := domain.NewInstrument("AAPL", domain.Equity, "NASDAQ")
	s.Subscribe(inst)

	ctx := context.Background()

	sig, err := s.OnMarketData(ctx, inst, 144)
	require.NoError(t, err)
	require.NotNil(t, sig)
	require.Equal(t, domain.Buy, sig.Side)

	// 진입가 대비 -1% 경계 (144 * 0.99 = 142.56)
	sig, err = s.OnMarketData(ctx, inst, 142.56)
	require.NoError(t, err)
	require.NotNil(t, sig)
	assert.Equal(t, domain.Sell, sig.Side)

	// 손절 후 FLAT 상태이므로 임계값 아래 가격은 다시 진입합니다
	sig, err = s.OnMarketData(ctx, inst, 142.0)
	require.NoError(t, err)
	require.NotNil(t, sig)
	assert.Equal(t, domain.Buy, sig.Side)
}

func TestStrategy_HoldBetweenThresholds(t *testing.T) {
	s := newTestStrategy(t)
	inst := domain.NewInstrument("AAPL", domain.Equity, "NASDAQ")
	s.Subscribe(inst)

	ctx := context.Background()

	sig, err := s.OnMarketData(ctx, inst, 144)
	require.NoError(t, err)
	require.NotNil(t, sig)

	// 익절과 손절 사이의 가격은 시그널을 만들지 않습니다
	for _, price := range []float64{144.5, 145.0, 146.0, 143.0} {
		sig, err = s.OnMarketData(ctx, inst, price)
		require.NoError(t, err)
		assert.Nil(t, sig, "가격 %.2f에서 시그널이 없어야 합니다", price)
	}
}

func TestStrategy_UnsubscribedInstrument(t *testing.T) {
	s := newTestStrategy(t)
	inst := domain.NewInstrument("AAPL", domain.Equity, "NASDAQ")
	// 구독하지 않음

	sig, err := s.OnMarketData(context.Background(), inst, 100)
	require.NoError(t, err)
	assert.Nil(t, sig)
}

func TestStrategy_IndependentInstrumentStates(t *testing.T) {
	s := newTestStrategy(t)
	aapl := domain.NewInstrument("AAPL", domain.Equity, "NASDAQ")
	msft := domain.NewInstrument("MSFT", domain.Equity, "NASDAQ")
	s.Subscribe(aapl)
	s.Subscribe(msft)

	ctx := context.Background()

	// AAPL만 진입
	sig, err := s.OnMarketData(ctx, aapl, 144)
	require.NoError(t, err)
	require.NotNil(t, sig)

	// MSFT는 여전히 FLAT이므로 임계값 아래에서 진입합니다
	sig, err = s.OnMarketData(ctx, msft, 140)
	require.NoError(t, err)
	require.NotNil(t, sig)
	assert.Equal(t, domain.Buy, sig.Side)

	// AAPL은 ENTERED 상태이므로 같은 가격에서 재진입하지 않습니다
	sig, err = s.OnMarketData(ctx, aapl, 144)
	require.NoError(t, err)
	assert.Nil(t, sig)
}

func TestNewStrategy_ConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		config map[string]interface{}
	}{
		{name: "설정 누락", config: map[string]interface{}{}},
		{
			name: "잘못된 타입",
			config: map[string]interface{}{
				"entryThreshold": "145",
				"takeProfitPct":  0.02,
				"stopLossPct":    0.01,
			},
		},
		{
			name: "음수 임계값",
			config: map[string]interface{}{
				"entryThreshold": -145.0,
				"takeProfitPct":  0.02,
				"stopLossPct":    0.01,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStrategy(tt.config)
			assert.Error(t, err)
		})
	}
}
