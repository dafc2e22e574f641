package trading

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assist-by/quant/internal/domain"
	"github.com/assist-by/quant/internal/portfolio"
	"github.com/assist-by/quant/internal/strategy"
	"github.com/assist-by/quant/internal/strategy/buydip"
)

// fakeExchange는 주문 동작을 제어할 수 있는 테스트용 거래소입니다
type fakeExchange struct {
	failOrders bool
	placed     []string // "SIDE SYMBOL" 기록
}

func (f *fakeExchange) Connect(ctx context.Context) error {
	return nil
}

func (f *fakeExchange) GetMarketPrice(ctx context.Context, instrument domain.Instrument) (float64, error) {
	return 100, nil
}

func (f *fakeExchange) PlaceOrder(ctx context.Context, instrument domain.Instrument, quantity float64, side domain.OrderSide) (string, error) {
	if f.failOrders {
		return "", fmt.Errorf("모의 거래소 장애")
	}
	f.placed = append(f.placed, fmt.Sprintf("%s %s", side, instrument.Symbol))
	return fmt.Sprintf("TEST-%d", len(f.placed)), nil
}

func newDipStrategy(t *testing.T, inst domain.Instrument) strategy.Strategy {
	t.Helper()

	registry := strategy.NewRegistry()
	buydip.RegisterStrategy(registry)

	s, err := registry.Create("BuyTheDip", map[string]interface{}{
		"entryThreshold": 145.0,
		"takeProfitPct":  0.02,
		"stopLossPct":    0.01,
	})
	require.NoError(t, err)
	s.Subscribe(inst)
	return s
}

func TestLoop_SignalToFill(t *testing.T) {
	inst := domain.NewInstrument("AAPL", domain.Equity, "NASDAQ")
	ex := &fakeExchange{}
	pf := portfolio.New(100_000)
	loop := NewLoop(ex, newDipStrategy(t, inst), pf, 10)

	ctx := context.Background()

	// 시그널이 없는 틱은 아무 변화도 만들지 않습니다
	require.NoError(t, loop.OnTick(ctx, inst, 150))
	assert.Empty(t, ex.placed)
	assert.InDelta(t, 100_000.0, pf.Cash(), 1e-9)

	// 임계값 아래 틱: 매수 시그널 → 주문 → 체결 반영
	require.NoError(t, loop.OnTick(ctx, inst, 144))
	require.Len(t, ex.placed, 1)
	assert.Equal(t, "BUY AAPL", ex.placed[0])
	assert.InDelta(t, 100_000-1440.0, pf.Cash(), 1e-9)

	pos, open := pf.Position(inst)
	require.True(t, open)
	assert.InDelta(t, 10.0, pos.Quantity, 1e-9)
	assert.InDelta(t, 144.0, pos.AveragePrice, 1e-9)

	// 익절 경계 틱: 매도 시그널 → 포지션 청산
	require.NoError(t, loop.OnTick(ctx, inst, 146.88))
	require.Len(t, ex.placed, 2)
	assert.Equal(t, "SELL AAPL", ex.placed[1])

	_, open = pf.Position(inst)
	assert.False(t, open)
	assert.InDelta(t, 28.8, pf.RealizedPnL(), 1e-9) // (146.88-144)*10

	trades := loop.Trades()
	require.Len(t, trades, 2)
	assert.InDelta(t, 0.0, trades[0].RealizedPnL, 1e-9)
	assert.InDelta(t, 28.8, trades[1].RealizedPnL, 1e-9)
}

func TestLoop_InsufficientCashSkipsOrder(t *testing.T) {
	inst := domain.NewInstrument("AAPL", domain.Equity, "NASDAQ")
	ex := &fakeExchange{}
	pf := portfolio.New(100) // 10주 매수에 부족한 현금
	loop := NewLoop(ex, newDipStrategy(t, inst), pf, 10)

	// 시그널은 발생하지만 현금 검사에서 걸러집니다. 에러가 아닙니다
	require.NoError(t, loop.OnTick(context.Background(), inst, 144))
	assert.Empty(t, ex.placed, "현금이 부족하면 주문이 나가지 않아야 합니다")
	assert.InDelta(t, 100.0, pf.Cash(), 1e-9)
	assert.Empty(t, loop.Trades())
}

func TestLoop_VenueFailureLeavesLedgerUntouched(t *testing.T) {
	inst := domain.NewInstrument("AAPL", domain.Equity, "NASDAQ")
	ex := &fakeExchange{failOrders: true}
	pf := portfolio.New(100_000)
	loop := NewLoop(ex, newDipStrategy(t, inst), pf, 10)

	err := loop.OnTick(context.Background(), inst, 144)
	require.Error(t, err, "거래소 장애는 호출자에게 전파되어야 합니다")

	// 주문이 실패했으므로 원장은 변경되지 않습니다
	assert.InDelta(t, 100_000.0, pf.Cash(), 1e-9)
	assert.Empty(t, pf.Positions())
	assert.Empty(t, loop.Trades())
}

func TestLoop_SellAlwaysPassesCashCheck(t *testing.T) {
	inst := domain.NewInstrument("AAPL", domain.Equity, "NASDAQ")
	ex := &fakeExchange{}
	pf := portfolio.New(1500)
	loop := NewLoop(ex, newDipStrategy(t, inst), pf, 10)

	ctx := context.Background()

	// 매수 후 현금이 거의 바닥난 상태에서도 매도는 진행됩니다
	require.NoError(t, loop.OnTick(ctx, inst, 144)) // 현금 1500 - 1440 = 60
	require.NoError(t, loop.OnTick(ctx, inst, 146.88))

	require.Len(t, ex.placed, 2)
	assert.InDelta(t, 60+1468.8, pf.Cash(), 1e-9)
}
