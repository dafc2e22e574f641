// internal/exchange/exchange.go
package exchange

import (
	"context"
	"fmt"

	"github.com/assist-by/quant/internal/domain"
)

// ErrNotConnected는 Connect 전에 거래 기능을 호출했을 때 반환됩니다
var ErrNotConnected = fmt.Errorf("거래소에 연결되어 있지 않습니다")

// Exchange는 거래소와의 상호작용을 위한 인터페이스입니다.
// 모든 거래소 구현체(페이퍼, 시뮬레이션 등)는 이 계약을 따라야 하며
// 구현체 선택은 세션 구성 시점에 이루어집니다.
type Exchange interface {
	// Connect는 거래소와의 연결을 수립합니다
	Connect(ctx context.Context) error

	// GetMarketPrice는 상품의 현재 시장 가격을 조회합니다.
	// 0은 해당 거래소가 상품을 지원하지 않거나 가격을 제공할 수 없음을
	// 의미하며, 실제 0 가격이 아닙니다.
	GetMarketPrice(ctx context.Context, instrument domain.Instrument) (float64, error)

	// PlaceOrder는 주문을 실행하고 주문 ID를 반환합니다.
	// 연결 전에 호출하면 ErrNotConnected를 반환합니다.
	PlaceOrder(ctx context.Context, instrument domain.Instrument, quantity float64, side domain.OrderSide) (string, error)
}
