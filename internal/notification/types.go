package notification

import "github.com/assist-by/quant/internal/domain"

const (
	ColorSuccess = 0x00FF00 // 녹색
	ColorError   = 0xFF0000 // 빨간색
	ColorInfo    = 0x0000FF // 파란색
	ColorWarning = 0xFFA500 // 주황색
)

// Notifier는 알림 전송 인터페이스를 정의합니다
type Notifier interface {
	// SendSignal은 트레이딩 시그널 알림을 전송합니다
	SendSignal(signal *domain.Signal, price float64) error

	// SendError는 에러 알림을 전송합니다
	SendError(err error) error

	// SendInfo는 일반 정보 알림을 전송합니다
	SendInfo(message string) error

	// SendTradeInfo는 체결 정보를 전송합니다
	SendTradeInfo(info TradeInfo) error
}

// TradeInfo는 체결된 거래 정보를 정의합니다
type TradeInfo struct {
	OrderID     string           // 거래소가 반환한 주문 ID
	Symbol      string           // 심볼 (예: AAPL)
	Side        domain.OrderSide // 매수/매도
	Quantity    float64          // 체결 수량
	Price       float64          // 체결 가격
	RealizedPnL float64          // 이번 체결의 실현 손익 (매도 시에만 의미)
	Cash        float64          // 체결 후 현금 잔고
}

// GetColorForSide는 주문 방향에 따른 색상을 반환합니다
func GetColorForSide(side domain.OrderSide) int {
	switch side {
	case domain.Buy:
		return ColorSuccess
	case domain.Sell:
		return ColorError
	default:
		return ColorInfo
	}
}
