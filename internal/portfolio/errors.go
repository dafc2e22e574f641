package portfolio

import "fmt"

// Error 타입들은 원장 갱신 중 발생할 수 있는 에러를 정의합니다
var (
	ErrInvalidQuantity      = fmt.Errorf("수량은 0보다 커야 합니다")
	ErrInvalidPrice         = fmt.Errorf("가격은 0보다 커야 합니다")
	ErrInsufficientPosition = fmt.Errorf("보유 수량보다 많이 매도할 수 없습니다")
	ErrNoOpenPosition       = fmt.Errorf("해당 상품의 포지션이 존재하지 않습니다")
	ErrInvalidSide          = fmt.Errorf("유효하지 않은 주문 방향입니다")
)

// FillError는 체결 적용 에러를 확장한 구조체입니다
type FillError struct {
	Symbol string
	Op     string
	Err    error
}

// Error는 error 인터페이스를 구현합니다
func (e *FillError) Error() string {
	if e.Symbol != "" {
		return fmt.Sprintf("체결 에러 [%s, 작업: %s]: %v", e.Symbol, e.Op, e.Err)
	}
	return fmt.Sprintf("체결 에러 [작업: %s]: %v", e.Op, e.Err)
}

// Unwrap은 내부 에러를 반환합니다 (errors.Is/As 지원을 위함)
func (e *FillError) Unwrap() error {
	return e.Err
}

// NewFillError는 새로운 FillError를 생성합니다
func NewFillError(symbol, op string, err error) *FillError {
	return &FillError{
		Symbol: symbol,
		Op:     op,
		Err:    err,
	}
}
