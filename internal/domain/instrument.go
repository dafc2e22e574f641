package domain

import (
	"fmt"
	"math"
)

// 가격-틱 정합성 검사에 사용하는 부동소수점 허용 오차
const tickEpsilon = 1e-9

// Instrument는 거래 대상 금융 상품의 불변 기술자입니다.
// 모든 필드가 비교 가능한 값 타입이므로 맵 키로 사용할 수 있으며,
// 동일한 상품을 기술하는 두 값은 값 동등성으로 같다고 판단됩니다.
type Instrument struct {
	// 식별 정보
	Symbol       string
	AssetClass   AssetClass
	ExchangeCode string
	ISIN         string // 없을 수 있음
	CUSIP        string // 없을 수 있음

	// 시장 구조
	TickSize    float64
	MinOrderQty float64
	LotSize     float64

	// 가치 평가
	QuoteCurrency Currency
	Multiplier    float64

	// 자산군별 확장 필드 (AssetClass 태그에 따라 의미가 결정됩니다)
	DividendYield   float64  // EQUITY
	ExpirationDate  string   // FUTURE, OPTION (예: "2026-12-18")
	StrikePrice     float64  // OPTION
	CryptoCode      string   // CRYPTO (예: "BTC")
	BaseCurrency    Currency // FOREX
	CounterCurrency Currency // FOREX
}

// NewInstrument는 공통 필드의 기본값을 채운 Instrument를 생성합니다
func NewInstrument(symbol string, assetClass AssetClass, exchangeCode string) Instrument {
	return Instrument{
		Symbol:        symbol,
		AssetClass:    assetClass,
		ExchangeCode:  exchangeCode,
		TickSize:      0.01,
		MinOrderQty:   1.0,
		LotSize:       1.0,
		QuoteCurrency: USD,
		Multiplier:    1.0,
	}
}

// CalculateValue는 포지션의 명목 가치를 계산합니다.
// 공식: 가격 * 수량 * 승수
func (i Instrument) CalculateValue(price, quantity float64) float64 {
	return price * quantity * i.Multiplier
}

// IsPriceValid는 가격이 틱 사이즈에 정렬되어 있는지 확인합니다.
// (예: 틱 사이즈가 0.01이면 100.015는 유효하지 않은 가격입니다)
func (i Instrument) IsPriceValid(price float64) bool {
	remainder := math.Mod(price, i.TickSize)
	return remainder < tickEpsilon || math.Abs(remainder-i.TickSize) < tickEpsilon
}

// RoundToTick은 가격을 가장 가까운 틱 사이즈 배수로 반올림합니다
func (i Instrument) RoundToTick(price float64) float64 {
	return math.Round(price/i.TickSize) * i.TickSize
}

// Validate는 공통 불변식과 자산군별 불변식을 검증합니다.
// 자산군별 검증은 AssetClass 태그에 따라 분기합니다.
func (i Instrument) Validate() error {
	if i.Symbol == "" {
		return fmt.Errorf("심볼이 비어있습니다")
	}
	if !i.AssetClass.IsValid() {
		return fmt.Errorf("지원하지 않는 자산군입니다: %s", i.AssetClass)
	}
	if i.TickSize <= 0 {
		return fmt.Errorf("틱 사이즈는 0보다 커야 합니다: %f", i.TickSize)
	}
	if i.Multiplier <= 0 {
		return fmt.Errorf("승수는 0보다 커야 합니다: %f", i.Multiplier)
	}
	if !i.QuoteCurrency.IsValid() {
		return fmt.Errorf("지원하지 않는 통화입니다: %s", i.QuoteCurrency)
	}

	switch i.AssetClass {
	case Equity:
		if i.DividendYield < 0 {
			return fmt.Errorf("배당 수익률은 음수일 수 없습니다: %f", i.DividendYield)
		}
	case Future:
		if i.ExpirationDate == "" {
			return fmt.Errorf("선물은 만기일이 필요합니다")
		}
	case Option:
		if i.ExpirationDate == "" {
			return fmt.Errorf("옵션은 만기일이 필요합니다")
		}
		if i.StrikePrice <= 0 {
			return fmt.Errorf("옵션 행사가는 0보다 커야 합니다: %f", i.StrikePrice)
		}
	case Crypto:
		if i.CryptoCode == "" {
			return fmt.Errorf("암호화폐 코드가 필요합니다")
		}
	case Forex:
		if !i.BaseCurrency.IsValid() || !i.CounterCurrency.IsValid() {
			return fmt.Errorf("FX 통화쌍이 올바르지 않습니다: %s/%s", i.BaseCurrency, i.CounterCurrency)
		}
	}

	return nil
}
