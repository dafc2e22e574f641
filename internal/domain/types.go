package domain

// OrderSide는 주문 방향을 정의합니다
type OrderSide string

const (
	Buy  OrderSide = "BUY"
	Sell OrderSide = "SELL"
)

// IsValid는 주문 방향이 유효한 값인지 확인합니다
func (s OrderSide) IsValid() bool {
	return s == Buy || s == Sell
}

// AssetClass는 지원하는 자산군을 정의합니다
type AssetClass string

const (
	Equity    AssetClass = "EQUITY"
	Future    AssetClass = "FUTURE"
	Crypto    AssetClass = "CRYPTO"
	Forex     AssetClass = "FOREX"
	Option    AssetClass = "OPTION"
	Bond      AssetClass = "BOND"
	ETF       AssetClass = "ETF"
	Fund      AssetClass = "FUND"
	Index     AssetClass = "INDEX"
	Commodity AssetClass = "COMMODITY"
	Warrant   AssetClass = "WARRANT"
)

// IsValid는 자산군이 지원 목록에 포함되는지 확인합니다
func (a AssetClass) IsValid() bool {
	switch a {
	case Equity, Future, Crypto, Forex, Option,
		Bond, ETF, Fund, Index, Commodity, Warrant:
		return true
	}
	return false
}

// Currency는 ISO 4217 통화 코드를 정의합니다
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	AUD Currency = "AUD"
	CAD Currency = "CAD"
)

// IsValid는 통화 코드가 지원 목록에 포함되는지 확인합니다
func (c Currency) IsValid() bool {
	switch c {
	case USD, EUR, GBP, JPY, AUD, CAD:
		return true
	}
	return false
}
