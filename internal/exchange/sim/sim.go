// Package sim은 실 거래소의 동작 특성을 흉내 내는 시뮬레이션 구현체들을
// 제공합니다. 실제 프로토콜 처리나 인증, 네트워크 I/O는 수행하지 않으며
// 거래소별 자산군 지원 범위와 응답 형태만 재현합니다.
package sim

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/assist-by/quant/internal/domain"
	"github.com/assist-by/quant/internal/exchange"
)

// Binance는 암호화폐 전용 거래소 시뮬레이션입니다
type Binance struct {
	name      string
	connected bool
}

// NewBinance는 새로운 바이낸스 시뮬레이션을 생성합니다
func NewBinance(name string) *Binance {
	return &Binance{name: name}
}

// Connect는 연결을 시뮬레이션합니다
func (b *Binance) Connect(ctx context.Context) error {
	log.Printf("[%s] Binance API 연결 (HMAC SHA256)... 연결됨", b.name)
	b.connected = true
	return nil
}

// GetMarketPrice는 암호화폐 가격을 반환합니다. 다른 자산군은 0(미지원)입니다
func (b *Binance) GetMarketPrice(ctx context.Context, instrument domain.Instrument) (float64, error) {
	if instrument.AssetClass != domain.Crypto {
		log.Printf("[%s] 경고: Binance는 암호화폐만 지원합니다 (%s)", b.name, instrument.Symbol)
		return 0, nil
	}
	if instrument.Symbol == "BTC" {
		return 45000.00, nil
	}
	return 3000.00, nil
}

// PlaceOrder는 주문을 시뮬레이션합니다
func (b *Binance) PlaceOrder(ctx context.Context, instrument domain.Instrument, quantity float64, side domain.OrderSide) (string, error) {
	if !b.connected {
		return "", exchange.ErrNotConnected
	}
	log.Printf("[%s] REST API POST /api/v3/order 전송: %s %.4f %s",
		b.name, side, quantity, instrument.Symbol)
	return fmt.Sprintf("BINANCE-%s", uuid.NewString()[:6]), nil
}

// InteractiveBrokers는 멀티에셋 브로커 시뮬레이션입니다
type InteractiveBrokers struct {
	name      string
	connected bool
}

// NewInteractiveBrokers는 새로운 IBKR 시뮬레이션을 생성합니다
func NewInteractiveBrokers(name string) *InteractiveBrokers {
	return &InteractiveBrokers{name: name}
}

// Connect는 TWS 게이트웨이 연결을 시뮬레이션합니다
func (ib *InteractiveBrokers) Connect(ctx context.Context) error {
	log.Printf("[%s] TWS/IB Gateway 연결 (포트 7497)... 연결됨", ib.name)
	ib.connected = true
	return nil
}

// GetMarketPrice는 자산군별 모의 호가를 반환합니다
func (ib *InteractiveBrokers) GetMarketPrice(ctx context.Context, instrument domain.Instrument) (float64, error) {
	switch instrument.AssetClass {
	case domain.Equity:
		return 155.00, nil
	case domain.Forex:
		return 1.10, nil
	}
	return 0, nil
}

// PlaceOrder는 주문을 시뮬레이션합니다
func (ib *InteractiveBrokers) PlaceOrder(ctx context.Context, instrument domain.Instrument, quantity float64, side domain.OrderSide) (string, error) {
	if !ib.connected {
		return "", exchange.ErrNotConnected
	}
	log.Printf("[%s] IB Gateway로 placeOrder 전송: %s %.4f %s (%s)",
		ib.name, side, quantity, instrument.Symbol, instrument.ExchangeCode)
	return fmt.Sprintf("IB-%s", uuid.NewString()[:6]), nil
}

// CME는 선물 전용 거래소 시뮬레이션입니다
type CME struct {
	name      string
	connected bool
}

// NewCME는 새로운 CME 시뮬레이션을 생성합니다
func NewCME(name string) *CME {
	return &CME{name: name}
}

// Connect는 FIX 세션 초기화를 시뮬레이션합니다
func (c *CME) Connect(ctx context.Context) error {
	log.Printf("[%s] FIX 프로토콜 세션 초기화... 연결됨", c.name)
	c.connected = true
	return nil
}

// GetMarketPrice는 선물 가격을 반환합니다. 다른 자산군은 0(미지원)입니다
func (c *CME) GetMarketPrice(ctx context.Context, instrument domain.Instrument) (float64, error) {
	if instrument.AssetClass != domain.Future {
		return 0, nil
	}
	return 4550.25, nil
}

// PlaceOrder는 주문을 시뮬레이션합니다
func (c *CME) PlaceOrder(ctx context.Context, instrument domain.Instrument, quantity float64, side domain.OrderSide) (string, error) {
	if !c.connected {
		return "", exchange.ErrNotConnected
	}
	log.Printf("[%s] FIX NewOrderSingle(35=D) 전송: %s %.4f %s",
		c.name, side, quantity, instrument.Symbol)
	return fmt.Sprintf("CME-%s", uuid.NewString()[:6]), nil
}
