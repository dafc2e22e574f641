package market

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/assist-by/quant/internal/domain"
	"github.com/assist-by/quant/internal/exchange"
	"github.com/assist-by/quant/internal/notification"
	"github.com/assist-by/quant/internal/trading"
)

// RetryConfig는 재시도 설정을 정의합니다
type RetryConfig struct {
	MaxRetries int           // 최대 재시도 횟수
	BaseDelay  time.Duration // 기본 대기 시간
	MaxDelay   time.Duration // 최대 대기 시간
	Factor     float64       // 대기 시간 증가 계수
}

// Collector는 구독 종목의 시장 가격을 수집해 실행 루프에 공급합니다
type Collector struct {
	exchange    exchange.Exchange
	loop        *trading.Loop
	notifier    notification.Notifier
	instruments []domain.Instrument

	retry RetryConfig
}

// CollectorOption은 수집기의 옵션을 정의합니다
type CollectorOption func(*Collector)

// WithRetryConfig는 재시도 설정을 지정합니다
func WithRetryConfig(config RetryConfig) CollectorOption {
	return func(c *Collector) {
		c.retry = config
	}
}

// WithCollectorNotifier는 수집 실패 알림 전송기를 설정합니다
func WithCollectorNotifier(notifier notification.Notifier) CollectorOption {
	return func(c *Collector) {
		c.notifier = notifier
	}
}

// NewCollector는 새로운 가격 수집기를 생성합니다
func NewCollector(ex exchange.Exchange, loop *trading.Loop, instruments []domain.Instrument, opts ...CollectorOption) *Collector {
	c := &Collector{
		exchange:    ex,
		loop:        loop,
		instruments: instruments,
		retry: RetryConfig{
			MaxRetries: 3,
			BaseDelay:  1 * time.Second,
			MaxDelay:   30 * time.Second,
			Factor:     2.0,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Collect는 한 번의 가격 수집 사이클을 수행합니다.
// 종목별로 현재 가격을 조회해 실행 루프에 전달하며,
// 가격이 0인 종목(해당 거래소 미지원)은 건너뜁니다.
func (c *Collector) Collect(ctx context.Context) error {
	for _, instrument := range c.instruments {
		var price float64

		err := c.withRetry(ctx, fmt.Sprintf("%s 가격 조회", instrument.Symbol), func() error {
			var fetchErr error
			price, fetchErr = c.exchange.GetMarketPrice(ctx, instrument)
			return fetchErr
		})
		if err != nil {
			return err
		}

		if price == 0 {
			log.Printf("[Collector] %s: 거래소가 지원하지 않는 종목, 건너뜀", instrument.Symbol)
			continue
		}

		if err := c.loop.OnTick(ctx, instrument, price); err != nil {
			return fmt.Errorf("%s 틱 처리 실패: %w", instrument.Symbol, err)
		}
	}

	return nil
}

// Execute는 스케줄러 Task 인터페이스를 구현합니다
func (c *Collector) Execute(ctx context.Context) error {
	return c.Collect(ctx)
}

// withRetry는 재시도 로직을 구현한 래퍼 함수입니다
func (c *Collector) withRetry(ctx context.Context, operation string, fn func() error) error {
	var lastErr error
	delay := c.retry.BaseDelay

	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if err := fn(); err != nil {
				lastErr = err

				// 연결 자체가 끊긴 경우 재시도해도 소용이 없습니다
				if errors.Is(err, exchange.ErrNotConnected) {
					log.Printf("%s 실패 (재시도 불필요): %v", operation, err)
					return err
				}

				if attempt == c.retry.MaxRetries {
					errMsg := fmt.Errorf("%s 실패 (최대 재시도 횟수 초과): %v", operation, err)
					if c.notifier != nil {
						if notifyErr := c.notifier.SendError(errMsg); notifyErr != nil {
							log.Printf("에러 알림 전송 실패: %v", notifyErr)
						}
					}
					return fmt.Errorf("최대 재시도 횟수 초과: %w", lastErr)
				}

				log.Printf("%s 실패 (attempt %d/%d): %v",
					operation, attempt+1, c.retry.MaxRetries, err)

				// 다음 재시도 전 대기
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(delay):
					delay = time.Duration(float64(delay) * c.retry.Factor)
					if delay > c.retry.MaxDelay {
						delay = c.retry.MaxDelay
					}
				}
				continue
			}
			return nil
		}
	}

	return lastErr
}
