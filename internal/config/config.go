package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// 애플리케이션 설정
	App struct {
		PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"5s"`
		Venue        string        `envconfig:"VENUE" default:"paper"`
		Symbols      []string      `envconfig:"SYMBOLS" default:"AAPL"`
	}

	// 거래 설정
	Trading struct {
		InitialCash float64 `envconfig:"INITIAL_CASH" default:"100000"`
		OrderSize   float64 `envconfig:"ORDER_SIZE" default:"10"`
		Strategy    string  `envconfig:"STRATEGY" default:"BuyTheDip"`
	}

	// 전략 설정
	Strategy struct {
		EntryThreshold float64 `envconfig:"ENTRY_THRESHOLD" default:"145.0"`
		TakeProfitPct  float64 `envconfig:"TAKE_PROFIT_PCT" default:"0.02"`
		StopLossPct    float64 `envconfig:"STOP_LOSS_PCT" default:"0.01"`
	}

	// 디스코드 웹훅 설정 (비어있으면 알림을 보내지 않습니다)
	Discord struct {
		SignalWebhook string `envconfig:"DISCORD_SIGNAL_WEBHOOK"`
		TradeWebhook  string `envconfig:"DISCORD_TRADE_WEBHOOK"`
		ErrorWebhook  string `envconfig:"DISCORD_ERROR_WEBHOOK"`
		InfoWebhook   string `envconfig:"DISCORD_INFO_WEBHOOK"`
	}
}

// ValidateConfig는 설정이 유효한지 확인합니다.
func ValidateConfig(cfg *Config) error {
	if cfg.Trading.InitialCash <= 0 {
		return fmt.Errorf("초기 현금은 0보다 커야 합니다")
	}

	if cfg.Trading.OrderSize <= 0 {
		return fmt.Errorf("주문 수량은 0보다 커야 합니다")
	}

	if cfg.Strategy.EntryThreshold <= 0 {
		return fmt.Errorf("진입 임계값은 0보다 커야 합니다")
	}

	if cfg.Strategy.TakeProfitPct <= 0 || cfg.Strategy.StopLossPct <= 0 {
		return fmt.Errorf("익절/손절 비율은 0보다 커야 합니다")
	}

	if cfg.App.PollInterval < time.Second {
		return fmt.Errorf("POLL_INTERVAL은 1초 이상이어야 합니다")
	}

	if len(cfg.App.Symbols) == 0 {
		return fmt.Errorf("거래 심볼이 최소 하나 필요합니다")
	}

	switch cfg.App.Venue {
	case "paper", "binance", "ib", "cme":
	default:
		return fmt.Errorf("지원하지 않는 거래소입니다: %s", cfg.App.Venue)
	}

	return nil
}

// LoadConfig는 환경변수에서 설정을 로드합니다.
func LoadConfig() (*Config, error) {
	// .env 파일 로드 (없으면 환경변수만 사용)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf(".env 파일 로드 실패: %w", err)
	}

	var cfg Config
	// 환경변수를 구조체로 파싱
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("환경변수 처리 실패: %w", err)
	}

	// 설정값 검증
	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("설정값 검증 실패: %w", err)
	}

	return &cfg, nil
}
