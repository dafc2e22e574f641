package strategy

import (
	"context"
	"fmt"
	"log"

	"github.com/assist-by/quant/internal/domain"
)

// Strategy는 트레이딩 전략의 인터페이스를 정의합니다.
// 전략은 의사결정만 담당하며 주문, 리스크, 거래소 연결은 다루지 않습니다.
type Strategy interface {
	// Subscribe는 전략이 감시할 상품을 등록합니다
	Subscribe(instrument domain.Instrument)

	// OnStart는 세션 시작 시 호출되는 수명주기 훅입니다
	OnStart(ctx context.Context) error

	// OnMarketData는 틱을 분석하여 매매 시그널을 생성합니다.
	// 시그널이 없으면 (nil, nil)을 반환합니다.
	OnMarketData(ctx context.Context, instrument domain.Instrument, price float64) (*domain.Signal, error)

	// OnStop은 세션 종료 시 호출되는 수명주기 훅입니다
	OnStop(ctx context.Context) error

	// GetName은 전략의 이름을 반환합니다
	GetName() string

	// GetConfig는 전략의 현재 설정을 반환합니다
	GetConfig() map[string]interface{}

	// UpdateConfig는 전략 설정을 업데이트합니다
	UpdateConfig(config map[string]interface{}) error
}

// BaseStrategy는 모든 전략 구현체에서 공통적으로 사용할 수 있는 기본 구현을 제공합니다
type BaseStrategy struct {
	Name        string
	Description string
	Config      map[string]interface{}
	Instruments []domain.Instrument
}

// Subscribe는 상품을 구독 목록에 추가합니다
func (b *BaseStrategy) Subscribe(instrument domain.Instrument) {
	log.Printf("[%s] %s 데이터 구독", b.Name, instrument.Symbol)
	b.Instruments = append(b.Instruments, instrument)
}

// IsSubscribed는 상품이 구독 목록에 포함되는지 확인합니다
func (b *BaseStrategy) IsSubscribed(instrument domain.Instrument) bool {
	for _, inst := range b.Instruments {
		if inst == instrument {
			return true
		}
	}
	return false
}

// GetName은 전략의 이름을 반환합니다
func (b *BaseStrategy) GetName() string {
	return b.Name
}

// GetConfig는 전략의 현재 설정을 반환합니다
func (b *BaseStrategy) GetConfig() map[string]interface{} {
	// 설정의 복사본 반환
	configCopy := make(map[string]interface{})
	for k, v := range b.Config {
		configCopy[k] = v
	}
	return configCopy
}

// UpdateConfig는 전략 설정을 업데이트합니다
func (b *BaseStrategy) UpdateConfig(config map[string]interface{}) error {
	for k, v := range config {
		b.Config[k] = v
	}
	return nil
}

// Factory는 전략 인스턴스를 생성하는 함수 타입입니다
type Factory func(config map[string]interface{}) (Strategy, error)

// Registry는 사용 가능한 모든 전략을 등록하고 관리합니다
type Registry struct {
	strategies map[string]Factory
}

// NewRegistry는 새로운 전략 레지스트리를 생성합니다
func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[string]Factory),
	}
}

// Register는 새로운 전략 팩토리를 레지스트리에 등록합니다
func (r *Registry) Register(name string, factory Factory) {
	r.strategies[name] = factory
}

// Create는 주어진 이름과 설정으로 전략 인스턴스를 생성합니다
func (r *Registry) Create(name string, config map[string]interface{}) (Strategy, error) {
	factory, exists := r.strategies[name]
	if !exists {
		return nil, fmt.Errorf("존재하지 않는 전략: %s", name)
	}
	return factory(config)
}

// ListStrategies는 사용 가능한 모든 전략 이름을 반환합니다
func (r *Registry) ListStrategies() []string {
	var names []string
	for name := range r.strategies {
		names = append(names, name)
	}
	return names
}
