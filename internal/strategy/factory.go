package strategy

import "github.com/assist-by/quant/internal/config"

// CreateStrategyFromConfig는 설정에 따라 적절한 전략을 생성합니다
func CreateStrategyFromConfig(registry *Registry, cfg *config.Config) (Strategy, error) {
	strategyName := cfg.Trading.Strategy

	// 전략별 설정 맵 생성
	strategyConfigs := map[string]map[string]interface{}{
		"BuyTheDip": {
			"entryThreshold": cfg.Strategy.EntryThreshold,
			"takeProfitPct":  cfg.Strategy.TakeProfitPct,
			"stopLossPct":    cfg.Strategy.StopLossPct,
		},
	}

	strategyConfig, exists := strategyConfigs[strategyName]
	if !exists {
		// 등록된 전략이 아니면 기본 전략 사용
		strategyName = "BuyTheDip"
		strategyConfig = strategyConfigs[strategyName]
	}

	return registry.Create(strategyName, strategyConfig)
}
