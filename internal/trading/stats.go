package trading

import (
	"github.com/montanaflynn/stats"

	"github.com/assist-by/quant/internal/domain"
)

// SessionStats는 한 세션의 거래 통계를 담습니다.
// 승/패 판정은 매도 체결의 실현 손익 기준입니다 (매수는 집계에서 제외).
type SessionStats struct {
	TotalTrades   int // 원장에 반영된 전체 체결 수
	BuyTrades     int
	SellTrades    int
	WinningTrades int // 실현 손익 > 0인 매도
	LosingTrades  int // 실현 손익 < 0인 매도

	WinRate          float64 // 승률 (%)
	TotalRealizedPnL float64
	AvgRealizedPnL   float64 // 매도 체결당 평균 실현 손익
	PnLStdDev        float64 // 매도 체결 실현 손익의 표준편차 (표본)

	MaxConsecutiveWins   int
	MaxConsecutiveLosses int
}

// CalculateSessionStats는 체결 기록에서 세션 통계를 계산합니다
func CalculateSessionStats(trades []TradeRecord) *SessionStats {
	result := &SessionStats{
		TotalTrades: len(trades),
	}

	var pnls []float64

	// 연속 승/패 계산 변수
	currentWins := 0
	currentLosses := 0

	for _, trade := range trades {
		if trade.Side == domain.Buy {
			result.BuyTrades++
			continue
		}
		result.SellTrades++
		result.TotalRealizedPnL += trade.RealizedPnL
		pnls = append(pnls, trade.RealizedPnL)

		switch {
		case trade.RealizedPnL > 0:
			result.WinningTrades++
			currentWins++
			currentLosses = 0
			if currentWins > result.MaxConsecutiveWins {
				result.MaxConsecutiveWins = currentWins
			}
		case trade.RealizedPnL < 0:
			result.LosingTrades++
			currentLosses++
			currentWins = 0
			if currentLosses > result.MaxConsecutiveLosses {
				result.MaxConsecutiveLosses = currentLosses
			}
		default:
			currentWins = 0
			currentLosses = 0
		}
	}

	if result.SellTrades > 0 {
		result.WinRate = float64(result.WinningTrades) / float64(result.SellTrades) * 100

		if mean, err := stats.Mean(pnls); err == nil {
			result.AvgRealizedPnL = mean
		}
	}

	// 표본 표준편차는 매도 체결이 2건 이상일 때만 의미가 있습니다
	if len(pnls) >= 2 {
		if stdev, err := stats.StandardDeviationSample(pnls); err == nil {
			result.PnLStdDev = stdev
		}
	}

	return result
}
