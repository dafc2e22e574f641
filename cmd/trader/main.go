package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	osSignal "os/signal"
	"syscall"
	"time"

	"github.com/assist-by/quant/internal/config"
	"github.com/assist-by/quant/internal/domain"
	"github.com/assist-by/quant/internal/exchange"
	"github.com/assist-by/quant/internal/exchange/paper"
	"github.com/assist-by/quant/internal/exchange/sim"
	"github.com/assist-by/quant/internal/market"
	"github.com/assist-by/quant/internal/notification"
	"github.com/assist-by/quant/internal/notification/discord"
	"github.com/assist-by/quant/internal/portfolio"
	"github.com/assist-by/quant/internal/scheduler"
	"github.com/assist-by/quant/internal/strategy"
	"github.com/assist-by/quant/internal/strategy/buydip"
	"github.com/assist-by/quant/internal/trading"
)

func main() {
	// 명령줄 플래그 정의
	demoFlag := flag.Bool("demo", false, "페이퍼 거래소에서 데모 시나리오 실행 후 종료")
	venueFlag := flag.String("venue", "", "거래소 선택 (paper/binance/ib/cme, 설정보다 우선)")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 로그 설정
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("트레이딩 시뮬레이터 시작...")

	// 설정 로드
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("설정 로드 실패: %v", err)
	}

	// Discord 클라이언트 생성 (웹훅이 하나도 없으면 알림 비활성화)
	var notifier notification.Notifier
	discordClient := discord.NewClient(
		cfg.Discord.SignalWebhook,
		cfg.Discord.TradeWebhook,
		cfg.Discord.ErrorWebhook,
		cfg.Discord.InfoWebhook,
		discord.WithTimeout(10*time.Second),
	)
	if cfg.Discord.SignalWebhook != "" || cfg.Discord.TradeWebhook != "" ||
		cfg.Discord.ErrorWebhook != "" || cfg.Discord.InfoWebhook != "" {
		notifier = discordClient

		if err := discordClient.SendInfo("🚀 트레이딩 시뮬레이터가 시작되었습니다."); err != nil {
			log.Printf("시작 알림 전송 실패: %v", err)
		}
	}

	// 플래그가 설정되었으면 .env 설정보다 우선
	venueName := cfg.App.Venue
	if *venueFlag != "" {
		venueName = *venueFlag
	}

	// 거래 종목 구성 (자산군은 거래소의 지원 범위를 따릅니다)
	assetClass := domain.Equity
	exchangeCode := "NASDAQ"
	switch venueName {
	case "binance":
		assetClass = domain.Crypto
		exchangeCode = "BINANCE"
	case "cme":
		assetClass = domain.Future
		exchangeCode = "CME"
	}

	var instruments []domain.Instrument
	for _, symbol := range cfg.App.Symbols {
		instruments = append(instruments, domain.NewInstrument(symbol, assetClass, exchangeCode))
	}

	// 거래소 선택
	var venue exchange.Exchange
	var paperVenue *paper.Exchange

	switch venueName {
	case "paper":
		paperVenue = paper.New("PaperExchange")
		venue = paperVenue
	case "binance":
		venue = sim.NewBinance("Binance")
	case "ib":
		venue = sim.NewInteractiveBrokers("InteractiveBrokers")
	case "cme":
		venue = sim.NewCME("CME")
	default:
		log.Fatalf("지원하지 않는 거래소: %s", venueName)
	}

	if err := venue.Connect(ctx); err != nil {
		log.Fatalf("거래소 연결 실패: %v", err)
	}
	log.Printf("%s 거래소 연결 완료", venueName)

	// 전략 레지스트리 생성 및 전략 등록
	strategyRegistry := strategy.NewRegistry()
	buydip.RegisterStrategy(strategyRegistry)

	// 설정 기반 전략 인스턴스 생성
	tradingStrategy, err := strategy.CreateStrategyFromConfig(strategyRegistry, cfg)
	if err != nil {
		log.Fatalf("전략 생성 실패: %v", err)
	}

	for _, inst := range instruments {
		tradingStrategy.Subscribe(inst)
	}

	if err := tradingStrategy.OnStart(ctx); err != nil {
		log.Fatalf("전략 시작 실패: %v", err)
	}

	// 포트폴리오와 실행 루프 생성
	pf := portfolio.New(cfg.Trading.InitialCash)

	loopOpts := []trading.LoopOption{}
	if notifier != nil {
		loopOpts = append(loopOpts, trading.WithNotifier(notifier))
	}
	loop := trading.NewLoop(venue, tradingStrategy, pf, cfg.Trading.OrderSize, loopOpts...)

	// 데모 모드: 정해진 가격 시나리오를 재생하고 종료
	if *demoFlag {
		if paperVenue == nil {
			log.Fatalf("데모 모드는 페이퍼 거래소에서만 실행할 수 있습니다 (VENUE=paper)")
		}

		runDemo(ctx, loop, paperVenue, instruments[0])

		if err := tradingStrategy.OnStop(ctx); err != nil {
			log.Printf("전략 종료 실패: %v", err)
		}
		printSummary(loop)
		return
	}

	// 가격 수집기 생성
	collector := market.NewCollector(
		venue,
		loop,
		instruments,
		market.WithRetryConfig(market.RetryConfig{
			MaxRetries: 3,
			BaseDelay:  1 * time.Second,
			MaxDelay:   30 * time.Second,
			Factor:     2.0,
		}),
		market.WithCollectorNotifier(notifier),
	)

	// 스케줄러 생성
	sched := scheduler.NewScheduler(cfg.App.PollInterval, collector)

	// 종료 시그널 처리
	sigChan := make(chan os.Signal, 1)
	osSignal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// 스케줄러 시작
	go func() {
		if err := sched.Start(ctx); err != nil {
			log.Printf("스케줄러 실행 중 에러 발생: %v", err)
			if notifier != nil {
				if err := notifier.SendError(err); err != nil {
					log.Printf("에러 알림 전송 실패: %v", err)
				}
			}
		}
	}()

	// 시그널 대기
	sig := <-sigChan
	log.Printf("시스템 종료 신호 수신: %v", sig)

	sched.Stop()

	if err := tradingStrategy.OnStop(ctx); err != nil {
		log.Printf("전략 종료 실패: %v", err)
	}

	printSummary(loop)

	if notifier != nil {
		if err := notifier.SendInfo("👋 트레이딩 시뮬레이터가 정상적으로 종료되었습니다."); err != nil {
			log.Printf("종료 알림 전송 실패: %v", err)
		}
	}

	log.Println("프로그램을 종료합니다.")
}

// runDemo는 저가 매수 전략의 동작을 보여주는 가격 시나리오를 재생합니다.
// 기본 설정(진입 145, 익절 2%, 손절 1%) 기준으로 144에서 진입하고
// 146.88에서 익절하는 흐름입니다.
func runDemo(ctx context.Context, loop *trading.Loop, venue *paper.Exchange, inst domain.Instrument) {
	prices := []float64{150.0, 148.0, 144.0, 146.88, 146.0, 150.0}

	for _, price := range prices {
		venue.SetPrice(inst.Symbol, price)
		log.Printf("[Demo] %s 틱: %.2f", inst.Symbol, price)

		if err := loop.OnTick(ctx, inst, price); err != nil {
			log.Printf("[Demo] 틱 처리 실패: %v", err)
		}
	}
}

// printSummary는 세션 종료 시점의 포트폴리오와 거래 통계를 출력합니다
func printSummary(loop *trading.Loop) {
	pf := loop.Portfolio()

	fmt.Println("\n===== 세션 요약 =====")
	fmt.Printf("현금 잔고: %.2f\n", pf.Cash())
	fmt.Printf("실현 손익: %.2f\n", pf.RealizedPnL())

	positions := pf.Positions()
	if len(positions) == 0 {
		fmt.Println("보유 포지션: 없음")
	} else {
		fmt.Println("보유 포지션:")
		for _, pos := range positions {
			fmt.Printf("  %s: %.4f주 @ %.2f (장부가 %.2f)\n",
				pos.Instrument.Symbol, pos.Quantity, pos.AveragePrice, pos.TotalBookValue())
		}
	}

	stats := loop.Stats()
	fmt.Printf("총 체결: %d (매수 %d / 매도 %d)\n", stats.TotalTrades, stats.BuyTrades, stats.SellTrades)
	if stats.SellTrades > 0 {
		fmt.Printf("승률: %.1f%% (%d승 %d패)\n", stats.WinRate, stats.WinningTrades, stats.LosingTrades)
		fmt.Printf("매도당 평균 손익: %.2f (표준편차 %.2f)\n", stats.AvgRealizedPnL, stats.PnLStdDev)
		fmt.Printf("최대 연승/연패: %d / %d\n", stats.MaxConsecutiveWins, stats.MaxConsecutiveLosses)
	}
}
