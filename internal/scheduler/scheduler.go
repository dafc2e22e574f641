package scheduler

import (
	"context"
	"log"
	"time"
)

// Task는 스케줄러가 실행할 작업을 정의하는 인터페이스입니다
type Task interface {
	Execute(ctx context.Context) error
}

// Scheduler는 일정한 간격으로 작업을 실행하는 스케줄러입니다.
// 시작 시 작업을 한 번 즉시 실행하고, 이후 간격마다 반복합니다.
type Scheduler struct {
	interval time.Duration
	task     Task
	stopCh   chan struct{}
}

// NewScheduler는 새로운 스케줄러를 생성합니다
func NewScheduler(interval time.Duration, task Task) *Scheduler {
	return &Scheduler{
		interval: interval,
		task:     task,
		stopCh:   make(chan struct{}),
	}
}

// Start는 스케줄러를 시작합니다.
// 컨텍스트가 취소되거나 Stop이 호출될 때까지 블로킹합니다.
func (s *Scheduler) Start(ctx context.Context) error {
	// 첫 사이클은 간격을 기다리지 않고 바로 실행
	if err := s.task.Execute(ctx); err != nil {
		log.Printf("작업 실행 실패: %v", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-s.stopCh:
			return nil

		case <-ticker.C:
			if err := s.task.Execute(ctx); err != nil {
				log.Printf("작업 실행 실패: %v", err)
				// 에러가 발생해도 다음 사이클은 계속 실행
			}
		}
	}
}

// Stop은 스케줄러를 중지합니다
func (s *Scheduler) Stop() {
	close(s.stopCh)
}
