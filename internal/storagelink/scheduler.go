package storagelink

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Scheduler 定时检查存储链接，启动时立即执行一次
type Scheduler struct {
	guardian *Guardian
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func NewScheduler(g *Guardian, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{guardian: g, interval: interval}
}

// Start 重复调用无效
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go func(stop, done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.run()
		for {
			select {
			case <-ticker.C:
				s.run()
			case <-ctx.Done():
				return
			case <-stop:
				return
			}
		}
	}(s.stop, s.done)
}

// Stop 停止并等待当前一次检查结束
func (s *Scheduler) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (s *Scheduler) run() {
	relinked, err := s.guardian.Ensure()
	if err != nil {
		slog.Error("定时检查存储链接失败", "op", "storagelink.Scheduler", "error", err)
		return
	}
	slog.Debug("定时检查存储链接完成", "op", "storagelink.Scheduler", "relinked", relinked)
}
