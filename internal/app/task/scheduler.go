/*
 * @Description: 定时任务调度器
 * @Author: 安知鱼
 * @Date: 2025-07-12 16:09:46
 * @LastEditTime: 2026-10-15 15:58:30
 * @LastEditors: 安知鱼
 */
package task

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/robfig/cron/v3"

	"github.com/hollowpress/hollow-press/pkg/service/search"
)

// DefaultTrendingDecaySpec 默认每小时整点执行一次衰减（带秒字段）
const DefaultTrendingDecaySpec = "0 0 * * * *"

// Scheduler 封装了 cron 实例和其依赖，负责任务的注册、启动和停止。
type Scheduler struct {
	cron    *cron.Cron
	logger  *slog.Logger
	tracker *search.TrendingTracker
}

// NewScheduler 是 Scheduler 的构造函数。
func NewScheduler(tracker *search.TrendingTracker) *Scheduler {
	slogHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(slogHandler).With("system", "cron")

	// 日志装饰器放在最内层，才能拿到真实任务的名称
	c := cron.New(
		cron.WithSeconds(),
		cron.WithChain(
			cron.DelayIfStillRunning(cron.DefaultLogger),
			NewPanicRecoveryWrapper(logger),
			NewLoggingWrapper(logger),
		),
	)

	return &Scheduler{
		cron:    c,
		logger:  logger,
		tracker: tracker,
	}
}

// RegisterJobs 注册所有定时任务，cron 表达式为空时每小时整点执行
func (s *Scheduler) RegisterJobs(decaySpec string) error {
	if decaySpec == "" {
		decaySpec = DefaultTrendingDecaySpec
	}

	job := NewTrendingDecayJob(s.tracker, s.logger)
	if _, err := s.cron.AddJob(decaySpec, job); err != nil {
		s.logger.Error("Failed to add 'TrendingDecayJob'", slog.Any("error", err))
		return fmt.Errorf("注册热门词衰减任务失败: %w", err)
	}
	s.logger.Info("-> Successfully registered 'TrendingDecayJob'", "schedule", decaySpec)
	return nil
}

// Start 启动 cron 调度器。
func (s *Scheduler) Start() {
	s.logger.Info("Cron scheduler started.")
	s.cron.Start()
}

// Stop 优雅地停止 cron 调度器，等待正在运行的任务结束。
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron scheduler gracefully stopped.")
}

// Entries 返回已注册的任务数
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
