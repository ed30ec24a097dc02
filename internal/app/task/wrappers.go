/*
 * @Description: cron 任务装饰器
 * @Author: 安知鱼
 * @Date: 2025-07-14 00:12:40
 * @LastEditTime: 2026-10-15 17:40:18
 * @LastEditors: 安知鱼
 */
package task

import (
	"log/slog"
	"reflect"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/hollowpress/hollow-press/internal/pkg/metrics"
)

type JobWrapper = cron.JobWrapper

// NewLoggingWrapper 记录每次执行的开始、结束和耗时，日志带唯一的执行ID，耗时同时写入指标。
// 发生 panic 时不会记录结束日志，由外层的恢复装饰器处理。
func NewLoggingWrapper(logger *slog.Logger) JobWrapper {
	return func(j cron.Job) cron.Job {
		name := getJobName(j)
		return namedFuncJob{name: name, FuncJob: func() {
			jobLogger := logger.With(
				slog.String("job_name", name),
				slog.String("execution_id", uuid.New().String()),
			)
			jobLogger.Info("Job execution started")
			started := time.Now()

			j.Run()

			elapsed := time.Since(started)
			metrics.JobDuration.WithLabelValues(name).Observe(elapsed.Seconds())
			metrics.JobRuns.WithLabelValues(name, metrics.OutcomeOK).Inc()
			jobLogger.Info("Job execution finished", slog.Duration("duration", elapsed))
		}}
	}
}

// NewPanicRecoveryWrapper 捕获任务中的 panic 并记录堆栈，调度器继续运行。
// 它包在日志装饰器外面，任务名由 namedFuncJob 传出来。
func NewPanicRecoveryWrapper(logger *slog.Logger) JobWrapper {
	return func(j cron.Job) cron.Job {
		name := getJobName(j)
		return cron.FuncJob(func() {
			defer func() {
				if r := recover(); r != nil {
					metrics.JobRuns.WithLabelValues(name, metrics.OutcomePanic).Inc()
					logger.Error("Job panicked",
						slog.String("job_name", name),
						slog.Any("panic", r),
						slog.String("stack_trace", string(debug.Stack())),
					)
				}
			}()
			j.Run()
		})
	}
}

// namedFuncJob 让装饰后的任务保留原始名称
type namedFuncJob struct {
	name string
	cron.FuncJob
}

func (n namedFuncJob) Name() string { return n.name }

// getJobName 优先使用任务的 Name() 方法，否则返回反射得到的类型名
func getJobName(j cron.Job) string {
	if named, ok := j.(interface{ Name() string }); ok {
		return named.Name()
	}
	t := reflect.TypeOf(j)
	if t.Kind() == reflect.Ptr {
		return t.Elem().String()
	}
	return t.String()
}
