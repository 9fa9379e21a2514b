package xnextid

import (
	"log/slog"
	"time"
)

// Options 定义发号器配置。
type Options struct {
	// MaxAttempts 单次 Next 的最大发号轮数（含首轮）。默认 3。
	MaxAttempts int

	// RetryDelay 轮间退避的基础延迟，指数增长并带随机抖动。默认 50ms。
	RetryDelay time.Duration

	// MaxRetryDelay 轮间退避上限。默认 1s。
	MaxRetryDelay time.Duration

	// Logger 用于记录单节点失败等调试日志，默认 slog.Default()，nil 禁用。
	Logger *slog.Logger
}

// Option 定义配置选项函数类型。
type Option func(*Options)

// defaultOptions 返回默认的发号器配置。
func defaultOptions() *Options {
	return &Options{
		MaxAttempts:   3,
		RetryDelay:    50 * time.Millisecond,
		MaxRetryDelay: time.Second,
		Logger:        slog.Default(),
	}
}

// WithMaxAttempts 设置单次 Next 的最大发号轮数。
// 非正值被忽略（保持默认值）。
func WithMaxAttempts(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxAttempts = n
		}
	}
}

// WithRetryDelay 设置轮间退避的基础延迟。
func WithRetryDelay(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.RetryDelay = d
		}
	}
}

// WithMaxRetryDelay 设置轮间退避上限。
func WithMaxRetryDelay(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.MaxRetryDelay = d
		}
	}
}

// WithLogger 设置自定义 Logger。
// 传入 nil 将禁用日志输出。
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}
