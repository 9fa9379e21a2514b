package xtxn

import (
	"log/slog"
	"time"
)

// Options 定义事务重试配置。
type Options struct {
	// MaxAttempts 最大尝试次数（含首次），默认 3。
	MaxAttempts int

	// InitialDelay 首次重试前的基础延迟，默认 50ms。
	InitialDelay time.Duration

	// MaxDelay 退避延迟上限，默认 1s。
	MaxDelay time.Duration

	// Jitter 抖动比例（0-1），实际延迟为 base * (1 ± Jitter)。默认 0.25。
	Jitter float64

	// Logger 用于记录冲突重试日志，默认 slog.Default()，nil 禁用。
	Logger *slog.Logger
}

// Option 定义配置选项函数类型。
type Option func(*Options)

// defaultOptions 返回默认的事务配置。
func defaultOptions() *Options {
	return &Options{
		MaxAttempts:  3,
		InitialDelay: 50 * time.Millisecond,
		MaxDelay:     time.Second,
		Jitter:       0.25,
		Logger:       slog.Default(),
	}
}

// WithMaxAttempts 设置最大尝试次数（含首次）。
// 非正值被忽略（保持默认值）。
func WithMaxAttempts(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxAttempts = n
		}
	}
}

// WithInitialDelay 设置首次重试前的基础延迟。
func WithInitialDelay(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.InitialDelay = d
		}
	}
}

// WithMaxDelay 设置退避延迟上限。
func WithMaxDelay(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.MaxDelay = d
		}
	}
}

// WithJitter 设置抖动比例，超出 [0, 1] 会被钳位。
func WithJitter(j float64) Option {
	return func(o *Options) {
		if j < 0 {
			j = 0
		} else if j > 1 {
			j = 1
		}
		o.Jitter = j
	}
}

// WithLogger 设置自定义 Logger。
// 传入 nil 将禁用日志输出。
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}
