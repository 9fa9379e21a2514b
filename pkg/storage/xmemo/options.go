package xmemo

import (
	"log/slog"
	"time"
)

// Options 定义缓存配置。
type Options struct {
	// TTL 整个 Hash 的过期时间，每次写入时刷新。0 表示不过期。默认 0。
	TTL time.Duration

	// Logger 用于记录计数器刷新失败等非致命日志，默认 slog.Default()，nil 禁用。
	Logger *slog.Logger
}

// Option 定义配置选项函数类型。
type Option func(*Options)

// defaultOptions 返回默认的缓存配置。
func defaultOptions() *Options {
	return &Options{
		TTL:    0,
		Logger: slog.Default(),
	}
}

// WithTTL 设置整个 Hash 的过期时间。
// 每次写入（Call 未命中与 Bypass）都会刷新。负值被忽略。
func WithTTL(d time.Duration) Option {
	return func(o *Options) {
		if d >= 0 {
			o.TTL = d
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
