package xconf

import (
	"github.com/redis/go-redis/v9"
)

// MasterConfig 描述一个 Redis 主节点端点。
type MasterConfig struct {
	// Addr 节点地址，host:port。
	Addr string `koanf:"addr"`

	// Username / Password 认证信息，可为空。
	Username string `koanf:"username"`
	Password string `koanf:"password"`

	// DB 数据库编号，默认 0。
	DB int `koanf:"db"`
}

// Masters 从配置的指定路径读取主节点端点列表并构建 go-redis 客户端。
// path 指向一个 MasterConfig 数组（如 "rediskit.masters"）。
// 列表为空返回 [ErrNoMasters]，缺少地址的端点返回 [ErrEmptyAddr]。
//
// 返回的客户端由调用方负责关闭。
func Masters(cfg Config, path string) ([]redis.UniversalClient, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	var endpoints []MasterConfig
	if err := cfg.Unmarshal(path, &endpoints); err != nil {
		return nil, err
	}
	if len(endpoints) == 0 {
		return nil, ErrNoMasters
	}

	clients := make([]redis.UniversalClient, len(endpoints))
	for i, ep := range endpoints {
		if ep.Addr == "" {
			return nil, ErrEmptyAddr
		}
		clients[i] = redis.NewClient(&redis.Options{
			Addr:     ep.Addr,
			Username: ep.Username,
			Password: ep.Password,
			DB:       ep.DB,
		})
	}
	return clients, nil
}
