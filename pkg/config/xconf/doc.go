// Package xconf 提供 rediskit 的配置加载，基于 koanf 实现。
//
// # 设计理念
//
// xconf 定位为最小化配置加载器：负责文件/字节数据的加载、反序列化与
// 手动重载，并提供把主节点端点列表转换为 go-redis 客户端的便捷函数。
// 不负责配置治理（必选字段校验、默认值注入、环境变量覆盖），
// 这些能力由上层业务按需实现。
//
// # 典型配置
//
//	rediskit:
//	  masters:
//	    - addr: "10.0.0.1:6379"
//	    - addr: "10.0.0.2:6379"
//	    - addr: "10.0.0.3:6379"
//
//	cfg, _ := xconf.New("rediskit.yaml")
//	clients, _ := xconf.Masters(cfg, "rediskit.masters")
//	lock, _ := xredlock.New("resource", clients)
//
// # 格式
//
// 支持 YAML 与 JSON。New 按文件扩展名自动检测；NewFromBytes 需要显式
// 指定格式，适用于 K8s ConfigMap 等场景。
//
// 基础读取操作请直接使用 Client() 返回的 koanf 实例。
package xconf
