// Package distributed 提供分布式协调相关的子包。
//
// 子包列表：
//   - xredlock: 基于 Redlock 算法的分布式锁，过半数判定、租约续期
//   - xnextid: 跨节点协调的单调递增发号器
//
// 设计原则：
//   - 多个独立 Redis 主节点上的过半数（quorum）判定
//   - 单节点传输错误在 quorum 层吸收，不直接上抛
//   - 支持租约续期和优雅释放
package distributed
