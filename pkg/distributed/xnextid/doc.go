// Package xnextid 提供跨 N 个独立 Redis 主节点协调的单调递增整数发号器，
// 与 xredlock 共享同一套过半数（quorum）判定。
//
// # 生成协议
//
// 一次 Next 调用在每个节点上执行一个乐观事务作用域（见 xtxn）：
// WATCH 计数器 key，读取当前值（缺失视为 0），暂存 current+1 提交。
// 并发写入者会使个别节点的提交失败。收集提交成功节点的结果集 V：
//   - |V| ≥ quorum：返回 max(V)，并把 max(V) 前向传播到落后或失败的
//     节点（服务端 raise-only CAS，只升不降）；
//   - |V| < quorum：整轮退避重试，重试耗尽返回 [ErrQuorumNotAchieved]。
//
// # 保证与限制
//
// 单进程内连续成功的 Next 调用返回值严格递增（句柄记录已返回的最大值，
// 不会把不高于它的值交给调用方）。并发调用者之间允许且预期出现空洞；
// 序列不保证无缝。吞吐受往返时延与重试率约束，设计上不面向
// 每秒数千以上的发号速率。
//
// # 计数器命名
//
// 实际 Redis key 为 "nextid:<key>"，序列由首次发号隐式创建，
// 只能通过管理性删除 key 销毁。
package xnextid
