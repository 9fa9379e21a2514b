// Package xredlock 提供基于 Redlock 算法的分布式互斥锁，面向 N 个相互独立的
// Redis 主节点，通过过半数（quorum）判定锁的归属。
//
// # 算法概要
//
// 一次获取尝试：生成全新的 128 位随机令牌，记录单调时钟起点，并行向全部
// N 个节点发出 SET key token NX PX lease；统计成功节点数 granted，计算
// 有效窗口 validity = lease − elapsed − drift − 2ms。当且仅当
// granted ≥ ⌊N/2⌋+1 且 validity > 0 时获取成功。失败时向所有节点尽力
// 释放令牌，阻塞模式下随机退避后重试。
//
// 释放与续期都通过服务端 Lua 脚本完成"令牌比对 + 操作"的单节点原子性：
// 只有出示当前令牌的持有者才能删除 key 或刷新其 TTL。
//
// # 节点数与 quorum
//
// N 必须为奇数且 ≥ 1，生产建议 N=5。N=1 退化为单节点锁（quorum=1）。
// 至多容忍 N − quorum 个节点不可达；单节点的传输错误只计为该节点失败，
// 不会直接上抛。
//
// # 状态机
//
// 每个进程内句柄经历 Unacquired → Acquiring → Held → Released。
// 对已持有句柄重复 Acquire 返回 [ErrAlreadyAcquired]，未持有时
// Release 返回 [ErrNotAcquired]、Extend 返回 [ErrExtendUnlocked]。
// 句柄的内部状态由互斥保护，可被多个 goroutine 访问，但锁语义上
// 一次获取只属于一个逻辑调用方。
//
// # 使用模式
//
//	lock, err := xredlock.New("orders:reconcile", clients,
//	    xredlock.WithAutoReleaseTime(10*time.Second))
//	if err != nil {
//	    return err
//	}
//	ok, err := lock.Acquire(ctx)
//	if err != nil || !ok {
//	    return err
//	}
//	defer lock.Release(ctx)
//
// 作用域式用法见 [Mutex.Do]：获取失败时返回 [ErrQuorumNotAchieved]，
// 函数返回后自动释放。
//
// # 时钟假设
//
// validity 扣除 clock_drift_factor × lease 的漂移余量（默认 0.01）加
// 固定 2ms。节点间时钟漂移超出该余量时，锁的互斥保证失效，这是
// Redlock 算法本身的边界而非实现缺陷。
package xredlock
