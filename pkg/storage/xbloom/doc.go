// Package xbloom 提供客户端侧的布隆过滤器，位数组存放在单个 Redis string
// key 中，哈希位置全部在客户端计算，服务端只执行按位读写。
//
// # 参数推导
//
// 由目标容量 n 与可容忍误判率 p 推导：
//
//	m = ⌈ −n·ln p / (ln 2)² ⌉      位数组长度
//	k = max(1, round((m/n)·ln 2))  哈希函数个数
//
// 参数在构造时固定。n=1、p=0.5 的极端输入仍保证 m ≥ 1、k ≥ 1。
//
// # 哈希推导
//
// 元素先经 xcodec 规范化编码，对编码字节做一次 xxhash 得到 64 位摘要，
// 拆成两个 32 位半部 (h1, h2)，再用增强型双重哈希派生 k 个位置：
//
//	g_i(x) = (h1 + i·h2 + i²) mod m   i ∈ [0, k)
//
// 单次强哈希派生全部位置，避免对每个元素计算 k 次独立哈希。
//
// # 语义
//
// Contains 返回 false 则元素一定从未 Add 过；返回 true 有至多约 p 的
// 概率是误判。Add 置位后只有 Clear 能清除。Add/Contains 的批量变体
// 将全部位操作合并为一次 pipeline 往返。
package xbloom
