// Package xmemo 提供函数返回值的 Redis 记忆化缓存：一个被包装函数对应
// 一个 Redis Hash，field 为调用参数的指纹，value 为规范化 JSON 编码的
// 返回值。
//
// # 指纹
//
// 位置参数与命名参数（见 [Named]）被规范化为确定性结构：命名参数先按
// 名字排序，再经 xcodec 规范化编码，最后取 SHA-256 截断 128 位的十六进制
// 作为 Hash field。同样的参数组合在任何进程中产生同样的指纹。
// 无法规范化编码的参数使调用直接返回 [xcodec.ErrEncoding]，不触碰缓存。
//
// # 命中与统计
//
// Call 命中时解码缓存值并累加命中计数；未命中时调用被包装函数、
// 写入结果、累加未命中计数，并刷新整个 Hash 的 TTL（如配置了超时）。
// 命中/未命中计数与缓存条目存放在同一个 Hash 的保留 field 中，
// Info 报告的条目数已减去这两个计数 field。
//
// # 惊群策略
//
// 不做单飞去重：两个并发的未命中会各自计算、各自写入，后写覆盖先写，
// 两个调用方各拿到自己算出的值。被缓存函数要求是纯函数，因此这只是
// 可接受的重复计算而非正确性问题。
//
// # 值的类型
//
// 缓存命中返回的是规范化 JSON 解码后的值：数字为 float64、数组为
// []any、对象为 map[string]any。被包装函数返回 JSON 原生类型时，
// Call 与直接调用完全一致。
package xmemo
