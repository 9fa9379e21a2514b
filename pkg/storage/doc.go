// Package storage 提供数据存储相关的子包。
//
// 子包列表：
//   - xtxn: WATCH/MULTI/EXEC 乐观事务作用域，冲突自动退避重试
//   - xmemo: 函数返回值的 Redis 记忆化缓存，指纹寻址、命中统计
//   - xbloom: 客户端侧布隆过滤器，位数组存放于单个 Redis key
//
// 设计原则：
//   - 值序列化统一走 xcodec 规范化编码
//   - 批量操作合并为单次 pipeline 往返
//   - 乐观并发优先，失败重试由调用侧策略控制
package storage
