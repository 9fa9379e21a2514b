package xredlock

import "github.com/redis/go-redis/v9"

// 服务端脚本：令牌比对与后续操作在单节点上必须原子，
// 否则"检查后删除"窗口内锁可能已易主。

// releaseScript 仅当 key 的当前值等于出示的令牌时删除 key。
// 返回 1 表示删除成功，0 表示锁已过期或被其他持有者覆盖。
var releaseScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`)

// extendScript 仅当 key 的当前值等于出示的令牌时刷新其 TTL。
// 返回 1 表示续期成功，0 表示锁已易主。
var extendScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("PEXPIRE", KEYS[1], ARGV[2])
	else
		return 0
	end
`)

// remainingScript 返回持有者视角下 key 的剩余 TTL（毫秒）。
// 令牌不匹配返回 -3，与 PTTL 的 -1/-2 语义区分开。
var remainingScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("PTTL", KEYS[1])
	else
		return -3
	end
`)
