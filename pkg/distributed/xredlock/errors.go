package xredlock

import "errors"

// 预定义错误。
// 使用 errors.Is 进行错误匹配，例如：
//
//	if errors.Is(err, xredlock.ErrQuorumNotAchieved) {
//	    // 未达到过半数
//	}
var (
	// ErrQuorumNotAchieved 未在过半数节点上完成操作。
	// Do 作用域获取失败、Extend 未达 quorum 时返回此错误。
	ErrQuorumNotAchieved = errors.New("xredlock: quorum not achieved")

	// ErrAlreadyAcquired 对已持有的句柄重复获取。
	// 同一句柄必须先 Release 才能再次 Acquire。
	ErrAlreadyAcquired = errors.New("xredlock: lock already acquired by this handle")

	// ErrNotAcquired 释放未持有的锁。
	ErrNotAcquired = errors.New("xredlock: lock not acquired")

	// ErrExtendUnlocked 续期未持有的锁。
	ErrExtendUnlocked = errors.New("xredlock: cannot extend unacquired lock")

	// ErrTooManyExtensions 续期次数超过上限。
	// 每次成功获取最多允许 num_extensions 次续期。
	ErrTooManyExtensions = errors.New("xredlock: extension limit reached")

	// ErrNoClients 未提供任何 Redis 客户端。
	ErrNoClients = errors.New("xredlock: no clients")

	// ErrEvenClients 节点数必须为奇数。
	// 偶数节点使 quorum 判定退化，拒绝构造。
	ErrEvenClients = errors.New("xredlock: number of clients must be odd")

	// ErrNilClient 客户端列表中存在 nil。
	ErrNilClient = errors.New("xredlock: client is nil")

	// ErrEmptyKey 锁 key 为空。
	ErrEmptyKey = errors.New("xredlock: key must not be empty")
)
