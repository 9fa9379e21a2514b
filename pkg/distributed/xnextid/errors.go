package xnextid

import "errors"

// 预定义错误。
// 使用 errors.Is 进行错误匹配。
var (
	// ErrQuorumNotAchieved 重试耗尽仍未在过半数节点上提交计数。
	ErrQuorumNotAchieved = errors.New("xnextid: quorum not achieved")

	// ErrNoClients 未提供任何 Redis 客户端。
	ErrNoClients = errors.New("xnextid: no clients")

	// ErrEvenClients 节点数必须为奇数。
	ErrEvenClients = errors.New("xnextid: number of clients must be odd")

	// ErrNilClient 客户端列表中存在 nil。
	ErrNilClient = errors.New("xnextid: client is nil")

	// ErrEmptyKey 序列名为空。
	ErrEmptyKey = errors.New("xnextid: key must not be empty")
)

// errRoundFailed 单轮发号未达 quorum 或未能超过已返回的最大值。
// 仅用于驱动重试，最终统一转为 ErrQuorumNotAchieved。
var errRoundFailed = errors.New("xnextid: round failed")
