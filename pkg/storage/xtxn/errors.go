package xtxn

import "errors"

// 预定义错误。
// 使用 errors.Is 进行错误匹配。
var (
	// ErrContention 乐观事务重试耗尽。
	// 被观察的 key 在每次尝试中都被并发修改，作用域始终无法提交。
	ErrContention = errors.New("xtxn: optimistic transaction retries exhausted")

	// ErrNilClient 客户端为空。
	ErrNilClient = errors.New("xtxn: client is nil")

	// ErrNilFunc 事务回调为空。
	ErrNilFunc = errors.New("xtxn: transaction func is nil")

	// ErrNoKeys 未指定被观察的 key。
	// 不观察任何 key 的"事务"没有乐观并发语义，几乎总是使用错误。
	ErrNoKeys = errors.New("xtxn: no watched keys")
)
