package xbloom

import "errors"

// 预定义错误。
// 使用 errors.Is 进行错误匹配。
// 元素无法规范化编码时返回 xcodec.ErrEncoding。
var (
	// ErrNilClient 客户端为空。
	ErrNilClient = errors.New("xbloom: client is nil")

	// ErrEmptyKey 过滤器 key 为空。
	ErrEmptyKey = errors.New("xbloom: key must not be empty")

	// ErrInvalidNumElements 目标容量必须 ≥ 1。
	ErrInvalidNumElements = errors.New("xbloom: num elements must be at least 1")

	// ErrInvalidFalsePositives 误判率必须落在 (0, 1) 开区间。
	ErrInvalidFalsePositives = errors.New("xbloom: false positive rate must be in (0, 1)")
)
