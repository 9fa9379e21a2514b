package xmemo

import "errors"

// 预定义错误。
// 使用 errors.Is 进行错误匹配。
// 参数或返回值无法规范化编码时返回 xcodec.ErrEncoding / ErrDecoding。
var (
	// ErrNilClient 客户端为空。
	ErrNilClient = errors.New("xmemo: client is nil")

	// ErrNilFunc 被包装函数为空。
	ErrNilFunc = errors.New("xmemo: wrapped func is nil")

	// ErrEmptyKey 缓存 key 为空。
	ErrEmptyKey = errors.New("xmemo: key must not be empty")
)
