package xcodec

import "errors"

// 预定义错误。
// 使用 errors.Is 进行错误匹配。
var (
	// ErrEncoding 值无法表示为规范化 JSON。
	// channel、func、复数、NaN/Inf、循环引用等均会触发此错误。
	ErrEncoding = errors.New("xcodec: value is not canonically encodable")

	// ErrDecoding 输入不是合法的 JSON，或与目标类型不匹配。
	ErrDecoding = errors.New("xcodec: cannot decode value")
)
