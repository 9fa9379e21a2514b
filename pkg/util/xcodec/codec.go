package xcodec

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Marshal 将任意值序列化为规范化 JSON 字节。
// 对象键排序由 encoding/json 保证（map 键按字典序，结构体按声明顺序），
// 非 ASCII 字符统一转义为 \uXXXX。
// 序列化失败时返回 [ErrEncoding] 包装的错误。
func Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return escapeNonASCII(data), nil
}

// MarshalString 与 Marshal 相同，返回字符串。
func MarshalString(v any) (string, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Unmarshal 将规范化 JSON 字节反序列化到目标。
// 失败时返回 [ErrDecoding] 包装的错误。
func Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %w", ErrDecoding, err)
	}
	return nil
}

// UnmarshalString 与 Unmarshal 相同，接受字符串输入。
func UnmarshalString(data string, v any) error {
	return Unmarshal([]byte(data), v)
}

// escapeNonASCII 将 JSON 字节中的非 ASCII 字符重写为 \uXXXX 转义。
// 输入必须是 encoding/json 的合法输出（UTF-8），字符串内外的字节
// 无需区分：ASCII 范围内的结构字符不受影响，只有多字节序列被改写。
// BMP 之外的码点按 JSON 规范编码为 UTF-16 代理对。
func escapeNonASCII(data []byte) []byte {
	// 快速路径：纯 ASCII 输入原样返回
	ascii := true
	for _, b := range data {
		if b >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return data
	}

	var sb strings.Builder
	sb.Grow(len(data) + len(data)/4)
	for i := 0; i < len(data); {
		b := data[i]
		if b < utf8.RuneSelf {
			sb.WriteByte(b)
			i++
			continue
		}
		r, size := utf8.DecodeRune(data[i:])
		i += size
		if r <= 0xFFFF {
			fmt.Fprintf(&sb, `\u%04x`, r)
			continue
		}
		r1, r2 := utf16.EncodeRune(r)
		fmt.Fprintf(&sb, `\u%04x\u%04x`, r1, r2)
	}
	return []byte(sb.String())
}
