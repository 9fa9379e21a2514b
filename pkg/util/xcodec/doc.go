// Package xcodec 提供规范化 JSON 编解码，是 rediskit 所有原语的值序列化基础。
//
// # 设计理念
//
// 写入 Redis 的每个值都必须有唯一的字节表示，否则基于内容的指纹
// （见 xmemo）和位图哈希（见 xbloom）会因编码差异产生不一致。
// xcodec 在标准 encoding/json 之上施加两条规范化规则：
//   - 对象键按字典序排序（encoding/json 对 map 天然保证，结构体按声明顺序）
//   - 非 ASCII 字符一律转义为 \uXXXX，消除 UTF-8 与转义形式的二义性
//
// # 错误处理
//
// 无法序列化的值（channel、func、NaN、循环引用等）返回 [ErrEncoding]，
// 非法 JSON 输入返回 [ErrDecoding]。两者均可通过 errors.Is 匹配：
//
//	if errors.Is(err, xcodec.ErrEncoding) { ... }
//
// # 往返保证
//
// 对编码器接受的任意值 x，Unmarshal(Marshal(x)) 还原出语义相同的值。
// 注意 JSON 的类型坍缩规则仍然适用：解码到 any 时数字为 float64，
// 数组为 []any，对象为 map[string]any。
package xcodec
