// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xcodec: 规范化 JSON 编解码，键排序、非 ASCII 转义
//
// 设计原则：
//   - 同一值在任何进程中产生同一字节表示
//   - 编解码失败以哨兵错误显式上抛
package util
