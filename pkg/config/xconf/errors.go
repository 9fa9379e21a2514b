package xconf

import "errors"

// 预定义错误。
// 使用 errors.Is 进行错误匹配。
var (
	// ErrEmptyPath 配置文件路径为空。
	ErrEmptyPath = errors.New("xconf: path is empty")

	// ErrUnsupportedFormat 不支持的配置格式。
	// 仅支持 YAML（.yaml/.yml）与 JSON（.json）。
	ErrUnsupportedFormat = errors.New("xconf: unsupported format")

	// ErrLoadFailed 配置文件读取失败。
	ErrLoadFailed = errors.New("xconf: failed to load config")

	// ErrParseFailed 配置内容解析失败。
	ErrParseFailed = errors.New("xconf: failed to parse config")

	// ErrUnmarshalFailed 配置反序列化到目标结构体失败。
	ErrUnmarshalFailed = errors.New("xconf: failed to unmarshal config")

	// ErrReloadFromBytes 从字节数据创建的配置不支持重载。
	ErrReloadFromBytes = errors.New("xconf: cannot reload config created from bytes")

	// ErrNilConfig 配置实例为空。
	ErrNilConfig = errors.New("xconf: config is nil")

	// ErrNoMasters 配置中未找到任何主节点端点。
	ErrNoMasters = errors.New("xconf: no masters configured")

	// ErrEmptyAddr 主节点端点缺少地址。
	ErrEmptyAddr = errors.New("xconf: master addr is empty")
)
