package constant

// 短码相关常量
const (
	// Base62Charset 短码字符集（62 个字母数字符号）
	Base62Charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// ShortCodeLength 自动生成短码的固定长度
	ShortCodeLength = 7

	// MaxShortCodeLength 短码最大长度（含自定义短码）
	MaxShortCodeLength = 10

	// MaxGenerateAttempts 生成短码的最大重试次数
	MaxGenerateAttempts = 10
)
