package generator

import (
	"crypto/rand"
	"math/big"
	"strings"

	"urlmap-go/constant"
)

// Generator 短码候选生成器
type Generator interface {
	Generate() (string, error)
}

// Base62 基于 crypto/rand 的 base62 随机短码生成器
// 每个字符独立均匀采样，避免短码可被枚举
type Base62 struct {
	length int
}

var charsetSize = big.NewInt(int64(len(constant.Base62Charset)))

// NewBase62 创建固定长度的生成器，length <= 0 时使用默认长度
func NewBase62(length int) *Base62 {
	if length <= 0 {
		length = constant.ShortCodeLength
	}
	return &Base62{length: length}
}

// Generate 生成一个随机短码候选，无副作用
func (g *Base62) Generate() (string, error) {
	var b strings.Builder
	b.Grow(g.length)
	for i := 0; i < g.length; i++ {
		idx, err := rand.Int(rand.Reader, charsetSize)
		if err != nil {
			return "", err
		}
		b.WriteByte(constant.Base62Charset[idx.Int64()])
	}
	return b.String(), nil
}

var _ Generator = (*Base62)(nil)
