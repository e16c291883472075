package utils

import (
	"fmt"
	"strings"
	"unicode"

	"urlmap-go/constant"
)

// ValidateShortCode 校验短码是否合法，返回去除首尾空白后的短码
func ValidateShortCode(shortCode string) (string, error) {
	trimmed := strings.TrimSpace(shortCode)
	if trimmed == "" {
		return "", fmt.Errorf("error.shortcode_required")
	}

	if len(trimmed) > constant.MaxShortCodeLength {
		return "", fmt.Errorf("error.shortcode_too_long")
	}

	if ContainsWhitespace(trimmed) {
		return "", fmt.Errorf("error.shortcode_cannot_contain_spaces")
	}

	return trimmed, nil
}

// ValidateOriginalURL 校验原始 URL，返回去除首尾空白后的 URL
// 只接受 http:// 或 https:// 开头的地址，不做任何归一化（尾部斜杠、
// 参数顺序等差异视为不同 URL）
func ValidateOriginalURL(originalURL string) (string, error) {
	trimmed := strings.TrimSpace(originalURL)
	if trimmed == "" {
		return "", fmt.Errorf("error.url_required")
	}

	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return "", fmt.Errorf("error.url_scheme_invalid")
	}

	// URL 长度限制
	if len(trimmed) > 2048 {
		return "", fmt.Errorf("error.url_max_length")
	}

	return trimmed, nil
}

func ContainsWhitespace(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) {
			return true
		}
	}
	return false
}
