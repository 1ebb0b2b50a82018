package helper

import (
	"strings"

	"github.com/flaboy/aira-pay/pkg/config"
)

// BuildUrl 基于配置的BaseURL拼接对外路径
func BuildUrl(path string) string {
	base := strings.TrimRight(config.Config.BaseURL, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}
