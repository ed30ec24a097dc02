package parser

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

var frontMatterDelim = []byte("---")

// SplitFrontMatter 把 "---" 包围的 YAML 头解析到 out，返回剩余的正文。
// 没有头部时正文原样返回，out 不会被修改。
func SplitFrontMatter(content []byte, out any) ([]byte, error) {
	trimmed := bytes.TrimLeft(content, "\ufeff \t\r\n")
	if !bytes.HasPrefix(trimmed, frontMatterDelim) {
		return content, nil
	}

	rest := trimmed[len(frontMatterDelim):]
	lineEnd := bytes.IndexByte(rest, '\n')
	if lineEnd < 0 {
		return nil, fmt.Errorf("front matter 未闭合")
	}
	rest = rest[lineEnd+1:]

	end := bytes.Index(rest, append([]byte("\n"), frontMatterDelim...))
	var header, body []byte
	switch {
	case bytes.HasPrefix(rest, frontMatterDelim):
		header, body = nil, rest[len(frontMatterDelim):]
	case end >= 0:
		header, body = rest[:end], rest[end+1+len(frontMatterDelim):]
	default:
		return nil, fmt.Errorf("front matter 未闭合")
	}

	if err := yaml.Unmarshal(header, out); err != nil {
		return nil, fmt.Errorf("解析 front matter 失败: %w", err)
	}
	return bytes.TrimLeft(body, "\r\n"), nil
}
