/*
 * @Description: HTML 转纯文本，供搜索匹配使用
 * @Author: 安知鱼
 * @Date: 2025-08-08 16:10:36
 * @LastEditTime: 2026-10-15 12:02:18
 * @LastEditors: 安知鱼
 */
package parser

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripTagsPolicy *bluemonday.Policy

// blockBoundaryRe 匹配块级元素的结束标签和换行标签，去标签前在这些位置补一个空格，
// 避免 "<p>a</p><p>b</p>" 粘连成 "ab"
var blockBoundaryRe = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|ul|ol|blockquote|pre|tr|td|th|table|section|article)>|<br\s*/?>`)

func init() {
	// StripTagsPolicy 会移除所有的HTML标签
	stripTagsPolicy = bluemonday.StripTagsPolicy()
}

// StripHTML 接受一个HTML字符串，返回去除了所有标签、实体已还原、空白已折叠的纯文本。
func StripHTML(htmlContent string) string {
	if htmlContent == "" {
		return ""
	}
	spaced := blockBoundaryRe.ReplaceAllString(htmlContent, "$0 ")
	text := stripTagsPolicy.Sanitize(spaced)
	// bluemonday 会转义文本中的引号和 &，匹配需要原始字符
	text = html.UnescapeString(text)
	return strings.Join(strings.Fields(text), " ")
}
