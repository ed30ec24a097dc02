/*
 * @Description: 按 rune 安全截断字符串
 * @Author: 安知鱼
 * @Date: 2025-08-08 16:10:53
 * @LastEditTime: 2026-10-15 12:14:09
 * @LastEditors: 安知鱼
 */
package strutil

import (
	"strings"
	"unicode/utf8"
)

// Ellipsis 是截断时追加的省略号
const Ellipsis = "..."

// Truncate 安全地将UTF-8字符串截断到指定的长度，并在需要时添加省略号。
func Truncate(s string, maxLength int) string {
	if maxLength <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLength]) + Ellipsis
}

// Window 截取 runes[start:end] 左右各 radius 个 rune 的片段，
// 被截掉的一侧加上省略号。start、end 是 rune 下标。
func Window(s string, start, end, radius int) string {
	runes := []rune(s)
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if end < start {
		end = start
	}

	from := start - radius
	if from < 0 {
		from = 0
	}
	to := end + radius
	if to > len(runes) {
		to = len(runes)
	}

	var sb strings.Builder
	if from > 0 {
		sb.WriteString(Ellipsis)
	}
	sb.WriteString(strings.TrimSpace(string(runes[from:to])))
	if to < len(runes) {
		sb.WriteString(Ellipsis)
	}
	return sb.String()
}

// Around 截取一个长度为 size 个 rune、包含 runes[start:end] 的片段，
// 命中部分尽量居中，靠近两端时窗口贴边。命中本身超过 size 时从命中起点截取。
func Around(s string, start, end, size int) string {
	runes := []rune(s)
	if size <= 0 {
		return ""
	}
	if len(runes) <= size {
		return s
	}
	if start < 0 {
		start = 0
	}
	if start > len(runes) {
		start = len(runes)
	}
	if end < start {
		end = start
	}

	from := start
	if hit := end - start; hit < size {
		from = start - (size-hit)/2
	}
	if from < 0 {
		from = 0
	}
	to := from + size
	if to > len(runes) {
		to = len(runes)
		from = to - size
	}

	var sb strings.Builder
	if from > 0 {
		sb.WriteString(Ellipsis)
	}
	sb.WriteString(strings.TrimSpace(string(runes[from:to])))
	if to < len(runes) {
		sb.WriteString(Ellipsis)
	}
	return sb.String()
}

// RuneIndex 把字节偏移转换为 rune 下标
func RuneIndex(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(s) {
		byteOffset = len(s)
	}
	return utf8.RuneCountInString(s[:byteOffset])
}
