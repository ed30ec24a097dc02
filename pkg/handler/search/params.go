package search

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// maxDaysBack 限制 from=<天数> 的取值，避免时间计算溢出
const maxDaysBack = 36500

// parseInt 解析整数查询参数，无法解析时返回 0，由服务层套用默认值
func parseInt(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

// ParseFrom 解析 from 参数：整数表示往前的天数，否则尝试按日期解析。
// 结果截断到当天零点（UTC），无法解析时返回 nil 表示不过滤。
func ParseFrom(raw string, now time.Time) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if days, err := strconv.Atoi(raw); err == nil {
		if days < 0 || days > maxDaysBack {
			return nil
		}
		from := startOfDay(now.UTC().AddDate(0, 0, -days))
		return &from
	}

	parsed, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return nil
	}
	from := startOfDay(parsed.UTC())
	return &from
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
