package util

import (
	"fmt"
	"time"
)

// DayLayout 业务日期格式（按天粒度），与记录中的 createdDate 字段对应
const DayLayout = "02-01-2006"

func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

func ParseDay(s string) (time.Time, error) {
	return time.Parse(DayLayout, s)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween 两个时间点相差的自然日数（按天截断）
func DaysBetween(from, to time.Time) int {
	return int(truncateDay(to).Sub(truncateDay(from)).Hours() / 24)
}

// RecencyLabel 按时间远近给日期打显示标签：
// 当天 "Today"、昨天 "Yesterday"、一周内 "N days ago"、
// 一月内 "N weeks ago"、一年内 "January 2"、更早 "January 2, 2006"。
// 日期串无法解析时原样返回。
func RecencyLabel(dateStr string, now time.Time) string {
	// 解析进 now 所在时区，两边同一时区截断才能得到正确的自然日差
	d, err := time.ParseInLocation(DayLayout, dateStr, now.Location())
	if err != nil {
		return dateStr
	}

	diffDays := DaysBetween(d, now)
	switch {
	case diffDays <= 0:
		return "Today"
	case diffDays == 1:
		return "Yesterday"
	case diffDays < 7:
		return fmt.Sprintf("%d days ago", diffDays)
	case diffDays < 30:
		return fmt.Sprintf("%d weeks ago", diffDays/7)
	case diffDays < 365:
		return d.Format("January 2")
	default:
		return d.Format("January 2, 2006")
	}
}
