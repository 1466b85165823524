package utils

import (
	"fmt"
	"time"
)

var weekdaysCN = [...]string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}

// DateTextCN 形如 "2025年4月12日 周六"
func DateTextCN(t time.Time) string {
	return fmt.Sprintf("%d年%d月%d日 %s", t.Year(), int(t.Month()), t.Day(), weekdaysCN[t.Weekday()])
}

// TimeTextCN 形如 "14:05"
func TimeTextCN(t time.Time) string {
	return t.Format("15:04")
}

// MessageTimeText 历史消息标签上的time属性格式
func MessageTimeText(unix int64) string {
	return time.Unix(unix, 0).Format("2006-01-02 15:04")
}
