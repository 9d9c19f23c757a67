package schema

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// dateLayouts 는 문자열 날짜로 허용하는 형식. 시간대가 없으면 UTC 로 본다.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05 -07:00",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	time.RFC1123Z,
	time.RFC1123,
}

// CoerceDate 는 YAML 에서 올 수 있는 날짜 표현을 time.Time 으로 바꾼다:
// time.Time 그대로, 문자열(dateLayouts), 정수/실수(에포크 밀리초).
func CoerceDate(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized date %q", x)
	}
	if n, ok := toFloat(v); ok && !math.IsNaN(n) && !math.IsInf(n, 0) {
		return time.UnixMilli(int64(n)).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unsupported date value %T", v)
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}
