package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// maxMinutes 可接受的最大分鐘數，超過視為無法解析
const maxMinutes = math.MaxInt32

var (
	hourPattern   = regexp.MustCompile(`(\d+)\s*h`)
	minutePattern = regexp.MustCompile(`(\d+)\s*m`)
)

// ParseDuration 將 "1 hr 30 mins"、"45" 之類的文字轉為分鐘數。
// 無法解析或空白時回傳 0。
func ParseDuration(text string) int {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return 0
	}

	total := 0
	matched := false
	if m := hourPattern.FindStringSubmatch(s); m != nil {
		h, err := strconv.Atoi(m[1])
		if err != nil || h > maxMinutes/60 {
			return 0
		}
		total += h * 60
		matched = true
	}
	if m := minutePattern.FindStringSubmatch(s); m != nil {
		mins, err := strconv.Atoi(m[1])
		if err != nil || mins > maxMinutes-total {
			return 0
		}
		total += mins
		matched = true
	}
	if matched {
		return total
	}

	// 純數字視為分鐘
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	if f > maxMinutes {
		return 0
	}
	return int(f)
}
