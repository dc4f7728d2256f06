package parser

import (
	"fmt"
	"strings"
	"unicode"
)

// ParseList 將儲存格內容轉為小寫、去空白的字串序列。
// 接受 nil、[]string、[]interface{} 或字串；無法解析時回傳空序列，不會 panic。
func ParseList(v interface{}) []string {
	switch val := v.(type) {
	case nil:
		return []string{}
	case []string:
		return normalizeItems(val)
	case []interface{}:
		items := make([]string, 0, len(val))
		for _, item := range val {
			items = append(items, stringify(item))
		}
		return normalizeItems(items)
	case string:
		return parseListText(val)
	case fmt.Stringer:
		return parseListText(val.String())
	default:
		return []string{}
	}
}

func parseListText(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}

	// 單純的逗號分隔文字
	if !strings.ContainsAny(s, "[]") {
		return normalizeItems(strings.Split(s, ","))
	}

	items, err := decodeLiteralList(s)
	if err != nil {
		return []string{}
	}
	return normalizeItems(items)
}

// normalizeItems 去除前後空白並轉小寫，丟棄空字串
func normalizeItems(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// literalScanner 解析 `['a', "b", 3]` 形式的序列文字
type literalScanner struct {
	src []rune
	pos int
}

func decodeLiteralList(s string) ([]string, error) {
	sc := &literalScanner{src: []rune(strings.TrimSpace(s))}

	if !sc.consume('[') {
		return nil, fmt.Errorf("expected '[' at offset %d", sc.pos)
	}

	var items []string
	for {
		sc.skipSpace()
		if sc.consume(']') {
			break
		}

		item, err := sc.element()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		sc.skipSpace()
		if sc.consume(',') {
			continue
		}
		if sc.consume(']') {
			break
		}
		return nil, fmt.Errorf("expected ',' or ']' at offset %d", sc.pos)
	}

	sc.skipSpace()
	if sc.pos != len(sc.src) {
		return nil, fmt.Errorf("unexpected trailing data at offset %d", sc.pos)
	}
	return items, nil
}

func (sc *literalScanner) element() (string, error) {
	if sc.pos >= len(sc.src) {
		return "", fmt.Errorf("unexpected end of input")
	}
	switch r := sc.src[sc.pos]; r {
	case '\'', '"':
		return sc.quoted(r)
	case '[', '{', '(':
		return "", fmt.Errorf("nested value at offset %d", sc.pos)
	default:
		return sc.bare()
	}
}

func (sc *literalScanner) quoted(quote rune) (string, error) {
	sc.pos++
	var b strings.Builder
	for sc.pos < len(sc.src) {
		r := sc.src[sc.pos]
		sc.pos++
		switch r {
		case quote:
			return b.String(), nil
		case '\\':
			if sc.pos >= len(sc.src) {
				return "", fmt.Errorf("dangling escape")
			}
			esc := sc.src[sc.pos]
			sc.pos++
			switch esc {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case 'r':
				b.WriteRune('\r')
			default:
				b.WriteRune(esc)
			}
		default:
			b.WriteRune(r)
		}
	}
	return "", fmt.Errorf("unterminated string")
}

// bare 解析數字與 True/False/None
func (sc *literalScanner) bare() (string, error) {
	start := sc.pos
	for sc.pos < len(sc.src) {
		r := sc.src[sc.pos]
		if r == ',' || r == ']' || unicode.IsSpace(r) {
			break
		}
		sc.pos++
	}
	tok := string(sc.src[start:sc.pos])
	switch tok {
	case "True", "False":
		return tok, nil
	case "None":
		return "", nil
	}
	if !isNumber(tok) {
		return "", fmt.Errorf("invalid literal %q", tok)
	}
	return tok, nil
}

func isNumber(tok string) bool {
	if tok == "" {
		return false
	}
	tok = strings.TrimPrefix(strings.TrimPrefix(tok, "-"), "+")
	digits, dots := 0, 0
	for _, r := range tok {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

func (sc *literalScanner) skipSpace() {
	for sc.pos < len(sc.src) && unicode.IsSpace(sc.src[sc.pos]) {
		sc.pos++
	}
}

func (sc *literalScanner) consume(r rune) bool {
	if sc.pos < len(sc.src) && sc.src[sc.pos] == r {
		sc.pos++
		return true
	}
	return false
}
