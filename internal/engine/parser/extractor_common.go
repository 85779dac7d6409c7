package parser

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// stringValue returns the cooked value of a quoted JavaScript string literal.
// Escape sequences are decoded; an unknown escape yields the escaped character.
func stringValue(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 2 && strings.ContainsRune("\"'`", rune(raw[0])) && raw[len(raw)-1] == raw[0] {
		raw = raw[1 : len(raw)-1]
	}
	if !strings.Contains(raw, `\`) {
		return raw
	}

	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 == len(raw) {
			b.WriteByte(raw[i])
			continue
		}
		i++
		switch c := raw[i]; c {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\n':
			// line continuation
		case '\r':
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
		case 'x':
			if r, ok := parseHexRune(raw, i+1, 2); ok {
				b.WriteRune(r)
				i += 2
			} else {
				b.WriteByte(c)
			}
		case 'u':
			if i+1 < len(raw) && raw[i+1] == '{' {
				if end := strings.IndexByte(raw[i+2:], '}'); end > 0 {
					if r, ok := parseHexRune(raw, i+2, end); ok {
						b.WriteRune(r)
						i += end + 2
						continue
					}
				}
				b.WriteByte(c)
			} else if r, ok := parseHexRune(raw, i+1, 4); ok {
				b.WriteRune(r)
				i += 4
			} else {
				b.WriteByte(c)
			}
		default:
			_, size := utf8.DecodeRuneInString(raw[i:])
			b.WriteString(raw[i : i+size])
			i += size - 1
		}
	}
	return b.String()
}

func parseHexRune(s string, start, n int) (rune, bool) {
	if start+n > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[start:start+n], 16, 32)
	if err != nil || v > utf8.MaxRune {
		return 0, false
	}
	return rune(v), true
}

func isComponentName(name string) bool {
	if name == "" {
		return false
	}
	if strings.Contains(name, ".") {
		return true
	}
	return unicode.IsUpper(rune(name[0]))
}

func appendUnique(values []string, seen map[string]bool, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" || seen[value] {
		return values
	}
	seen[value] = true
	return append(values, value)
}
