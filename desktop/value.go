package desktop

import (
	"fmt"
	"strconv"
	"strings"
)

/*
	Values of type string and localestring support the escape sequences
	\s, \n, \t, \r, and \\ for space, newline, tab, carriage return and
	backslash. Anything else after a backslash is an error.

	Values of type strings(s) are separated by semicolons, with \; escaping
	a literal semicolon inside an element. The spec terminates lists with a
	semicolon, so exactly one trailing empty element is dropped.
*/

func unescapeString(s string) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i == len(s) {
			return "", fmt.Errorf("unterminated escape sequence")
		}
		switch s[i] {
		case 's':
			sb.WriteByte(' ')
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '\\':
			sb.WriteByte('\\')
		default:
			return "", fmt.Errorf("unknown escape sequence '\\%c'", s[i])
		}
	}
	return sb.String(), nil
}

func escapeString(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteByte(s[i])
		}
	}
	out := sb.String()
	// surrounding whitespace would be eaten by the key-line trimming on
	// reparse, protect the outermost spaces
	if strings.HasPrefix(out, " ") {
		out = `\s` + out[1:]
	}
	if strings.HasSuffix(out, " ") {
		out = out[:len(out)-1] + `\s`
	}
	return out
}

// splitList splits a raw value on unescaped semicolons and decodes each
// element. An empty raw value is a valid empty list.
func splitList(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var items []string
	var sb strings.Builder
	flush := func() error {
		item, err := unescapeString(sb.String())
		if err != nil {
			return err
		}
		items = append(items, item)
		sb.Reset()
		return nil
	}
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '\\':
			if i+1 == len(raw) {
				return nil, fmt.Errorf("unterminated escape sequence")
			}
			i++
			if raw[i] == ';' {
				sb.WriteByte(';')
			} else {
				// keep the pair for unescapeString
				sb.WriteByte('\\')
				sb.WriteByte(raw[i])
			}
		case ';':
			if err := flush(); err != nil {
				return nil, err
			}
		default:
			sb.WriteByte(raw[i])
		}
	}
	// anything after the last semicolon is an unterminated final element;
	// accept it rather than reject, the terminator rule only drops one
	// empty element
	if sb.Len() > 0 {
		if err := flush(); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// joinList is the inverse of splitList, emitting the spec-mandated
// trailing semicolon.
func joinList(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		item = escapeString(item)
		item = strings.ReplaceAll(item, ";", `\;`)
		sb.WriteString(item)
		sb.WriteByte(';')
	}
	return sb.String()
}

// parseBool accepts only the literal strings "true" and "false".
func parseBool(raw string) (bool, error) {
	switch raw {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%q is not a boolean", raw)
}

// parseNumber requires the full value to be a floating point literal.
func parseNumber(raw string) (float64, error) {
	return strconv.ParseFloat(raw, 64)
}
