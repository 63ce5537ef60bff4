package config

import (
	"fmt"
	"strings"
)

// argValue is one element of a handler args tuple. Quoted values are
// string literals such as a file path or an open mode; bare values are
// identifiers such as sys.stdout.
type argValue struct {
	value  string
	quoted bool
}

// parseTuple reads a Python-style tuple literal from a handler args key,
// e.g. (sys.stdout,) or ('%(log_dir)s/log.txt', 'w'). Elements are
// single- or double-quoted strings or bare identifiers; a trailing comma
// is accepted.
func parseTuple(s string) ([]argValue, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if strings.HasPrefix(s, "(") {
		if !strings.HasSuffix(s, ")") {
			return nil, fmt.Errorf("unbalanced parentheses in args %q", s)
		}
		s = s[1 : len(s)-1]
	}

	var args []argValue
	i := 0
	for {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		if i >= len(s) {
			break
		}

		switch c := s[i]; c {
		case '\'', '"':
			end := strings.IndexByte(s[i+1:], c)
			if end < 0 {
				return nil, fmt.Errorf("unterminated string literal in args %q", s)
			}
			args = append(args, argValue{value: s[i+1 : i+1+end], quoted: true})
			i += end + 2
		case ',':
			return nil, fmt.Errorf("empty element in args %q", s)
		default:
			end := strings.IndexByte(s[i:], ',')
			if end < 0 {
				end = len(s) - i
			}
			bare := strings.TrimSpace(s[i : i+end])
			if strings.ContainsAny(bare, "'\" ") {
				return nil, fmt.Errorf("malformed element %q in args", bare)
			}
			args = append(args, argValue{value: bare})
			i += end
		}

		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		if i >= len(s) {
			break
		}
		if s[i] != ',' {
			return nil, fmt.Errorf("expected comma after element in args %q", s)
		}
		i++
	}

	return args, nil
}
