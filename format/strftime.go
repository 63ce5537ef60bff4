package format

import (
	"fmt"
	"strings"
)

// strftimeToGo maps the strftime directives accepted in datefmt onto Go
// reference-time layout fragments.
var strftimeToGo = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'p': "PM",
	'a': "Mon",
	'A': "Monday",
	'b': "Jan",
	'B': "January",
	'j': "002",
	'Z': "MST",
	'z': "-0700",
	'%': "%",
}

// convertStrftime translates a strftime-style pattern, such as
// %Y-%m-%d %H:%M:%S, into a Go time layout.
func convertStrftime(pattern string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' {
			b.WriteByte(pattern[i])
			continue
		}
		if i+1 >= len(pattern) {
			return "", fmt.Errorf("dangling %% at end of date format %q", pattern)
		}
		i++
		frag, ok := strftimeToGo[pattern[i]]
		if !ok {
			return "", fmt.Errorf("unsupported date format directive %%%c", pattern[i])
		}
		b.WriteString(frag)
	}

	return b.String(), nil
}
