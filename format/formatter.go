// Package format compiles the %(field)s message templates of the
// configuration into formatters that render one log line per record.
package format

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/inilog/inilog/types"
)

// field is a substitution field recognized in a template.
type field int

const (
	fieldNone field = iota
	fieldAsctime
	fieldLevelName
	fieldMessage
	fieldFilename
)

var fieldsByName = map[string]field{
	"asctime":   fieldAsctime,
	"levelname": fieldLevelName,
	"message":   fieldMessage,
	"filename":  fieldFilename,
}

// segment is either a literal run of template text or one substitution
// field.
type segment struct {
	literal string
	field   field
}

// Formatter renders log records into single newline-terminated lines
// following a compiled template. It is immutable once built and safe to
// share between handlers.
type Formatter struct {
	segments    []segment
	dateLayout  string
	defaultDate bool
	needsCaller bool
}

// DefaultTemplate is the template applied when a handler references no
// explicit format.
const DefaultTemplate = "%(levelname)s - %(message)s"

// Parse compiles a message template and an optional strftime-style date
// pattern. Only the fields asctime, levelname, message and filename are
// recognized; %% renders a literal percent sign. An empty datefmt keeps
// the default timestamp rendering, 2006-01-02 15:04:05,mmm with
// millisecond precision.
func Parse(template, datefmt string) (*Formatter, error) {
	f := &Formatter{}

	var lit strings.Builder
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '%' {
			lit.WriteByte(c)
			continue
		}
		if i+1 < len(template) && template[i+1] == '%' {
			lit.WriteByte('%')
			i++
			continue
		}
		if i+1 >= len(template) || template[i+1] != '(' {
			return nil, fmt.Errorf("stray %% at position %d, use %%%% for a literal percent", i)
		}
		end := strings.IndexByte(template[i:], ')')
		if end < 0 {
			return nil, fmt.Errorf("unterminated substitution field at position %d", i)
		}
		name := template[i+2 : i+end]
		if i+end+1 >= len(template) || template[i+end+1] != 's' {
			return nil, fmt.Errorf("substitution field %q must use the s conversion", name)
		}
		fld, ok := fieldsByName[name]
		if !ok {
			return nil, fmt.Errorf("unrecognized substitution field %q", name)
		}
		if lit.Len() > 0 {
			f.segments = append(f.segments, segment{literal: lit.String()})
			lit.Reset()
		}
		f.segments = append(f.segments, segment{field: fld})
		if fld == fieldFilename {
			f.needsCaller = true
		}
		i += end + 1
	}
	if lit.Len() > 0 {
		f.segments = append(f.segments, segment{literal: lit.String()})
	}

	if datefmt == "" {
		f.defaultDate = true
	} else {
		layout, err := convertStrftime(datefmt)
		if err != nil {
			return nil, err
		}
		f.dateLayout = layout
	}

	return f, nil
}

// MustParse is Parse for templates known valid at compile time. It
// panics on error and exists for built-in defaults.
func MustParse(template, datefmt string) *Formatter {
	f, err := Parse(template, datefmt)
	if err != nil {
		panic(err)
	}

	return f
}

// NeedsCaller reports whether the template references %(filename)s and
// therefore requires records to carry caller information.
func (f *Formatter) NeedsCaller() bool {
	return f.needsCaller
}

// Format renders the entry into a newline-terminated line.
func (f *Formatter) Format(ent zapcore.Entry) []byte {
	buf := make([]byte, 0, 128)
	for _, seg := range f.segments {
		switch seg.field {
		case fieldNone:
			buf = append(buf, seg.literal...)
		case fieldAsctime:
			if f.defaultDate {
				buf = ent.Time.AppendFormat(buf, "2006-01-02 15:04:05")
				buf = append(buf, ',')
				buf = appendMillis(buf, ent.Time.Nanosecond()/1e6)
			} else {
				buf = ent.Time.AppendFormat(buf, f.dateLayout)
			}
		case fieldLevelName:
			buf = append(buf, types.LevelName(ent.Level)...)
		case fieldMessage:
			buf = append(buf, ent.Message...)
		case fieldFilename:
			if ent.Caller.Defined {
				buf = append(buf, filepath.Base(ent.Caller.File)...)
			}
		}
	}

	return append(buf, '\n')
}

// appendMillis appends a zero-padded three digit millisecond count.
func appendMillis(buf []byte, ms int) []byte {
	if ms < 100 {
		buf = append(buf, '0')
	}
	if ms < 10 {
		buf = append(buf, '0')
	}

	return strconv.AppendInt(buf, int64(ms), 10)
}
