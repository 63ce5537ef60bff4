package common

import "regexp"

// placeholderRe matches %(name)s substitution fields, the same syntax
// the configuration uses for runtime-substituted path segments such as
// %(log_dir)s.
var placeholderRe = regexp.MustCompile(`%\((\w+)\)s`)

// ExpandVars replaces every %(name)s placeholder in s with its value
// from vars. Placeholders without a matching entry are left untouched.
func ExpandVars(s string, vars map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(s, func(m string) string {
		name := placeholderRe.FindStringSubmatch(m)[1]
		if v, ok := vars[name]; ok {
			return v
		}

		return m
	})
}

// HasUnresolvedVars tells whether s still contains %(name)s placeholders.
func HasUnresolvedVars(s string) bool {
	return placeholderRe.MatchString(s)
}
