package spindle

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"loomworks.net/spindle/internal/eval"
)

// registerDefaultModifiers installs the builtin English text modifiers. Any
// of them can be overridden by a later registration under the same name.
func registerDefaultModifiers(e *eval.Engine) {
	e.AddModifier("capitalize", capitalize)
	e.AddModifier("capitalizeAll", capitalizeAll)
	e.AddModifier("uppercase", strings.ToUpper)
	e.AddModifier("lowercase", strings.ToLower)
	e.AddModifier("trim", strings.TrimSpace)
	e.AddModifier("a", article)
	e.AddModifier("s", pluralize)
	e.AddMethod("replace", replaceMethod)
	e.AddMethod("prefix", func(in string, args []string) string {
		return strings.Join(args, "") + in
	})
	e.AddMethod("suffix", func(in string, args []string) string {
		return in + strings.Join(args, "")
	})
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func capitalizeAll(s string) string {
	var sb strings.Builder
	atStart := true
	for _, r := range s {
		if unicode.IsSpace(r) {
			atStart = true
			sb.WriteRune(r)
			continue
		}
		if atStart {
			sb.WriteRune(unicode.ToUpper(r))
			atStart = false
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// article prepends the English indefinite article.
func article(s string) string {
	trimmed := strings.TrimLeftFunc(s, unicode.IsSpace)
	if trimmed == "" {
		return s
	}
	if strings.ContainsRune("aeiouAEIOU", rune(trimmed[0])) {
		return "an " + s
	}
	return "a " + s
}

// pluralize applies naive English pluralization to the final word.
func pluralize(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	switch {
	case strings.HasSuffix(lower, "y") && len(s) > 1 &&
		!strings.ContainsRune("aeiou", rune(lower[len(lower)-2])):
		return s[:len(s)-1] + "ies"
	case strings.HasSuffix(lower, "s"), strings.HasSuffix(lower, "x"),
		strings.HasSuffix(lower, "z"), strings.HasSuffix(lower, "ch"),
		strings.HasSuffix(lower, "sh"):
		return s + "es"
	default:
		return s + "s"
	}
}

// replaceMethod substitutes all occurrences of args[0] with args[1].
func replaceMethod(in string, args []string) string {
	if len(args) < 2 {
		return in
	}
	return strings.ReplaceAll(in, args[0], args[1])
}
