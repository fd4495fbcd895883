package domain

import (
	"regexp"
	"strings"

	"github.com/fatih/camelcase"
	"github.com/gosimple/slug"
)

var (
	projectNamePattern    = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	packageSegmentPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	classNamePattern      = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
)

// javaKeywords cannot appear as package segments of generated sources.
var javaKeywords = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true, "byte": true,
	"case": true, "catch": true, "char": true, "class": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extends": true, "final": true, "finally": true, "float": true,
	"for": true, "goto": true, "if": true, "implements": true, "import": true,
	"instanceof": true, "int": true, "interface": true, "long": true, "native": true,
	"new": true, "package": true, "private": true, "protected": true, "public": true,
	"return": true, "short": true, "static": true, "strictfp": true, "super": true,
	"switch": true, "synchronized": true, "this": true, "throw": true, "throws": true,
	"transient": true, "try": true, "void": true, "volatile": true, "while": true,
	"true": true, "false": true, "null": true,
}

// ValidateProjectName checks lowercase letters, digits and single inner hyphens.
func ValidateProjectName(name string) error {
	if name == "" {
		return &NameError{Field: "name", Value: name, Reason: "must not be empty"}
	}
	if !projectNamePattern.MatchString(name) {
		return &NameError{
			Field:      "name",
			Value:      name,
			Reason:     "must use lowercase letters, digits and single hyphens, and must not start or end with a hyphen",
			Suggestion: SuggestProjectName(name),
		}
	}
	return nil
}

// ValidatePackageName checks a dotted package with at least two segments.
// field names the config field being validated and appears in the error.
func ValidatePackageName(field, pkg string) error {
	if pkg == "" {
		return &NameError{Field: field, Value: pkg, Reason: "must not be empty"}
	}
	if strings.HasPrefix(pkg, ".") || strings.HasSuffix(pkg, ".") {
		return &NameError{Field: field, Value: pkg, Reason: "must not start or end with a dot"}
	}
	if strings.Contains(pkg, "..") {
		return &NameError{Field: field, Value: pkg, Reason: "must not contain empty segments"}
	}
	segments := strings.Split(pkg, ".")
	if len(segments) < 2 {
		return &NameError{Field: field, Value: pkg, Reason: "must contain at least two segments, e.g. com.company.service"}
	}
	for _, seg := range segments {
		if !packageSegmentPattern.MatchString(seg) {
			return &NameError{Field: field, Value: pkg, Reason: "segment " + quote(seg) + " must start with a lowercase letter and contain only lowercase letters, digits and underscores"}
		}
		if javaKeywords[seg] {
			return &NameError{Field: field, Value: pkg, Reason: "segment " + quote(seg) + " is a reserved keyword"}
		}
	}
	return nil
}

// ValidateClassName checks PascalCase: leading uppercase, then letters or digits.
func ValidateClassName(field, name string) error {
	if name == "" {
		return &NameError{Field: field, Value: name, Reason: "must not be empty"}
	}
	if !classNamePattern.MatchString(name) {
		return &NameError{
			Field:      field,
			Value:      name,
			Reason:     "must start with an uppercase letter and contain only letters and digits",
			Suggestion: SuggestClassName(name),
		}
	}
	return nil
}

// SuggestProjectName derives a valid project name from arbitrary input.
func SuggestProjectName(s string) string {
	suggested := slug.Make(strings.Join(camelcase.Split(s), " "))
	suggested = strings.ReplaceAll(suggested, "_", "-")
	for strings.Contains(suggested, "--") {
		suggested = strings.ReplaceAll(suggested, "--", "-")
	}
	suggested = strings.Trim(suggested, "-")
	if suggested == "" {
		return "service"
	}
	return suggested
}

// SuggestClassName derives a PascalCase name from arbitrary input.
func SuggestClassName(s string) string {
	var b strings.Builder
	for _, word := range strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	}) {
		b.WriteString(strings.ToUpper(word[:1]) + word[1:])
	}
	out := strings.TrimLeft(b.String(), "0123456789")
	if out == "" {
		return "Component"
	}
	return out
}

// LowerName is the case-folded form used in resolved paths.
func LowerName(name string) string { return strings.ToLower(name) }

// KebabName splits a PascalCase name into lowercase words joined by hyphens,
// e.g. UserRepository -> user-repository.
func KebabName(name string) string {
	words := camelcase.Split(name)
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.Trim(w, " _-")
		if w != "" {
			out = append(out, strings.ToLower(w))
		}
	}
	return strings.Join(out, "-")
}

// CamelName lowercases the first word of a PascalCase name, e.g. UserRepository -> userRepository.
func CamelName(name string) string {
	words := camelcase.Split(name)
	if len(words) == 0 {
		return name
	}
	words[0] = strings.ToLower(words[0])
	return strings.Join(words, "")
}

// PackagePath converts a dotted package into a slash-separated path.
func PackagePath(pkg string) string { return strings.ReplaceAll(pkg, ".", "/") }

func quote(s string) string { return "'" + s + "'" }
