package domain

import (
	"fmt"
	"strings"
)

// ParseMethodSignature reads a Java-style signature such as
// "Mono<User> findById(String id)".
func ParseMethodSignature(sig string) (AdapterMethod, error) {
	sig = strings.TrimSpace(sig)
	open := strings.Index(sig, "(")
	if open < 0 || !strings.HasSuffix(sig, ")") {
		return AdapterMethod{}, fmt.Errorf("invalid method %q (expected \"ReturnType name(Type arg)\")", sig)
	}
	ret, name, ok := splitTypeAndName(sig[:open])
	if !ok {
		return AdapterMethod{}, fmt.Errorf("invalid method %q: missing return type", sig)
	}

	m := AdapterMethod{Name: name, ReturnType: ret}
	for _, p := range splitTopLevel(sig[open+1 : len(sig)-1]) {
		typ, pname, ok := splitTypeAndName(p)
		if !ok {
			return AdapterMethod{}, fmt.Errorf("invalid parameter %q in %q", strings.TrimSpace(p), sig)
		}
		m.Parameters = append(m.Parameters, MethodParameter{Name: pname, Type: typ})
	}
	if err := validateMethods([]AdapterMethod{m}); err != nil {
		return AdapterMethod{}, err
	}
	return m, nil
}

// ParseMethodSignatures parses each signature in order.
func ParseMethodSignatures(sigs []string) ([]AdapterMethod, error) {
	methods := make([]AdapterMethod, 0, len(sigs))
	for _, s := range sigs {
		m, err := ParseMethodSignature(s)
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	return methods, nil
}

// ParseField reads an entity field written as name:Type.
func ParseField(s string) (EntityField, error) {
	name, typ, ok := strings.Cut(s, ":")
	name, typ = strings.TrimSpace(name), strings.TrimSpace(typ)
	if !ok || name == "" || typ == "" {
		return EntityField{}, fmt.Errorf("invalid field %q (expected name:Type)", s)
	}
	return EntityField{Name: name, Type: typ}, nil
}

// splitTypeAndName splits "Type name" at the last space.
func splitTypeAndName(s string) (string, string, bool) {
	s = strings.TrimSpace(s)
	i := strings.LastIndex(s, " ")
	if i <= 0 {
		return "", "", false
	}
	return strings.TrimSpace(s[:i]), s[i+1:], true
}

// splitTopLevel splits on commas outside generic brackets.
func splitTopLevel(s string) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if last := strings.TrimSpace(s[start:]); last != "" {
		parts = append(parts, last)
	}
	return parts
}
