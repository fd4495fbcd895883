// Package propcheck holds generators and run settings for property tests.
// Settings are passed explicitly to each check; nothing here is global.
package propcheck

import (
	"math/rand"
	"reflect"
	"strings"
	"testing/quick"
)

// Config tunes a property run.
type Config struct {
	MaxCount int
	Seed     int64
}

// Default is the setting used by the package tests.
func Default() Config {
	return Config{MaxCount: 300, Seed: 20240601}
}

// Quick converts c into a testing/quick configuration with its own source.
func (c Config) Quick() *quick.Config {
	return &quick.Config{
		MaxCount: c.MaxCount,
		Rand:     rand.New(rand.NewSource(c.Seed)),
	}
}

const (
	lower  = "abcdefghijklmnopqrstuvwxyz"
	upper  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits = "0123456789"
)

func pick(r *rand.Rand, alphabet string, n int) string {
	var b strings.Builder
	for range n {
		b.WriteByte(alphabet[r.Intn(len(alphabet))])
	}
	return b.String()
}

// ClassName generates PascalCase names such as UserRepository2.
type ClassName string

func (ClassName) Generate(r *rand.Rand, _ int) reflect.Value {
	words := 1 + r.Intn(3)
	var b strings.Builder
	for range words {
		b.WriteString(pick(r, upper, 1))
		b.WriteString(pick(r, lower+digits, r.Intn(8)))
	}
	return reflect.ValueOf(ClassName(b.String()))
}

// PackageName generates dotted packages with two to five segments.
type PackageName string

func (PackageName) Generate(r *rand.Rand, _ int) reflect.Value {
	n := 2 + r.Intn(4)
	segs := make([]string, n)
	for i := range segs {
		segs[i] = "pk" + pick(r, lower+digits+"_", r.Intn(6))
	}
	return reflect.ValueOf(PackageName(strings.Join(segs, ".")))
}

// ProjectName generates hyphenated lowercase names.
type ProjectName string

func (ProjectName) Generate(r *rand.Rand, _ int) reflect.Value {
	n := 1 + r.Intn(3)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = pick(r, lower+digits, 1+r.Intn(6))
	}
	return reflect.ValueOf(ProjectName(strings.Join(parts, "-")))
}

// Doc generates YAML-shaped documents: nested maps whose keys are drawn from
// a small alphabet so that two documents overlap often.
type Doc map[string]any

func (Doc) Generate(r *rand.Rand, _ int) reflect.Value {
	return reflect.ValueOf(Doc(genMap(r, 3)))
}

// Disjoint generates a pair of documents with no top-level key in common.
type Disjoint struct {
	A, B map[string]any
}

func (Disjoint) Generate(r *rand.Rand, _ int) reflect.Value {
	a, b := genMap(r, 2), genMap(r, 2)
	for k := range b {
		if _, ok := a[k]; ok {
			delete(b, k)
		}
	}
	return reflect.ValueOf(Disjoint{A: a, B: b})
}

var keys = []string{"server", "port", "spring", "data", "redis", "host", "name", "enabled", "timeout", "list"}

func genMap(r *rand.Rand, depth int) map[string]any {
	n := r.Intn(5)
	m := make(map[string]any, n)
	for range n {
		m[keys[r.Intn(len(keys))]] = genValue(r, depth)
	}
	return m
}

func genValue(r *rand.Rand, depth int) any {
	kinds := 5
	if depth > 0 {
		kinds = 6
	}
	switch r.Intn(kinds) {
	case 0:
		return r.Intn(100)
	case 1:
		return r.Intn(2) == 0
	case 2:
		return pick(r, lower, 1+r.Intn(5))
	case 3:
		return float64(r.Intn(1000)) / 10
	case 4:
		items := make([]any, 1+r.Intn(3))
		for i := range items {
			items[i] = pick(r, lower, 3)
		}
		return items
	default:
		return genMap(r, depth-1)
	}
}
