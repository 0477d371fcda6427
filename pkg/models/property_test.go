package models

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genLetters generates names made of letters only, with a length drawn
// from [min, max].
func genLetters(min, max int) gopter.Gen {
	return gen.IntRange(min, max).FlatMap(func(v interface{}) gopter.Gen {
		return gen.SliceOfN(v.(int), gen.AlphaChar()).Map(func(rs []rune) string {
			return string(rs)
		})
	}, reflect.TypeOf(""))
}

func TestToolConfig_ValidationProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("letter-only names pass validation", prop.ForAll(
		func(name string) bool {
			cfg := &ToolConfig{Name: name}
			return cfg.Validate() && len(cfg.Errors) == 0
		},
		genLetters(MinNameLength, MaxNameLength),
	))

	properties.Property("interior spaces are allowed", prop.ForAll(
		func(first, second string) bool {
			cfg := &ToolConfig{Name: first + " " + second}
			return cfg.Validate()
		},
		genLetters(1, 20),
		genLetters(1, 20),
	))

	properties.Property("any digit makes the name invalid", prop.ForAll(
		func(name string, digit rune) bool {
			cfg := &ToolConfig{Name: name + string(digit)}
			if cfg.Validate() {
				return false
			}
			for _, e := range cfg.Errors {
				if e == "only letters allowed" {
					return true
				}
			}
			return false
		},
		genLetters(1, 20),
		gen.NumChar(),
	))

	properties.Property("validation is repeatable for arbitrary input", prop.ForAll(
		func(name string) bool {
			cfg := &ToolConfig{Name: name}
			first := cfg.Validate()
			firstErrors := append([]string(nil), cfg.Errors...)
			second := cfg.Validate()
			if first != second || len(firstErrors) != len(cfg.Errors) {
				return false
			}
			for i := range firstErrors {
				if firstErrors[i] != cfg.Errors[i] {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
