package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Cómo Invertir! 2025", "como-invertir-2025"},
		{"negocios automáticos con IA", "negocios-automaticos-con-ia"},
		{"  spaced   out  ", "spaced-out"},
		{"¿Qué es el interés compuesto?", "que-es-el-interes-compuesto"},
		{"---", "topic"},
		{"", "topic"},
		{"ya-un-slug", "ya-un-slug"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Slugify(c.in), "input %q", c.in)
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	for _, in := range []string{"Cómo Invertir! 2025", "dinero y libertad", "IA 2026"} {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once))
	}
}
