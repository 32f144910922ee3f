package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// Param is a named value substituted into a template.
type Param struct {
	Name  string
	Value any
}

// Params is an ordered parameter list. Substitution runs in slice order.
type Params []Param

// ParamsFromMap returns the entries of m ordered by name.
func ParamsFromMap(m map[string]any) Params {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	params := make(Params, 0, len(names))
	for _, name := range names {
		params = append(params, Param{Name: name, Value: m[name]})
	}
	return params
}

// Render substitutes each parameter into template. Every occurrence of
// {{ name }}, {{name}} and {name} is replaced literally. Parameters are
// applied one after another, so a later parameter sees the output of the
// earlier ones; a value is never re-scanned for its own tokens.
func Render(template string, params Params) string {
	if len(params) == 0 {
		return template
	}

	result := template
	for _, p := range params {
		value := toText(p.Value)
		r := strings.NewReplacer(
			"{{ "+p.Name+" }}", value,
			"{{"+p.Name+"}}", value,
			"{"+p.Name+"}", value,
		)
		result = r.Replace(result)
	}
	return result
}

func toText(v any) string {
	if v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}
