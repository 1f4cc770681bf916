package script

import (
	"io"
	"strings"
	"text/template"

	"github.com/clipedit/clipedit/constant"
	"github.com/clipedit/clipedit/util"
)

var scaffold = template.Must(template.New("script").Funcs(template.FuncMap{
	"repeat": strings.Repeat,
	"plus":   func(a, b int) int { return a + b },
	"max":    util.Max[int],
}).Parse(constant.ScriptTemplate))

// Scaffold writes a starter script.
func Scaffold(w io.Writer, name, author string) error {
	return scaffold.Execute(w, map[string]string{
		"Name":   name,
		"Author": author,
		"Module": constant.ScriptModule,
		"MainFn": constant.ScriptMainFn,
	})
}
