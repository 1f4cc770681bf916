// Package script runs Lua editing scripts against an editor session.
package script

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/clipedit/clipedit/constant"
	"github.com/clipedit/clipedit/editor"
	libs "github.com/metafates/mangal-lua-libs"
	lua "github.com/yuin/gopher-lua"
)

type Options struct {
	// Out receives print output; stdout when nil.
	Out io.Writer
	// Lenient skips the check for the Main entry point.
	Lenient bool
}

// Run executes the script at path, then its Main function, with the editor
// module bound to session.
func Run(ctx context.Context, path string, session *editor.Session, options Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	L := lua.NewState()
	defer L.Close()

	L.SetContext(ctx)
	libs.Preload(L)
	L.PreloadModule(constant.ScriptModule, loader(session))
	L.SetGlobal("print", L.NewFunction(printer(options.Out)))

	if err := PreCompileAndLoad(L, path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	main := L.GetGlobal(constant.ScriptMainFn)
	if main.Type() != lua.LTFunction {
		if options.Lenient {
			return nil
		}
		return fmt.Errorf("function %s is required but not defined in %s", constant.ScriptMainFn, path)
	}

	if err := L.CallByParam(lua.P{Fn: main, NRet: 0, Protect: true}); err != nil {
		return fmt.Errorf("%s: %w", constant.ScriptMainFn, err)
	}

	return nil
}

func printer(out io.Writer) lua.LGFunction {
	return func(L *lua.LState) int {
		parts := make([]string, L.GetTop())
		for i := range parts {
			parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
		}
		fmt.Fprintln(out, strings.Join(parts, "\t"))
		return 0
	}
}
