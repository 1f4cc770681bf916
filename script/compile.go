package script

import (
	"sync"

	"github.com/clipedit/clipedit/filesystem"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

var bytecodeCache sync.Map

// PreCompileAndLoad runs a script in L, compiling it once per path and
// reusing the prototype afterwards.
func PreCompileAndLoad(L *lua.LState, path string) error {
	if cached, ok := bytecodeCache.Load(path); ok {
		L.Push(L.NewFunctionFromProto(cached.(*lua.FunctionProto)))
		return L.PCall(0, lua.MultRet, nil)
	}

	proto, err := compile(path)
	if err != nil {
		return err
	}
	bytecodeCache.Store(path, proto)

	L.Push(L.NewFunctionFromProto(proto))
	return L.PCall(0, lua.MultRet, nil)
}

func compile(path string) (*lua.FunctionProto, error) {
	file, err := filesystem.API().Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	chunk, err := parse.Parse(file, path)
	if err != nil {
		return nil, err
	}

	return lua.Compile(chunk, path)
}

// Forget drops the compiled prototype of path, for scripts edited on disk.
func Forget(path string) {
	bytecodeCache.Delete(path)
}
