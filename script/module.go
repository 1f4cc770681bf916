package script

import (
	"github.com/clipedit/clipedit/editor"
	"github.com/clipedit/clipedit/playback"
	lua "github.com/yuin/gopher-lua"
)

// loader exposes session as the editor module.
func loader(session *editor.Session) lua.LGFunction {
	return func(L *lua.LState) int {
		exports := map[string]lua.LGFunction{
			"play":       stepper(session, "play", none),
			"wait":       stepper(session, "wait", func(L *lua.LState, s *editor.Step) { s.Ms = L.CheckInt(1) }),
			"seek":       stepper(session, "seek", func(L *lua.LState, s *editor.Step) { s.Time = float64(L.CheckNumber(1)) }),
			"click":      stepper(session, "click", x),
			"scrub_down": stepper(session, "scrub_down", x),
			"scrub_move": stepper(session, "scrub_move", x),
			"scrub_up":   stepper(session, "scrub_up", none),
			"drag_down":  stepper(session, "drag_down", xy),
			"drag_move":  stepper(session, "drag_move", xy),
			"drag_up":    stepper(session, "drag_up", none),
			"skip_start": stepper(session, "skip_start", none),
			"skip_end":   stepper(session, "skip_end", none),
			"trim": stepper(session, "trim", func(L *lua.LState, s *editor.Step) {
				s.Start = float64(L.CheckNumber(1))
				s.End = float64(L.CheckNumber(2))
			}),
			"geometry": stepper(session, "geometry", func(L *lua.LState, s *editor.Step) {
				s.Width = float64(L.CheckNumber(1))
				s.Height = float64(L.CheckNumber(2))
				s.X = float64(L.OptNumber(3, 0))
				s.Y = float64(L.OptNumber(4, 0))
			}),
			"state": func(L *lua.LState) int {
				L.Push(snapshotTable(L, session.Snapshot()))
				return 1
			},
			"ops": func(L *lua.LState) int {
				list := L.NewTable()
				for _, op := range editor.Ops() {
					list.Append(lua.LString(op))
				}
				L.Push(list)
				return 1
			},
		}

		L.Push(L.SetFuncs(L.NewTable(), exports))
		return 1
	}
}

type argReader func(*lua.LState, *editor.Step)

func none(*lua.LState, *editor.Step) {}

func x(L *lua.LState, s *editor.Step) {
	s.X = float64(L.CheckNumber(1))
}

func xy(L *lua.LState, s *editor.Step) {
	s.X = float64(L.CheckNumber(1))
	s.Y = float64(L.CheckNumber(2))
}

// stepper turns a Lua call into a session step; failures raise a Lua error.
func stepper(session *editor.Session, op string, read argReader) lua.LGFunction {
	return func(L *lua.LState) int {
		step := editor.Step{Op: op}
		read(L, &step)

		if err := session.Apply(step); err != nil {
			L.RaiseError("%s", err.Error())
		}
		return 0
	}
}

func snapshotTable(L *lua.LState, s playback.Snapshot) *lua.LTable {
	t := L.NewTable()

	fields := map[string]lua.LValue{
		"kind":     lua.LString(s.Kind.String()),
		"mode":     lua.LString(s.Mode.String()),
		"source":   lua.LString(s.Source),
		"playing":  lua.LBool(s.Playing),
		"seeking":  lua.LBool(s.Seeking),
		"dragging": lua.LBool(s.Dragging),
		"visible":  lua.LBool(s.Visible),
		"time":     lua.LNumber(s.Time),
		"rendered": lua.LNumber(s.Rendered),
		"progress": lua.LNumber(s.Progress),
		"start":    lua.LNumber(s.Window.Start),
		"end":      lua.LNumber(s.Window.End),
		"width":    lua.LNumber(s.Geometry.Width),
		"height":   lua.LNumber(s.Geometry.Height),
		"x":        lua.LNumber(s.Geometry.Position.X),
		"y":        lua.LNumber(s.Geometry.Position.Y),
		"elapsed":  lua.LString(s.Elapsed),
		"total":    lua.LString(s.Total),
	}

	for k, v := range fields {
		t.RawSetString(k, v)
	}
	return t
}
