package script

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/clipedit/clipedit/editor"
	"github.com/clipedit/clipedit/filesystem"
	"github.com/clipedit/clipedit/media"
	"github.com/clipedit/clipedit/playback"
	"github.com/clipedit/clipedit/where"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func write(name, body string) string {
	path := filepath.Join(where.Scripts(), name)
	So(filesystem.API().WriteFile(path, []byte(body), 0o644), ShouldBeNil)
	Forget(path)
	return path
}

func newSession() *editor.Session {
	return editor.NewSession(media.New(media.Video, mo.Some("clip.mp4")), playback.Options{})
}

func TestRun(t *testing.T) {
	Convey("Given a session and an output buffer", t, func() {
		session := newSession()
		var out bytes.Buffer

		Convey("Main drives the editor module", func() {
			path := write("drive.lua", `
local editor = require("editor")

function Main()
	editor.trim(2, 8)
	editor.skip_start()
	editor.play()
	editor.wait(1000)
	local s = editor.state()
	print(s.elapsed, s.mode, s.visible)
	editor.skip_end()
	print(editor.state().visible)
end
`)
			err := Run(context.Background(), path, session, Options{Out: &out})
			So(err, ShouldBeNil)
			So(out.String(), ShouldEqual, "00:03.0\tplaying\ttrue\nfalse\n")
			So(session.Snapshot().Time, ShouldEqual, 8)
		})

		Convey("Drag and geometry calls reach the element", func() {
			path := write("move.lua", `
local editor = require("editor")
function Main()
	editor.geometry(320, 180, 100, 100)
	editor.drag_down(110, 110)
	editor.drag_move(20, 30)
	editor.drag_up()
	local s = editor.state()
	print(s.x, s.y, s.width)
end
`)
			So(Run(context.Background(), path, session, Options{Out: &out}), ShouldBeNil)
			So(out.String(), ShouldEqual, "10\t20\t320\n")
		})

		Convey("Editor errors become Lua errors", func() {
			path := write("bad.lua", `
local editor = require("editor")
function Main() editor.trim(5, 1) end
`)
			err := Run(context.Background(), path, session, Options{Out: &out})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "trim")
		})

		Convey("Scripts may catch editor errors", func() {
			path := write("pcall.lua", `
local editor = require("editor")
function Main()
	local ok = pcall(editor.trim, 5, 1)
	print(ok, #editor.ops())
end
`)
			So(Run(context.Background(), path, session, Options{Out: &out}), ShouldBeNil)
			So(out.String(), ShouldEqual, "false\t14\n")
		})

		Convey("Main is required unless lenient", func() {
			path := write("nomain.lua", `print("loaded")`)
			err := Run(context.Background(), path, session, Options{Out: &out})
			So(err, ShouldNotBeNil)

			out.Reset()
			So(Run(context.Background(), path, session, Options{Out: &out, Lenient: true}), ShouldBeNil)
			So(out.String(), ShouldEqual, "loaded\n")
		})

		Convey("Syntax errors are reported at load", func() {
			path := write("syntax.lua", `function Main( end`)
			err := Run(context.Background(), path, session, Options{Out: &out})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldStartWith, "load ")
		})

		Convey("Missing files are reported", func() {
			err := Run(context.Background(), "/missing.lua", session, Options{Out: &out})
			So(err, ShouldNotBeNil)
		})
	})

	Convey("The scaffold template is a runnable script", t, func() {
		var body bytes.Buffer
		So(Scaffold(&body, "demo", "someone"), ShouldBeNil)
		So(body.String(), ShouldStartWith, strings.Repeat("-", 19)+"\n-- @name    demo")

		path := write("demo.lua", body.String())
		var out bytes.Buffer
		So(Run(context.Background(), path, newSession(), Options{Out: &out}), ShouldBeNil)
		So(out.String(), ShouldEqual, "00:01.5 / 00:05.0\n")
	})
}
