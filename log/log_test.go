package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/clipedit/clipedit/filesystem"
	"github.com/clipedit/clipedit/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)
		So(enabled, ShouldBeFalse)
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		defer viper.Set(key.LogsWrite, false)

		So(Setup(), ShouldBeNil)
		So(enabled, ShouldBeTrue)
	})
}

func TestComponent(t *testing.T) {
	Convey("Given a JSON formatted buffer", t, func() {
		var buf bytes.Buffer
		viper.Set(key.LogsJson, true)
		viper.Set(key.LogsLevel, "debug")
		defer viper.Set(key.LogsJson, false)

		configure(&buf)
		enabled = true
		defer func() { enabled = false }()

		Convey("Scoped entries carry the component field", func() {
			Component("playback").Debugf("mode %s", "playing")

			var entry map[string]any
			So(json.Unmarshal(buf.Bytes(), &entry), ShouldBeNil)
			So(entry["component"], ShouldEqual, "playback")
			So(entry["msg"], ShouldEqual, "mode playing")
			So(entry["level"], ShouldEqual, "debug")
		})

		Convey("Nothing is written while disabled", func() {
			enabled = false
			Component("server").Errorf("dropped")
			Warnf("dropped")
			So(buf.Len(), ShouldEqual, 0)
		})
	})
}
