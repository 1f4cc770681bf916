package icon

import (
	"testing"

	"github.com/clipedit/clipedit/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Every registered icon", t, func() {
		for i := Success; i <= Link; i++ {
			for _, variant := range AvailableVariants() {
				viper.Set(key.IconsVariant, variant)
				So(Get(i), ShouldNotBeEmpty)
			}
		}
	})

	Convey("Given an unknown variant", t, func() {
		viper.Set(key.IconsVariant, "")
		defer viper.Set(key.IconsVariant, "plain")

		So(Get(Play), ShouldBeEmpty)
	})
}
