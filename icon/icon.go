// Package icon renders UI symbols in the variant selected by icons.variant.
package icon

import (
	"github.com/clipedit/clipedit/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Play
	Pause
	SkipStart
	SkipEnd
	Video
	Image
	Scrub
	Drag
	Hidden
	Lua
	Link
)

// Variants in the column order of the glyph table.
var variants = []string{"emoji", "nerd", "plain", "kaomoji", "squares"}

// AvailableVariants lists the accepted icons.variant values.
func AvailableVariants() []string {
	return append([]string(nil), variants...)
}

type glyphs [5]string

var table = map[Icon]glyphs{
	//           emoji, nerd, plain, kaomoji, squares
	Success:   {"🎉", "", "+", "(ᵔᴥᵔ)", "🟩"},
	Fail:      {"💀", "", "x", "(×﹏×)", "🟥"},
	Progress:  {"👾", "", "~", "(・_・)ノ", "🟦"},
	Play:      {"▶️", "", ">", "(づ｡◕‿‿◕｡)づ", "▶"},
	Pause:     {"⏸️", "", "||", "(￣o￣) zzZ", "⏸"},
	SkipStart: {"⏮️", "", "|<", "(<_<)", "⏮"},
	SkipEnd:   {"⏭️", "", ">|", "(>_>)", "⏭"},
	Video:     {"🎬", "", "video", "(⌐■_■)", "🟪"},
	Image:     {"🖼️", "", "image", "(◕‿◕)", "🟧"},
	Scrub:     {"🎚️", "", "<>", "(ง'̀-'́)ง", "🟨"},
	Drag:      {"✋", "", "+", "(ﾉ◕ヮ◕)ﾉ", "⬜"},
	Hidden:    {"🙈", "", "-", "(-_-)", "⬛"},
	Lua:       {"🌙", "", "lua", "(☾)", "🟦"},
	Link:      {"🔗", "", "@", "(∞)", "🔳"},
}

// Get renders i in the configured variant, or "" for an unknown variant.
func Get(i Icon) string {
	column := lo.IndexOf(variants, viper.GetString(key.IconsVariant))
	if column < 0 {
		return ""
	}
	return table[i][column]
}
