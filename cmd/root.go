// Package cmd implements the command-line interface for clipedit.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/clipedit/clipedit/color"
	"github.com/clipedit/clipedit/constant"
	"github.com/clipedit/clipedit/icon"
	"github.com/clipedit/clipedit/key"
	"github.com/clipedit/clipedit/log"
	"github.com/clipedit/clipedit/media"
	"github.com/clipedit/clipedit/player"
	"github.com/clipedit/clipedit/style"
	"github.com/clipedit/clipedit/tui"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.Flags().Bool("no-player", false, "Do not mirror playback into an mpv window")
	registerElementFlags(rootCmd)
}

// rootCmd opens the editor on a media file.
var rootCmd = &cobra.Command{
	Use:   constant.App + " [file]",
	Short: "A terminal editor for trimming and placing a single media clip",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiCyan).Render("    - A terminal editor for trimming and placing a single media clip"),
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		var path string
		if len(args) == 1 {
			path = args[0]
		} else {
			picked, err := pickMediaFile(".")
			handleErr(err)
			path = picked
		}

		element, err := loadElement(cmd, path)
		handleErr(err)

		canvas, err := canvasFromConfig()
		handleErr(err)

		options := &tui.Options{
			Element: element,
			Canvas:  canvas,
		}

		noPlayer := lo.Must(cmd.Flags().GetBool("no-player"))
		if !noPlayer && viper.GetBool(key.PlayerEnable) && element.Kind == media.Video {
			if CheckDependencies(viper.GetString(key.PlayerBinary)) {
				options.Player = player.NewFromConfig()
			}
		}

		handleErr(tui.Run(options))
	},
}

func canvasFromConfig() (media.Canvas, error) {
	aspect, err := media.ParseAspect(viper.GetString(key.CanvasAspect))
	if err != nil {
		return media.Canvas{}, fmt.Errorf("%s: %w", key.CanvasAspect, err)
	}
	return media.NewCanvas(float64(viper.GetInt(key.CanvasWidth)), aspect), nil
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
