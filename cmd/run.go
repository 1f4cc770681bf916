package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/clipedit/clipedit/color"
	"github.com/clipedit/clipedit/constant"
	"github.com/clipedit/clipedit/editor"
	"github.com/clipedit/clipedit/filesystem"
	"github.com/clipedit/clipedit/icon"
	"github.com/clipedit/clipedit/media"
	"github.com/clipedit/clipedit/open"
	"github.com/clipedit/clipedit/playback"
	"github.com/clipedit/clipedit/script"
	"github.com/clipedit/clipedit/style"
	"github.com/clipedit/clipedit/timeline"
	"github.com/clipedit/clipedit/util"
	"github.com/clipedit/clipedit/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolP("lenient", "l", false, "Do not require the script to define "+constant.ScriptMainFn)
	runCmd.Flags().BoolP("json", "j", false, "Print the final editor state as JSON")
	registerElementFlags(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [script] [media]",
	Short: "Run a Lua editing script",
	Long: `Run a Lua script against an editor session on virtual time.

The script requires the "` + constant.ScriptModule + `" module and drives the editor from its ` + constant.ScriptMainFn + ` function.
Without a media file the session starts from a blank video element.`,
	Args:    cobra.RangeArgs(1, 2),
	Example: "  " + constant.App + " run ./intro.lua clip.mp4",
	Run: func(cmd *cobra.Command, args []string) {
		element := media.New(media.Video, mo.None[string]())
		if len(args) == 2 {
			loaded, err := loadElement(cmd, args[1])
			handleErr(err)
			element = loaded
		}

		session := editor.NewSession(element, playback.Options{
			Surface:   playback.NewRecorder(),
			Scheduler: timeline.NewManualScheduler(),
		})
		defer session.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		err := script.Run(ctx, args[0], session, script.Options{
			Out:     cmd.OutOrStdout(),
			Lenient: lo.Must(cmd.Flags().GetBool("lenient")),
		})
		handleErr(err)

		snapshot := session.Snapshot()
		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(snapshot))
			return
		}

		cmd.Printf(
			"%s %s at %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			snapshot.Mode,
			style.Fg(color.Yellow)(timeline.FormatTime(snapshot.Time)),
		)
	},
}

func init() {
	runCmd.AddCommand(runNewCmd)
	runNewCmd.Flags().StringP("author", "a", "", "Author written into the script header")
	runNewCmd.Flags().Bool("stdout", false, "Print the script instead of saving it")
	runNewCmd.Flags().BoolP("edit", "e", false, "Open the new script in $EDITOR")
}

var runNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a starter script in the scripts directory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := util.SanitizeFilename(args[0])
		author := lo.Must(cmd.Flags().GetString("author"))

		if lo.Must(cmd.Flags().GetBool("stdout")) {
			handleErr(script.Scaffold(cmd.OutOrStdout(), name, author))
			return
		}

		path := filepath.Join(where.Scripts(), name+constant.ScriptFileExt)
		if exists := lo.Must(filesystem.API().Exists(path)); exists {
			handleErr(fmt.Errorf("script already exists: %s", path))
		}

		file, err := filesystem.API().Create(path)
		handleErr(err)

		err = script.Scaffold(file, name, author)
		_ = file.Close()
		handleErr(err)
		cmd.Printf("%s created %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), path)

		if lo.Must(cmd.Flags().GetBool("edit")) {
			handleErr(open.StartWith(path, os.Getenv("EDITOR")))
		}
	},
}
