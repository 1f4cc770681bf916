package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/clipedit/clipedit/color"
	"github.com/clipedit/clipedit/key"
	"github.com/clipedit/clipedit/probe"
	"github.com/clipedit/clipedit/style"
	"github.com/clipedit/clipedit/timeline"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	probeCmd.Flags().Bool("no-cache", false, "Probe the file even if a cached result exists")
}

var probeCmd = &cobra.Command{
	Use:   "probe [file]",
	Short: "Show the media information the editor starts from",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		binary := viper.GetString(key.ProbeBinary)
		if !CheckDependencies(binary) {
			handleErr(fmt.Errorf("%s is required", binary))
		}

		prober := probe.NewFromConfig()
		if lo.Must(cmd.Flags().GetBool("no-cache")) {
			prober = probe.New(probe.Options{Binary: binary, Cache: mo.None[*probe.Cache]()})
		}

		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()

		info, err := prober.Probe(ctx, args[0])
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(info))
			return
		}

		row := func(name string, value any) {
			cmd.Printf("%s %v\n", style.Fg(color.Purple)(fmt.Sprintf("%-9s", name)), value)
		}

		row("Path", info.Path)
		row("Kind", style.Fg(color.Yellow)(info.Kind.String()))
		row("Format", info.Format)
		if info.Codec != "" {
			row("Codec", info.Codec)
		}
		if info.Width > 0 {
			row("Size", fmt.Sprintf("%dx%d", info.Width, info.Height))
		}
		if info.Duration > 0 {
			row("Duration", timeline.FormatTime(info.Duration))
		}
	},
}
