package cmd

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/clipedit/clipedit/filesystem"
	"github.com/clipedit/clipedit/icon"
	"github.com/clipedit/clipedit/key"
	"github.com/clipedit/clipedit/log"
	"github.com/clipedit/clipedit/media"
	"github.com/clipedit/clipedit/probe"
	"github.com/clipedit/clipedit/timeline"
	"github.com/clipedit/clipedit/util"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const probeTimeout = 10 * time.Second

var errNoMedia = errors.New("no media files found")

func registerElementFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("kind", "k", "", "Treat the file as video or image instead of guessing from its extension")
	lo.Must0(cmd.RegisterFlagCompletionFunc("kind", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{media.Video.String(), media.Image.String()}, cobra.ShellCompDirectiveNoFileComp
	}))

	cmd.Flags().Float64("start", 0, "Trim window start in seconds")
	cmd.Flags().Float64("end", 0, "Trim window end in seconds")
	cmd.Flags().Float64("width", 0, "Element width in canvas pixels")
	cmd.Flags().Float64("height", 0, "Element height in canvas pixels")
	cmd.Flags().Float64("x", 0, "Element left edge in canvas pixels")
	cmd.Flags().Float64("y", 0, "Element top edge in canvas pixels")
}

// loadElement builds the element for path: probed when ffprobe is available,
// guessed from the extension otherwise, then overridden by flags.
func loadElement(cmd *cobra.Command, path string) (*media.Element, error) {
	if _, err := filesystem.API().Stat(path); err != nil {
		return nil, err
	}

	element := probeElement(path)

	if kind := lo.Must(cmd.Flags().GetString("kind")); kind != "" {
		parsed, err := media.ParseKind(kind)
		if err != nil {
			return nil, err
		}
		element.Kind = parsed
	}

	flags := cmd.Flags()
	value := func(name string, fallback float64) float64 {
		if !flags.Changed(name) {
			return fallback
		}
		return lo.Must(flags.GetFloat64(name))
	}

	trim := timeline.Window{
		Start: value("start", element.Trim.Start),
		End:   value("end", element.Trim.End),
	}
	if err := element.SetTrimWindow(trim); err != nil {
		return nil, err
	}

	g := element.Geometry
	geometry := media.Geometry{
		Width:    value("width", g.Width),
		Height:   value("height", g.Height),
		Position: media.Point{X: value("x", g.Position.X), Y: value("y", g.Position.Y)},
	}
	if err := element.SetGeometry(geometry); err != nil {
		return nil, err
	}

	return element, nil
}

func probeElement(path string) *media.Element {
	fallback := func() *media.Element {
		el := media.FromPath(path)
		if d := float64(viper.GetInt(key.EditorDefaultDuration)); d > 0 {
			_ = el.SetTrimWindow(timeline.Window{Start: 0, End: d})
		}
		return el
	}

	if _, err := exec.LookPath(viper.GetString(key.ProbeBinary)); err != nil {
		log.Debugf("probe skipped: %v", err)
		return fallback()
	}

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	erase := util.PrintErasable(fmt.Sprintf("%s Probing %s...", icon.Get(icon.Progress), filepath.Base(path)))
	info, err := probe.NewFromConfig().Probe(ctx, path)
	erase()

	if err != nil {
		log.Warnf("probe %s: %v", path, err)
		return fallback()
	}

	el := info.Element(float64(viper.GetInt(key.CanvasWidth)), math.MaxFloat64)
	if info.Duration <= 0 {
		if d := float64(viper.GetInt(key.EditorDefaultDuration)); d > 0 {
			_ = el.SetTrimWindow(timeline.Window{Start: 0, End: d})
		}
	}
	return el
}

// mediaFiles lists the media files directly inside dir.
func mediaFiles(dir string) ([]string, error) {
	entries, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := lo.FilterMap(entries, func(e os.FileInfo, _ int) (string, bool) {
		return e.Name(), !e.IsDir() && media.IsMedia(e.Name())
	})
	sort.Strings(names)
	return names, nil
}

func pickMediaFile(dir string) (string, error) {
	names, err := mediaFiles(dir)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", fmt.Errorf("%w in %s", errNoMedia, dir)
	}

	var picked string
	prompt := &survey.Select{
		Message: "Pick a file to edit",
		Options: names,
	}

	err = survey.AskOne(prompt, &picked, survey.WithFilter(func(filter, value string, _ int) bool {
		return fuzzy.MatchNormalizedFold(filter, value)
	}))
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, picked), nil
}
