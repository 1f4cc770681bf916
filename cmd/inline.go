package cmd

import (
	"encoding/json"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/clipedit/clipedit/filesystem"
	"github.com/clipedit/clipedit/inline"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("in", "i", "", "Read the script from a file instead of stdin")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().BoolP("frames", "f", false, "Include the state after every step")
	inlineCmd.Flags().Bool("continue-on-error", false, "Record failing steps instead of stopping at the first one")
	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")
}

var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Apply a JSON list of editing steps without a terminal UI",
	Long: `Read a script document and apply its steps to a fresh editor session.

Time is virtual: "wait" steps advance the clock instantly, so a script that
plays for an hour finishes at once. See "inline schema" for the input format.

Steps:
  play                      toggle play and pause
  wait {ms}                 advance the clock
  seek {time}               move the play-head
  skip_start, skip_end      jump to the trim window edges
  click {x}                 click the progress bar
  scrub_down|move {x}       scrub the progress bar; scrub_up ends it
  drag_down|move {x,y}      drag the element; drag_up ends it
  trim {start,end}          set the trim window
  geometry {x,y,width,height}`,
	Example: `  echo '{"media":{"kind":"video"},"steps":[{"op":"play"},{"op":"wait","ms":2000}]}' | clipedit inline -j`,
	Run: func(cmd *cobra.Command, args []string) {
		var reader io.Reader = os.Stdin
		if in := lo.Must(cmd.Flags().GetString("in")); in != "" {
			file, err := filesystem.API().Open(in)
			handleErr(err)
			defer file.Close()
			reader = file
		}

		var writer io.Writer = os.Stdout
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer file.Close()
			writer = file
		}

		options := &inline.Options{
			In:              reader,
			Out:             writer,
			Json:            lo.Must(cmd.Flags().GetBool("json")),
			Frames:          lo.Must(cmd.Flags().GetBool("frames")),
			ContinueOnError: lo.Must(cmd.Flags().GetBool("continue-on-error")),
		}

		handleErr(inline.Run(options))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)

	inlineSchemaCmd.Flags().Bool("output", false, "Generate the schema of the JSON output instead of the input")
}

var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON schemas for inline mode documents",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "script", "media", "output", "frame":
				return "inline." + name
			}

			return name
		}

		var schema *jsonschema.Schema

		switch {
		case lo.Must(cmd.Flags().GetBool("output")):
			schema = reflector.Reflect(&inline.Output{})
		default:
			schema = reflector.Reflect(&inline.Script{})
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}
