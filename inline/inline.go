package inline

import (
	"fmt"
	"io"
	"os"

	"github.com/clipedit/clipedit/editor"
	"github.com/clipedit/clipedit/log"
	"github.com/clipedit/clipedit/playback"
	"github.com/clipedit/clipedit/timeline"
)

// Run executes a script on virtual time and writes the resulting state.
func Run(options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}
	if options.In == nil {
		options.In = os.Stdin
	}

	script, err := ParseScript(options.In)
	if err != nil {
		return err
	}

	output, err := Execute(script, options)
	if err != nil {
		return err
	}

	if options.Json {
		return writeJson(options.Out, output)
	}
	return writeText(options.Out, output)
}

// Execute applies the script to a fresh session backed by a recorder.
func Execute(script *Script, options *Options) (*Output, error) {
	element, err := script.Media.Element()
	if err != nil {
		return nil, fmt.Errorf("media: %w", err)
	}

	recorder := playback.NewRecorder()
	session := editor.NewSession(element, playback.Options{
		Surface:   recorder,
		Scheduler: timeline.NewManualScheduler(),
	})
	defer session.Close()

	output := &Output{}
	for i, step := range script.Steps {
		err := session.Apply(step)
		if err != nil {
			if !options.ContinueOnError {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
			log.Warnf("inline step %d failed: %v", i, err)
		}

		output.Steps++
		if options.Frames {
			frame := Frame{Step: i, Op: step.Op, Snapshot: session.Snapshot()}
			if err != nil {
				frame.Error = err.Error()
			}
			output.Frames = append(output.Frames, frame)
		}
	}

	output.Final = session.Snapshot()
	output.Surface = recorder.Calls

	return output, nil
}

func writeJson(out io.Writer, output *Output) error {
	data, err := asJson(output)
	if err != nil {
		return err
	}
	_, err = out.Write(append(data, '\n'))
	return err
}

func writeText(out io.Writer, output *Output) error {
	for _, frame := range output.Frames {
		if _, err := fmt.Fprintf(out, "%3d %-10s %s\n", frame.Step, frame.Op, describe(frame.Snapshot)); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(out, describe(output.Final))
	return err
}

func describe(s playback.Snapshot) string {
	visibility := "visible"
	if !s.Visible {
		visibility = "hidden"
	}
	return fmt.Sprintf("%s / %s %s %s %.0f%%", s.Elapsed, s.Total, s.Mode, visibility, s.Progress)
}
