package cmd

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/clipedit/clipedit/color"
	"github.com/clipedit/clipedit/constant"
	"github.com/clipedit/clipedit/icon"
	"github.com/clipedit/clipedit/style"
	"github.com/charmbracelet/lipgloss"
)

// CheckDependencies reports whether every binary is on the PATH, printing an
// install hint for each missing one.
func CheckDependencies(binaries ...string) bool {
	ok := true
	for _, binary := range binaries {
		if _, err := exec.LookPath(binary); err != nil {
			printMissingDependency(binary)
			ok = false
		}
	}
	return ok
}

func installHint(dep string) string {
	pkg := dep
	if dep == "ffprobe" {
		pkg = "ffmpeg"
	}

	switch runtime.GOOS {
	case constant.Darwin:
		return "brew install " + pkg
	case constant.Linux:
		return "sudo apt install " + pkg
	case constant.Windows:
		return "scoop install " + pkg
	default:
		return ""
	}
}

func printMissingDependency(dep string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(color.HiRed).Render(fmt.Sprintf("%s Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("'%s' was not found in your PATH. Continuing without it.", dep))

	suggestion := ""
	if hint := installHint(dep); hint != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(hint))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
