package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tevify/tevify/color"
	"github.com/tevify/tevify/icon"
	"github.com/tevify/tevify/key"
	"github.com/tevify/tevify/style"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkCmd reports whether the media engine is installed.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that the media engine is installed",
	Run: func(cmd *cobra.Command, args []string) {
		path := CheckDependencies()
		fmt.Printf("%s %s found at %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), viper.GetString(key.EnginePlayer), path)
	},
}

// CheckDependencies verifies that the configured media engine is on PATH and returns its location.
func CheckDependencies() string {
	path, err := enginePath()
	if err != nil {
		printMissingDependencyError(viper.GetString(key.EnginePlayer))
		os.Exit(1)
	}
	return path
}

func enginePath() (string, error) {
	return exec.LookPath(viper.GetString(key.EnginePlayer))
}

func printMissingDependencyError(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case "darwin":
		installCmd = "brew install mpv"
	case "linux":
		installCmd = "sudo apt install mpv"
	case "windows":
		installCmd = "scoop install mpv"
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The media engine '%s' was not found in your PATH.", dep))

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
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
