package tui

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	linkOpen = "open"
	linkCopy = "copy"
)

type linkDoneMsg struct {
	action string
	err    error
}

func linkCmd(action string, fn func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		return linkDoneMsg{action: action, err: fn(url)}
	}
}

// OpenURL opens a URL in the default browser.
func OpenURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("opening links is not supported on %s", runtime.GOOS)
	}
	return cmd.Start()
}

// CopyText puts text on the system clipboard.
func CopyText(text string) error {
	return clipboard.WriteAll(text)
}
