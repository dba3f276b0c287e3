package ui

import (
	"errors"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"
)

var errNoSpeech = errors.New("no text-to-speech program found (tried espeak-ng, espeak, say)")

type spokenMsg struct {
	err error
}

// speechArgs builds the arguments for an en-US voice at a slightly slower
// rate. "--" ends option parsing so words like "-ful" are spoken, not parsed.
func speechArgs(program, text string) []string {
	if program == "say" {
		return []string{"-r", "160", "--", text}
	}
	return []string{"-v", "en-us", "-s", "150", "--", text}
}

// speechCommand picks the first installed TTS program.
func speechCommand(text string) (*exec.Cmd, error) {
	for _, program := range []string{"espeak-ng", "espeak", "say"} {
		if path, err := exec.LookPath(program); err == nil {
			return exec.Command(path, speechArgs(program, text)...), nil
		}
	}
	return nil, errNoSpeech
}

func speakCmd(text string) tea.Cmd {
	return func() tea.Msg {
		cmd, err := speechCommand(text)
		if err != nil {
			return spokenMsg{err: err}
		}
		return spokenMsg{err: cmd.Run()}
	}
}
