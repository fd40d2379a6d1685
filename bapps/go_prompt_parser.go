package bapps

import (
	"os"
	"os/exec"

	"github.com/c-bata/go-prompt"
)

// bInputParser wraps prompt.PosixParser to change TearDown behavior.
type bInputParser struct {
	*prompt.PosixParser
}

// TearDown restores the terminal, go-prompt leaves it in raw mode on some
// platforms.
func (t *bInputParser) TearDown() error {
	err := t.PosixParser.TearDown()
	rawModeOff := exec.Command("/bin/stty", "-raw", "echo")
	rawModeOff.Stdin = os.Stdin
	_ = rawModeOff.Run()
	return err
}

func NewBInputParser() *bInputParser {
	return &bInputParser{
		PosixParser: prompt.NewStandardInputParser(),
	}
}
