package bapps

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/manifoldco/promptui"
	"go.uber.org/zap"

	"github.com/milvus-io/cmdset/common"
	"github.com/milvus-io/cmdset/framework"
)

// simpleApp wraps promptui as BApp.
type simpleApp struct {
	logger *zap.Logger
}

func NewSimpleApp(opts ...AppOption) BApp {
	opt := newAppOption(opts)
	return &simpleApp{logger: opt.logger}
}

// Run starts cmdset with promptui. (disable suggestion and history)
func (a *simpleApp) Run(start framework.State) {
	app := start
	for {
		p := promptui.Prompt{
			Label: app.Label(),
		}

		line, err := p.Run()
		// ctrl+c or ctrl+d
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return
		}
		if err != nil {
			a.logger.Warn("prompt failed", zap.Error(err))
			continue
		}
		next, err := app.Process(line)
		if errors.Is(err, common.ExitErr) {
			return
		}
		if err != nil {
			printErr(os.Stdout, err)
			continue
		}
		app = next
		if app.IsEnding() {
			return
		}
	}
}
