package bapps

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/milvus-io/cmdset/common"
	"github.com/milvus-io/cmdset/framework"
)

type olcApp struct {
	script string
	logger *zap.Logger
}

type olcCmd struct {
	cmd   string
	muted bool
}

// NewOlcApp runs the comma separated lines of script one by one.
func NewOlcApp(script string, opts ...AppOption) BApp {
	opt := newAppOption(opts)
	return &olcApp{
		script: script,
		logger: opt.logger,
	}
}

func (a *olcApp) Run(start framework.State) {
	if err := a.run(start); err != nil {
		printErr(os.Stdout, err)
	}
}

func (a *olcApp) run(start framework.State) error {
	app := start
	for _, cmd := range parseScripts(a.script) {
		a.logger.Debug("olc run", zap.String("cmd", cmd.cmd), zap.Bool("muted", cmd.muted))
		next, err := a.process(app, cmd)
		if errors.Is(err, common.ExitErr) {
			return nil
		}
		if err != nil {
			return err
		}
		app = next
	}
	return nil
}

func (a *olcApp) process(app framework.State, cmd olcCmd) (framework.State, error) {
	if cmd.muted {
		stdout := os.Stdout
		// set to /dev/null to discard not wanted output
		devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		if err == nil {
			os.Stdout = devNull
			defer func() {
				os.Stdout = stdout
				devNull.Close()
			}()
		}
	}
	return app.Process(cmd.cmd)
}

func parseScripts(script string) []olcCmd {
	parts := lo.Filter(strings.Split(script, ","), func(raw string, _ int) bool {
		return strings.TrimSpace(raw) != ""
	})
	return lo.Map(parts, func(raw string, _ int) olcCmd {
		cmd := strings.TrimSpace(raw)
		// mute cmd using #[command]
		if strings.HasPrefix(cmd, "#") {
			return olcCmd{muted: true, cmd: cmd[1:]}
		}
		return olcCmd{cmd: cmd}
	})
}
