package bapps

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/c-bata/go-prompt"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/milvus-io/cmdset/common"
	"github.com/milvus-io/cmdset/configs"
	"github.com/milvus-io/cmdset/framework"
	"github.com/milvus-io/cmdset/history"
)

// PromptApp wraps go-prompt as application.
type PromptApp struct {
	exited         bool
	currentState   framework.State
	suggestHistory bool
	historyHelper  *history.Helper
	logger         *zap.Logger
	prompt         *prompt.Prompt
	config         *configs.Config
}

// NewPromptApp creates the go-prompt front-end. History is kept in the
// configured workspace.
func NewPromptApp(config *configs.Config, opts ...AppOption) (BApp, error) {
	opt := newAppOption(opts)

	hh, err := history.NewHistoryHelper(config.WorkspacePath)
	if err != nil {
		return nil, err
	}
	pa := &PromptApp{
		historyHelper: hh,
		config:        config,
		logger:        opt.logger,
	}

	p := prompt.New(pa.promptExecute, pa.completeInput,
		prompt.OptionTitle("cmdset"),
		prompt.OptionHistory(hh.Commands()),
		prompt.OptionLivePrefix(pa.livePrefix),
		prompt.OptionPrefixTextColor(prompt.Yellow),
		prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
		prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
		prompt.OptionSuggestionBGColor(prompt.DarkGray),
		prompt.OptionSetExitCheckerOnInput(func(in string, breakline bool) bool {
			in = strings.ToLower(strings.TrimSpace(in))
			return breakline && (in == "exit" || in == "quit")
		}),
		prompt.OptionAddKeyBind(prompt.KeyBind{
			Key: prompt.ControlR,
			Fn: func(*prompt.Buffer) {
				pa.suggestHistory = !pa.suggestHistory
			},
		}),
		// setup InputParser with `TearDown` overrided
		prompt.OptionParser(NewBInputParser()),
	)
	pa.prompt = p
	return pa, nil
}

func (a *PromptApp) Run(start framework.State) {
	defer a.historyHelper.Close()
	a.currentState = start
	a.prompt.Run()
	a.currentState.Close()
}

// promptExecute actual execution logic entry.
func (a *PromptApp) promptExecute(in string) {
	in = strings.TrimSpace(in)

	stdout := os.Stdout
	writer, pagerDone := a.startPager(stdout)
	nextState, err := a.currentState.Process(in)
	if writer != nil {
		writer.Close()
	}
	<-pagerDone
	// recovery normal output
	os.Stdout = stdout

	if err := a.historyHelper.AddLog(in); err != nil {
		a.logger.Warn("failed to write history", zap.Error(err))
	}
	a.suggestHistory = false

	if errors.Is(err, common.ExitErr) {
		fmt.Println("Bye!")
		a.exited = true
		return
	}
	if err != nil {
		printErr(os.Stdout, err)
		return
	}

	nextState.SetupCommands()
	a.currentState = nextState

	if a.currentState.IsEnding() {
		fmt.Println("Bye!")
		a.exited = true
	}
}

// startPager redirects os.Stdout into $PAGER when set. The returned channel is
// closed once the pager is done, or immediately without a pager.
func (a *PromptApp) startPager(stdout *os.File) (*os.File, chan struct{}) {
	pagerSig := make(chan struct{})
	pager := os.Getenv("PAGER")
	if pager == "" {
		close(pagerSig)
		return nil, pagerSig
	}

	var args []string
	// refine less behavior
	if pager == "less" {
		args = append(args,
			"-F",        // don't page if content can fix in one screen
			"--no-init", // don't clean screen when start paging
		)
	}
	// #nosec args audit for less
	cmd := exec.Command(pager, args...)

	r, w, err := os.Pipe()
	if err != nil {
		a.logger.Warn("failed to create os pipeline", zap.Error(err))
		close(pagerSig)
		return nil, pagerSig
	}

	os.Stdout = w
	cmd.Stdin = r
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		a.logger.Warn("cannot use $PAGER, set output back to stdout", zap.String("pager", pager), zap.Error(err))
		os.Stdout = stdout
		w.Close()
		close(pagerSig)
		return nil, pagerSig
	}
	go func() {
		// wait here in case of pager exit early
		cmd.Wait()
		a.logger.Debug("wait pager done", zap.Stringer("state", cmd.ProcessState))
		r.Close()
		close(pagerSig)
	}()
	return w, pagerSig
}

// completeInput auto-complete logic entry.
func (a *PromptApp) completeInput(d prompt.Document) []prompt.Suggest {
	input := d.CurrentLineBeforeCursor()
	if a.suggestHistory {
		return a.historySuggestions(input)
	}
	if input == "" {
		return nil
	}
	r := a.currentState.Suggestions(input)
	s := make([]prompt.Suggest, 0, len(r))
	for usage, short := range r {
		s = append(s, prompt.Suggest{
			Text:        usage,
			Description: short,
		})
	}
	sort.Slice(s, func(i, j int) bool {
		return s[i].Text < s[j].Text
	})
	return s
}

// historySuggestions returns suggestion from command history, latest first.
func (a *PromptApp) historySuggestions(input string) []prompt.Suggest {
	items := a.historyHelper.List(input)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Ts > items[j].Ts
	})

	lastIdx := strings.LastIndex(input, " ") + 1
	return lo.Map(items, func(item history.Item, _ int) prompt.Suggest {
		t := time.Unix(item.Ts, 0)
		return prompt.Suggest{
			Text:        item.Cmd[lastIdx:],
			Description: t.Format("2006-01-02 15:04:05"),
		}
	})
}

// livePrefix implements dynamic change prefix.
func (a *PromptApp) livePrefix() (string, bool) {
	if a.exited {
		return "", false
	}
	return fmt.Sprintf("%s > ", a.currentState.Label()), true
}
