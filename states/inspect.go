package states

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/shlex"
	"go.uber.org/zap"

	"github.com/milvus-io/cmdset/commands"
	"github.com/milvus-io/cmdset/common"
	"github.com/milvus-io/cmdset/framework"
	"github.com/milvus-io/cmdset/states/autocomplete"
)

const (
	metaHelp   = ":help"
	metaFormat = ":format"
	metaWhere  = ":where"
)

var metaCommands = map[string]string{
	metaHelp:   "Print the options of every command",
	metaFormat: "Show or switch the output format",
	metaWhere:  "Filter results with an expression, empty clears",
	"exit":     "Closes the cli",
	"quit":     "Closes the cli",
}

// inspectState parses each line as an argument list.
type inspectState struct {
	framework.BaseState
	label  string
	cs     *commands.CommandSet
	format framework.Format
	filter *framework.ResultFilter
	out    io.Writer
	logger *zap.Logger
}

// Label implements State.
func (s *inspectState) Label() string {
	if s.filter != nil && s.filter.String() != "" {
		return fmt.Sprintf("%s[%s]", s.label, s.filter)
	}
	return s.label
}

func (s *inspectState) writer() io.Writer {
	if s.out != nil {
		return s.out
	}
	return os.Stdout
}

// Process implements State.
func (s *inspectState) Process(line string) (framework.State, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return s, errors.Wrap(err, "failed to split input")
	}
	if len(args) == 0 {
		return s, nil
	}
	s.logger.Debug("process line", zap.Strings("args", args))

	switch args[0] {
	case "exit", "quit":
		next := &exitState{}
		s.SetNext(next)
		return next, common.ExitErr
	case metaHelp:
		help := s.cs.String()
		if help == "" {
			help = "no options defined"
		}
		fmt.Fprintln(s.writer(), help)
		return s, nil
	case metaFormat:
		return s, s.switchFormat(args[1:])
	case metaWhere:
		return s, s.setFilter(strings.Join(args[1:], " "))
	}

	if _, err := s.cs.Parse(args); err != nil {
		return s, err
	}
	rs := framework.NewParseResult(s.cs)
	match, err := s.filter.Match(rs)
	if err != nil {
		return s, err
	}
	if !match {
		return s, errors.Wrapf(common.ErrNoMatch, "where %s", s.filter)
	}
	fmt.Fprintln(s.writer(), framework.NewPresetResultSet(rs, s.format))
	return s, nil
}

func (s *inspectState) switchFormat(args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(s.writer(), s.format)
		return nil
	}
	if !framework.ValidFormat(args[0]) {
		return errors.Newf("unknown format %q", args[0])
	}
	s.format = framework.NameFormat(args[0])
	return nil
}

func (s *inspectState) setFilter(expr string) error {
	filter, err := framework.NewResultFilter(expr)
	if err != nil {
		return err
	}
	s.filter = filter
	return nil
}

// Suggestions implements State.
func (s *inspectState) Suggestions(input string) map[string]string {
	if strings.HasPrefix(input, ":") && !strings.Contains(input, " ") {
		result := make(map[string]string)
		for k, v := range metaCommands {
			if strings.HasPrefix(k, input) {
				result[k] = v
			}
		}
		return result
	}
	return autocomplete.SuggestInput(input, s.cs)
}

// exitState simple exit state.
type exitState struct {
	framework.BaseState
}

func (s *exitState) Label() string { return "" }

func (s *exitState) Process(string) (framework.State, error) {
	return s, common.ExitErr
}

func (s *exitState) Suggestions(string) map[string]string {
	return map[string]string{}
}

func (s *exitState) IsEnding() bool { return true }
