// Package history keeps the command lines entered in interactive mode.
package history

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// FileName is the history file created under the workspace path.
const FileName = ".cmdset_history"

// Item is one history entry, stored as a JSON line.
type Item struct {
	Cmd string `json:"cmd"`
	Ts  int64  `json:"ts"`
}

// Helper command history helper.
type Helper struct {
	items []Item
	hFile *os.File
	now   func() time.Time
}

// NewHistoryHelper loads the history kept in dir and opens it for appending.
// The directory is created when missing. Malformed lines are skipped.
func NewHistoryHelper(dir string) (*Helper, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, errors.Wrapf(err, "failed to create history dir %s", dir)
	}
	filePath := filepath.Join(dir, FileName)

	var lines []Item
	readFile, err := os.Open(filePath)
	if err == nil {
		fileScanner := bufio.NewScanner(readFile)
		for fileScanner.Scan() {
			hi := Item{}
			if err := json.Unmarshal(fileScanner.Bytes(), &hi); err == nil && hi.Cmd != "" {
				lines = append(lines, hi)
			}
		}
		readFile.Close()
	}

	// open file and create if non-existent
	hFile, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open history file")
	}

	return &Helper{
		hFile: hFile,
		items: lines,
		now:   time.Now,
	}, nil
}

// AddLog add cmd log into history helper.
func (h *Helper) AddLog(cmd string) error {
	// skip empty line
	if len(strings.TrimSpace(cmd)) == 0 {
		return nil
	}
	hi := Item{
		Ts:  h.now().Unix(),
		Cmd: cmd,
	}
	h.items = append(h.items, hi)
	if h.hFile == nil {
		return nil
	}
	bs, err := json.Marshal(hi)
	if err != nil {
		return err
	}
	_, err = h.hFile.Write(append(bs, '\n'))
	return err
}

// List all history items with prefix, oldest first.
func (h *Helper) List(input string) []Item {
	items := lo.Filter(h.items, func(item Item, _ int) bool {
		return strings.HasPrefix(item.Cmd, input)
	})
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Ts < items[j].Ts
	})
	return items
}

// Commands returns the distinct command lines, oldest first.
func (h *Helper) Commands() []string {
	return lo.Uniq(lo.Map(h.List(""), func(item Item, _ int) string {
		return item.Cmd
	}))
}

func (h *Helper) Close() {
	if h.hFile != nil {
		h.hFile.Close()
		h.hFile = nil
	}
}
