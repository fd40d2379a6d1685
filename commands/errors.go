package commands

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrInvalidCommand is matched by every InvalidCommandError.
var ErrInvalidCommand = errors.New("invalid command")

// InvalidCommandError is returned in strict mode when the leading token is
// neither a flag nor a registered command.
type InvalidCommandError struct {
	Token string
}

// Error implements error.
func (e *InvalidCommandError) Error() string {
	return fmt.Sprintf("unknown command `%s`", e.Token)
}

// Is makes errors.Is(err, ErrInvalidCommand) hold.
func (e *InvalidCommandError) Is(target error) bool {
	return target == ErrInvalidCommand
}
