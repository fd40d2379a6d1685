package flagset

import "github.com/cockroachdb/errors"

var (
	// ErrMissingValue is returned when a value option is not followed by a value.
	ErrMissingValue = errors.New("missing flag value")
	// ErrInvalidValue is returned when a value cannot be converted to the option kind
	// or is not one of the declared choices.
	ErrInvalidValue = errors.New("invalid flag value")
	// ErrMissingRequired is returned when a required option was not supplied.
	ErrMissingRequired = errors.New("missing required flag")
)

func missingValue(fs *FlagSet, flag string) error {
	return errors.Wrapf(ErrMissingValue, "%s: flag %s requires a value", fs.name, flag)
}

func invalidValue(fs *FlagSet, flag, value string, cause error) error {
	if cause == nil {
		return errors.Wrapf(ErrInvalidValue, "%s: %q is not a valid value for flag %s", fs.name, value, flag)
	}
	return errors.Mark(errors.Wrapf(cause, "%s: flag %s", fs.name, flag), ErrInvalidValue)
}

func missingRequired(fs *FlagSet, opt *Option) error {
	return errors.Wrapf(ErrMissingRequired, "%s: flag --%s is required", fs.name, opt.Key())
}
