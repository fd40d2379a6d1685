package flagset

import (
	"time"
)

// Present reports whether the flag was given in the last consumed input.
func (fs *FlagSet) Present(name string) bool {
	opt := fs.Lookup(name)
	if opt == nil {
		return false
	}
	return fs.values().Changed(opt.Key())
}

// Value returns the typed value of a flag. The second result is false when
// the flag was neither given nor declared with a default, in which case the
// value is nil.
func (fs *FlagSet) Value(name string) (any, bool) {
	opt := fs.Lookup(name)
	if opt == nil {
		return nil, false
	}
	if !fs.values().Changed(opt.Key()) && !opt.hasDefault {
		return nil, false
	}

	store := fs.values()
	key := opt.Key()
	var (
		v   any
		err error
	)
	switch opt.Kind {
	case KindBool:
		v, err = store.GetBool(key)
	case KindString:
		v, err = store.GetString(key)
	case KindInt:
		v, err = store.GetInt(key)
	case KindFloat:
		v, err = store.GetFloat64(key)
	case KindDuration:
		v, err = store.GetDuration(key)
	case KindStrings:
		v, err = store.GetStringSlice(key)
	}
	if err != nil {
		return nil, false
	}
	return v, true
}

// GetBool returns a switch value; unset switches report false, false.
func (fs *FlagSet) GetBool(name string) (bool, bool) {
	return typed[bool](fs, name)
}

// GetString returns a string value.
func (fs *FlagSet) GetString(name string) (string, bool) {
	return typed[string](fs, name)
}

// GetInt returns an integer value.
func (fs *FlagSet) GetInt(name string) (int, bool) {
	return typed[int](fs, name)
}

// GetFloat returns a float value.
func (fs *FlagSet) GetFloat(name string) (float64, bool) {
	return typed[float64](fs, name)
}

// GetDuration returns a duration value.
func (fs *FlagSet) GetDuration(name string) (time.Duration, bool) {
	return typed[time.Duration](fs, name)
}

// GetStrings returns a string list value.
func (fs *FlagSet) GetStrings(name string) ([]string, bool) {
	return typed[[]string](fs, name)
}

func typed[T any](fs *FlagSet, name string) (T, bool) {
	var zero T
	v, ok := fs.Value(name)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// ToMap returns every declared option keyed by name, with nil for unset ones.
func (fs *FlagSet) ToMap() map[string]any {
	result := make(map[string]any, len(fs.options))
	for _, opt := range fs.options {
		v, ok := fs.Value(opt.Key())
		if !ok {
			result[opt.Key()] = nil
			continue
		}
		result[opt.Key()] = v
	}
	return result
}
