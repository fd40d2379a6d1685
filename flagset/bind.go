package flagset

import (
	"reflect"
	"time"

	"github.com/cockroachdb/errors"
)

var durationType = reflect.TypeOf(time.Duration(0))

// Bind declares one option per exported field of the struct p points to,
// using the field tags:
//
//	name     long flag name (required, fields without it are skipped)
//	short    shorthand letter
//	default  textual default value
//	desc     description
//	required "true" marks the option as required
func (fs *FlagSet) Bind(p any) error {
	v, err := structValue(p)
	if err != nil {
		return err
	}
	tp := v.Type()

	for i := 0; i < v.NumField(); i++ {
		f := tp.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Tag.Get("name")
		if name == "" {
			continue
		}
		kind, ok := fieldKind(f.Type)
		if !ok {
			return errors.Newf("field %s with type %s not supported", f.Name, f.Type)
		}

		opt := fs.add(name, f.Tag.Get("short"), f.Tag.Get("desc"), kind)
		if def := f.Tag.Get("default"); def != "" {
			if err := kind.Check(def); err != nil {
				return errors.Wrapf(err, "field %s default", f.Name)
			}
			opt.Default(def)
		}
		if f.Tag.Get("required") == "true" {
			opt.Required()
		}
	}
	return nil
}

// Decode copies the values of the last consumption into the struct p points to.
// Fields of unset options without default keep their zero value.
func (fs *FlagSet) Decode(p any) error {
	v, err := structValue(p)
	if err != nil {
		return err
	}
	tp := v.Type()

	for i := 0; i < v.NumField(); i++ {
		f := tp.Field(i)
		name := f.Tag.Get("name")
		if !f.IsExported() || name == "" {
			continue
		}
		field := v.Field(i)
		value, ok := fs.Value(name)
		if !ok {
			field.Set(reflect.Zero(f.Type))
			continue
		}
		rv := reflect.ValueOf(value)
		if !rv.Type().ConvertibleTo(f.Type) {
			return errors.Newf("field %s cannot hold %s value", f.Name, rv.Type())
		}
		field.Set(rv.Convert(f.Type))
	}
	return nil
}

func structValue(p any) (reflect.Value, error) {
	v := reflect.ValueOf(p)
	if v.Kind() != reflect.Pointer {
		return reflect.Value{}, errors.New("param is not pointer")
	}
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, errors.Newf("param points to %s, not struct", v.Kind())
	}
	return v, nil
}

func fieldKind(t reflect.Type) (Kind, bool) {
	if t == durationType {
		return KindDuration, true
	}
	switch t.Kind() {
	case reflect.Bool:
		return KindBool, true
	case reflect.String:
		return KindString, true
	case reflect.Int, reflect.Int32, reflect.Int64:
		return KindInt, true
	case reflect.Float32, reflect.Float64:
		return KindFloat, true
	case reflect.Slice:
		if t.Elem().Kind() == reflect.String {
			return KindStrings, true
		}
	}
	return 0, false
}
