// Package envconf fills configuration structs from environment variables.
//
// A field is bound with `env:"NAME"`. When NAME is unset the `default:"..."`
// tag is used; a field with neither is required. Untagged struct fields (and
// pointers to structs) are walked recursively, `env:"-"` skips a field.
// Supported kinds are strings, bools, signed and unsigned integers, floats,
// time.Duration, comma separated slices of those, pointers to them and any
// type implementing encoding.TextUnmarshaler (slog.Level for instance).
package envconf

import (
	"encoding"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingRequired = errors.New("missing required environment variable")
	ErrUnsupportedType = errors.New("unsupported field type")
	ErrBadDestination  = errors.New("destination must be a non-nil pointer to a struct")
)

// LookupFunc reports the value of a variable and whether it is set.
type LookupFunc func(name string) (string, bool)

var durationType = reflect.TypeOf(time.Duration(0))

// Load reads dst from the process environment. Every missing or malformed
// variable is reported, joined into one error.
func Load(dst any) error {
	return LoadFrom(os.LookupEnv, dst)
}

// LoadFrom is Load with the variables supplied by lookup.
func LoadFrom(lookup LookupFunc, dst any) error {
	if dst == nil {
		return ErrBadDestination
	}

	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: got %T", ErrBadDestination, dst)
	}

	var errs []error

	loadStruct(lookup, v.Elem(), &errs)

	return errors.Join(errs...)
}

func loadStruct(lookup LookupFunc, v reflect.Value, errs *[]error) {
	t := v.Type()

	for i := range v.NumField() {
		sf := t.Field(i)
		fv := v.Field(i)

		if !sf.IsExported() {
			continue
		}

		name, tagged := sf.Tag.Lookup("env")

		switch {
		case name == "-":
			continue
		case !tagged || name == "":
			loadNested(lookup, fv, errs)
			continue
		}

		raw, ok := lookup(name)
		if !ok {
			raw, ok = sf.Tag.Lookup("default")
		}

		if !ok {
			*errs = append(*errs, fmt.Errorf("%w: %s (field %q)", ErrMissingRequired, name, sf.Name))
			continue
		}

		err := setValue(fv, raw)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("parse %s for field %q: %w", name, sf.Name, err))
		}
	}
}

// loadNested walks untagged struct and pointer-to-struct fields. Other
// untagged fields are left alone.
func loadNested(lookup LookupFunc, fv reflect.Value, errs *[]error) {
	switch {
	case fv.Kind() == reflect.Struct && fv.Type() != durationType:
		loadStruct(lookup, fv, errs)
	case fv.Kind() == reflect.Pointer && fv.Type().Elem().Kind() == reflect.Struct:
		if fv.IsNil() {
			fv.Set(reflect.New(fv.Type().Elem()))
		}

		loadStruct(lookup, fv.Elem(), errs)
	}
}

func setValue(fv reflect.Value, raw string) error {
	if fv.CanAddr() {
		u, ok := fv.Addr().Interface().(encoding.TextUnmarshaler)
		if ok {
			err := u.UnmarshalText([]byte(raw))
			if err != nil {
				return fmt.Errorf("unmarshal text: %w", err)
			}

			return nil
		}
	}

	switch fv.Kind() {
	case reflect.Pointer:
		elem := reflect.New(fv.Type().Elem())

		err := setValue(elem.Elem(), raw)
		if err != nil {
			return err
		}

		fv.Set(elem)

		return nil
	case reflect.Slice:
		return setSlice(fv, raw)
	default:
		return setScalar(fv, raw)
	}
}

func setSlice(fv reflect.Value, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		fv.Set(reflect.MakeSlice(fv.Type(), 0, 0))
		return nil
	}

	parts := strings.Split(raw, ",")
	out := reflect.MakeSlice(fv.Type(), len(parts), len(parts))

	for i, p := range parts {
		err := setValue(out.Index(i), strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}

	fv.Set(out)

	return nil
}

//nolint:cyclop
func setScalar(fv reflect.Value, raw string) error {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("parse bool: %w", err)
		}

		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if fv.Type() == durationType {
			d, err := time.ParseDuration(raw)
			if err != nil {
				return fmt.Errorf("parse duration: %w", err)
			}

			fv.SetInt(int64(d))

			return nil
		}

		n, err := strconv.ParseInt(raw, 10, fv.Type().Bits())
		if err != nil {
			return fmt.Errorf("parse int: %w", err)
		}

		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, fv.Type().Bits())
		if err != nil {
			return fmt.Errorf("parse uint: %w", err)
		}

		fv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, fv.Type().Bits())
		if err != nil {
			return fmt.Errorf("parse float: %w", err)
		}

		fv.SetFloat(f)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, fv.Type())
	}

	return nil
}
