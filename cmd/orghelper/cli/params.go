// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// FlagsFromParams returns a flag set named name whose flags write into
// the tagged fields of params, a pointer to a struct. A malformed params
// struct panics: it is a programming error.
//
//	var params teamCreateParams
//	command := &cli.Command{
//	    Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("create", &params) },
//	    Run:   func(ctx context.Context, args []string) error { /* read params */ },
//	}
func FlagsFromParams(name string, params any) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	if err := BindFlags(params, flagSet); err != nil {
		panic(fmt.Sprintf("cli.FlagsFromParams(%q): %v", name, err))
	}
	return flagSet
}

// BindFlags registers one flag per tagged field of params on flagSet.
//
// Tags:
//
//	flag:"name" or flag:"name,n"   long name and optional shorthand; untagged fields are skipped
//	desc:"..."                     help text
//	default:"..."                  default value, parsed per the field type
//
// Field types: string, bool, int, time.Duration, []string (comma
// separated default, repeatable flag). Embedded structs are walked, so
// a shared group such as CommonParams contributes its flags to every
// command that embeds it. Embedded types must be exported.
func BindFlags(params any, flagSet *pflag.FlagSet) error {
	pointer := reflect.ValueOf(params)
	if pointer.Kind() != reflect.Ptr || pointer.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must be a pointer to a struct, got %T", params)
	}
	return bindStruct(pointer.Elem(), flagSet)
}

func bindStruct(value reflect.Value, flagSet *pflag.FlagSet) error {
	for i := range value.NumField() {
		field := value.Type().Field(i)
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if err := bindStruct(value.Field(i), flagSet); err != nil {
				return fmt.Errorf("embedded %s: %w", field.Name, err)
			}
			continue
		}

		tag, ok := field.Tag.Lookup("flag")
		if !ok || tag == "" {
			continue
		}
		name, shorthand, _ := strings.Cut(tag, ",")
		spec := flagSpec{
			name:        name,
			shorthand:   shorthand,
			description: field.Tag.Get("desc"),
			fallback:    field.Tag.Get("default"),
		}
		if err := spec.bind(value.Field(i).Addr().Interface(), flagSet); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}
	return nil
}

// flagSpec is the parsed tag set of one field.
type flagSpec struct {
	name        string
	shorthand   string
	description string
	fallback    string
}

func (spec flagSpec) bind(target any, flagSet *pflag.FlagSet) error {
	switch target := target.(type) {
	case *string:
		flagSet.StringVarP(target, spec.name, spec.shorthand, spec.fallback, spec.description)
	case *bool:
		fallback, err := parseDefault(spec.fallback, strconv.ParseBool)
		if err != nil {
			return spec.badDefault(err)
		}
		flagSet.BoolVarP(target, spec.name, spec.shorthand, fallback, spec.description)
	case *int:
		fallback, err := parseDefault(spec.fallback, strconv.Atoi)
		if err != nil {
			return spec.badDefault(err)
		}
		flagSet.IntVarP(target, spec.name, spec.shorthand, fallback, spec.description)
	case *time.Duration:
		fallback, err := parseDefault(spec.fallback, time.ParseDuration)
		if err != nil {
			return spec.badDefault(err)
		}
		flagSet.DurationVarP(target, spec.name, spec.shorthand, fallback, spec.description)
	case *[]string:
		var fallback []string
		if spec.fallback != "" {
			fallback = strings.Split(spec.fallback, ",")
		}
		flagSet.StringSliceVarP(target, spec.name, spec.shorthand, fallback, spec.description)
	default:
		return fmt.Errorf("flag --%s: unsupported type %T", spec.name, target)
	}
	return nil
}

func (spec flagSpec) badDefault(err error) error {
	return fmt.Errorf("default for --%s: %w", spec.name, err)
}

// parseDefault parses a default tag with parse; empty means the zero
// value.
func parseDefault[T any](text string, parse func(string) (T, error)) (T, error) {
	if text == "" {
		var zero T
		return zero, nil
	}
	return parse(text)
}
