// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// ParseResult holds a decoded value and the unified CUE value it came from.
type ParseResult[T any] struct {
	Value   *T
	Unified cue.Value
}

// ParseAndDecode compiles schema, unifies the definition at schemaPath
// (e.g. "#Config") with data, validates the result and decodes it into T.
func ParseAndDecode[T any](schema, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	options := applyOptions(opts)
	if err := CheckFileSize(data, options.maxFileSize, options.filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}
	root := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if root.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, root.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(options.filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), options.filename)
	}

	unified := root.Unify(userValue)
	if err := unified.Validate(cue.Concrete(options.concrete)); err != nil {
		return nil, FormatError(err, options.filename)
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, options.filename)
	}

	return &ParseResult[T]{Value: &result, Unified: unified}, nil
}

// ParseAndDecodeString is ParseAndDecode with the schema given as a string.
func ParseAndDecodeString[T any](schema string, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	return ParseAndDecode[T]([]byte(schema), data, schemaPath, opts...)
}

// ExportJSON evaluates data as a standalone CUE file and returns its JSON
// export. Every exported value must be concrete.
func ExportJSON(data []byte, opts ...Option) ([]byte, error) {
	options := applyOptions(opts)
	if err := CheckFileSize(data, options.maxFileSize, options.filename); err != nil {
		return nil, err
	}

	value := cuecontext.New().CompileBytes(data, cue.Filename(options.filename))
	if value.Err() != nil {
		return nil, FormatError(value.Err(), options.filename)
	}
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, FormatError(err, options.filename)
	}

	out, err := value.MarshalJSON()
	if err != nil {
		return nil, FormatError(err, options.filename)
	}
	return out, nil
}
