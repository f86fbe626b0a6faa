// Package json wraps encoding/json and adds readable error messages for
// malformed input.
package json

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Marshal is a wrapper for json.Marshal
func Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// MarshalIndent is a wrapper for json.MarshalIndent with an indentation of four spaces
func MarshalIndent(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "    ")
}

// Unmarshal is a wrapper for json.Unmarshal. Syntax and type errors are
// annotated with the position in the input.
func Unmarshal(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return FormatError(data, err)
	}

	return nil
}

// FormatError takes the marshalled data and the error from Unmarshal and returns a detailed
// error message where the error was and what the error is.
func FormatError(input []byte, err error) error {
	var syntaxError *json.SyntaxError
	if errors.As(err, &syntaxError) {
		line, character, offsetError := lineAndCharacter(input, int(syntaxError.Offset))
		if offsetError != nil {
			return err
		}

		return fmt.Errorf("syntax error at line %d, character %d: %w", line, character, err)
	}

	var typeError *json.UnmarshalTypeError
	if errors.As(err, &typeError) {
		line, character, offsetError := lineAndCharacter(input, int(typeError.Offset))
		if offsetError != nil {
			return err
		}

		return fmt.Errorf("expect type '%s' for '%s' at line %d, character %d: %w", typeError.Type.String(), typeError.Field, line, character, err)
	}

	return err
}

func lineAndCharacter(input []byte, offset int) (line int, character int, err error) {
	lf := byte(0x0A)

	if offset > len(input) || offset < 0 {
		return 0, 0, fmt.Errorf("couldn't find offset %d within the input", offset)
	}

	// Humans tend to count from 1.
	line = 1

	for _, b := range input[:offset] {
		if b == lf {
			line++
			character = 0
			continue
		}
		character++
	}

	// The character at the offset itself
	character++

	return line, character, nil
}
