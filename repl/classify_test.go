package repl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		segment string
		class   Classification
		message string
	}{
		{
			name:    "ordinary output",
			segment: "- : int = 1",
			class:   ClassNormal,
		},
		{
			name:    "empty segment",
			segment: "",
			class:   ClassNormal,
		},
		{
			name:    "unbound value error",
			segment: "Error: Unbound value foo",
			class:   ClassError,
			message: "Error: Unbound value foo",
		},
		{
			name:    "error with character context",
			segment: "Characters 0-3:\n  foo;;\n  ^^^\nError: Unbound value foo",
			class:   ClassError,
			message: "Characters 0-3:\n  foo;;\n  ^^^\nError: Unbound value foo",
		},
		{
			name:    "error with file context",
			segment: "File \"homework1.ml\", line 3, characters 2-5:\nError: Syntax error",
			class:   ClassError,
			message: "File \"homework1.ml\", line 3, characters 2-5:\nError: Syntax error",
		},
		{
			name:    "raised exception",
			segment: "Exception: Failure \"boom\".",
			class:   ClassException,
			message: "Exception: Failure \"boom\".",
		},
		{
			name:    "unimplemented stub",
			segment: "Exception: Failure \"Not implemented\".",
			class:   ClassUnimplemented,
			message: "Exception: Failure \"Not implemented\".",
		},
		{
			name:    "unimplemented is case-insensitive",
			segment: "Exception: Failure \"IMPLEMENTED later\".",
			class:   ClassUnimplemented,
			message: "Exception: Failure \"IMPLEMENTED later\".",
		},
		{
			name:    "unimplemented via error keyword",
			segment: "Error: this is not implemented",
			class:   ClassUnimplemented,
			message: "Error: this is not implemented",
		},
		{
			name:    "incomplete expression",
			segment: "Error: This expression has type int\nIt has no method quit",
			class:   ClassIncomplete,
			message: "Error: This expression has type int\nIt has no method quit",
		},
		{
			name:    "earliest marker wins",
			segment: "Exception: Failure \"x\".\nError: trailing",
			class:   ClassException,
			message: "Exception: Failure \"x\".\nError: trailing",
		},
		{
			name:    "context from nearest preceding marker only",
			segment: "File \"a.ml\" loaded\noutput here\nCharacters 4-9:\nError: Unbound value bar",
			class:   ClassError,
			message: "Characters 4-9:\nError: Unbound value bar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class, msg := Classify(tt.segment)
			assert.Equal(t, tt.class, class)
			assert.Equal(t, tt.message, msg)
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	segment := "Exception: Failure \"Not implemented\"."
	firstClass, firstMsg := Classify(segment)
	for i := 0; i < 10; i++ {
		class, msg := Classify(segment)
		assert.Equal(t, firstClass, class)
		assert.Equal(t, firstMsg, msg)
	}
}

func TestClassificationString(t *testing.T) {
	assert.Equal(t, "normal", ClassNormal.String())
	assert.Equal(t, "error", ClassError.String())
	assert.Equal(t, "exception", ClassException.String())
	assert.Equal(t, "unimplemented", ClassUnimplemented.String())
	assert.Equal(t, "incomplete", ClassIncomplete.String())
}
