package kverrors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsSetExpectedCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"not found", NotFoundErrorf("server %d", 7), NotFound},
		{"already exists", AlreadyExistsErrorf("server %d", 7), AlreadyExists},
		{"failed precondition", FailedPreconditionErrorf("empty ring"), FailedPrecondition},
		{"internal", InternalErrorf("broken invariant"), Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, IsKVError(tt.err))
			assert.Equal(t, tt.want, ErrorCode(tt.err))
			assert.True(t, IsCode(tt.err, tt.want))
		})
	}
}

func TestErrorCodeOnNilAndForeignErrors(t *testing.T) {
	assert.Equal(t, None, ErrorCode(nil))
	assert.False(t, IsKVError(nil))

	foreign := assertError("boom")
	assert.Equal(t, None, ErrorCode(foreign))
	assert.False(t, IsKVError(foreign))
}

type plainError string

func (e plainError) Error() string { return string(e) }

func assertError(msg string) error {
	return plainError(msg)
}

func TestErrorMessageIncludesCode(t *testing.T) {
	err := NotFoundErrorf("server %d is not registered", 42)
	assert.Contains(t, err.Error(), "NotFound")
	assert.Contains(t, err.Error(), "server 42 is not registered")
}
