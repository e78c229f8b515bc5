package server

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapErrorf(t *testing.T) {
	errDB := errors.New("pebble: not found")

	cases := []struct {
		name    string
		orig    error
		code    error
		wantMsg string
	}{
		{
			name:    "message includes original error",
			orig:    errDB,
			code:    ErrNotFound,
			wantMsg: "stop S9 not found: pebble: not found",
		},
		{
			name:    "no original error",
			orig:    nil,
			code:    ErrBadParamInput,
			wantMsg: "stop S9 not found",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := WrapErrorf(c.orig, c.code, "stop %s not found", "S9")

			assert.Equal(t, c.wantMsg, err.Error())
			assert.ErrorIs(t, err, c.code)
			assert.Equal(t, c.code, CodeOf(err))
			if c.orig != nil {
				assert.ErrorIs(t, err, c.orig)
			}
			assert.NotErrorIs(t, err, ErrConflict)
		})
	}
}

func TestCodeOf(t *testing.T) {
	t.Run("plain error defaults to internal server error", func(t *testing.T) {
		assert.Equal(t, ErrInternalServerError, CodeOf(errors.New("boom")))
	})

	t.Run("code found through fmt wrapping", func(t *testing.T) {
		inner := WrapErrorf(nil, ErrNotFound, "route R1 not found")
		err := fmt.Errorf("transit route: %w", inner)

		assert.Equal(t, ErrNotFound, CodeOf(err))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("outermost code wins", func(t *testing.T) {
		inner := WrapErrorf(nil, ErrNotFound, "stop not found")
		outer := WrapErrorf(inner, ErrBadParamInput, "bad origin")

		assert.Equal(t, ErrBadParamInput, CodeOf(outer))
		assert.ErrorIs(t, outer, ErrNotFound)
		assert.Equal(t, "bad origin: stop not found", outer.Error())
	})

	t.Run("nil code defaults to internal server error", func(t *testing.T) {
		assert.Equal(t, ErrInternalServerError, CodeOf(WrapErrorf(nil, nil, "x")))
	})
}
