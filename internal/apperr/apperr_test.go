// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package apperr

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "usage", err: Usage("need %d arguments", 2), want: 1},
		{name: "io", err: IO("creating", "out", fs.ErrPermission), want: 2},
		{name: "parse", err: Parse("a.json", 3, errors.New("bad token")), want: 3},
		{name: "unclassified", err: errors.New("boom"), want: 4},
		{name: "wrapped parse", err: fmt.Errorf("converting: %w", Parse("a.json", 1, errors.New("x"))), want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "parsing a.json:3: bad token", Parse("a.json", 3, errors.New("bad token")).Error())
	assert.Equal(t, "parsing a.csv: bad header", Parse("a.csv", 0, errors.New("bad header")).Error())
	assert.Equal(t, "creating out: permission denied", IO("creating", "out", fs.ErrPermission).Error())
	assert.Equal(t, "need 2 arguments", Usage("need %d arguments", 2).Error())
}

func TestUnwrap(t *testing.T) {
	err := IO("reading", "x.csv", fs.ErrNotExist)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, KindIO, KindOf(err))
	assert.Equal(t, "io", KindOf(err).String())
}
