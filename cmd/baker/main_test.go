package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	tests := []struct {
		name         string
		args         []string
		expectedExit int
	}{
		{
			name:         "version command succeeds",
			args:         []string{"baker", "version"},
			expectedExit: 0,
		},
		{
			name:         "unknown command fails",
			args:         []string{"baker", "frobnicate"},
			expectedExit: 1,
		},
		{
			name:         "build with missing config fails",
			args:         []string{"baker", "build", "--config", "does-not-exist.yaml"},
			expectedExit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			assert.Equal(t, tt.expectedExit, run())
		})
	}
}
