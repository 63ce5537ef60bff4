package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTuple(t *testing.T) {
	cases := []struct {
		name         string
		input        string
		expectedArgs []argValue
		expectedErr  bool
	}{
		{
			name:         "stream target with trailing comma",
			input:        "(sys.stdout,)",
			expectedArgs: []argValue{{value: "sys.stdout"}},
		},
		{
			name:  "path and mode",
			input: "('%(log_dir)s/log.txt', 'w')",
			expectedArgs: []argValue{
				{value: "%(log_dir)s/log.txt", quoted: true},
				{value: "w", quoted: true},
			},
		},
		{
			name:  "double quotes",
			input: `("run.log", "a")`,
			expectedArgs: []argValue{
				{value: "run.log", quoted: true},
				{value: "a", quoted: true},
			},
		},
		{
			name:         "empty",
			input:        "",
			expectedArgs: nil,
		},
		{
			name:         "empty tuple",
			input:        "()",
			expectedArgs: nil,
		},
		{
			name:        "unterminated string",
			input:       "('log.txt)",
			expectedErr: true,
		},
		{
			name:        "unbalanced parentheses",
			input:       "('log.txt', 'w'",
			expectedErr: true,
		},
		{
			name:        "missing comma",
			input:       "('log.txt' 'w')",
			expectedErr: true,
		},
		{
			name:        "empty element",
			input:       "(, 'w')",
			expectedErr: true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			args, err := parseTuple(c.input)
			if c.expectedErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, c.expectedArgs, args)
		})
	}
}
