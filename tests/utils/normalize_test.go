package utils_test

import (
	"testing"

	"ledger/src/utils"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeContent(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		expected string
	}{
		{"windows line endings", "a,b\r\n1,2\r\n", "a,b\n1,2"},
		{"old mac line endings", "a,b\r1,2\r", "a,b\n1,2"},
		{"trailing whitespace per line", "a,b  \n1,2\t\n", "a,b\n1,2"},
		{"trailing blank lines", "a,b\n1,2\n\n\n", "a,b\n1,2"},
		{"interior blank lines kept", "a,b\n\n1,2", "a,b\n\n1,2"},
		{"already normalized", "a,b\n1,2", "a,b\n1,2"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, string(utils.NormalizeContent([]byte(tc.raw))))
		})
	}
}
