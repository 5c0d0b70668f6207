package utils_test

import (
	"testing"

	"ledger/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		raw      string
		expected float64
	}{
		{"4.50", 4.50},
		{"-4.50", -4.50},
		{"1,234.56", 1234.56},
		{"1.234,56", 1234.56},
		{"1,234", 1234},
		{"4,50", 4.50},
		{"(45.00)", -45.00},
		{"$2,500.00", 2500.00},
		{"€1.234,56", 1234.56},
		{"USD 99.99", 99.99},
		{"  12  ", 12},
		{"0", 0},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			value, err := utils.ParseAmount(tc.raw)
			require.NoError(t, err)
			assert.InDelta(t, tc.expected, value, 0.0001)
		})
	}
}

func TestParseAmountRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "   ", "n/a", "---", "12.3.4,5.6abc"} {
		_, err := utils.ParseAmount(raw)
		assert.Error(t, err, "expected %q to fail", raw)
	}
}

func TestFingerprintContentNormalizes(t *testing.T) {
	base := utils.FingerprintContent([]byte("a,b\n1,2\n"))

	assert.Equal(t, base, utils.FingerprintContent([]byte("a,b\r\n1,2\r\n")))
	assert.Equal(t, base, utils.FingerprintContent([]byte("a,b  \n1,2\t\n\n")))
	assert.NotEqual(t, base, utils.FingerprintContent([]byte("a,b\n1,3\n")))
}

func TestFingerprintBytesIsExact(t *testing.T) {
	assert.NotEqual(t,
		utils.FingerprintBytes([]byte("a,b\n")),
		utils.FingerprintBytes([]byte("a,b\r\n")))
}
