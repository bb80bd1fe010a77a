package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPascal(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"user", "User"},
		{"user_agent", "UserAgent"},
		{"user-agent", "UserAgent"},
		{"HTTP", "Http"},
		{"Code Signature", "CodeSignature"},
		{"x509", "X509"},
		{"geo.location", "GeoLocation"},
		{"__", ""},
		{"", ""},
		{"héllo", "HLlo"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Pascal(tt.input))
		})
	}
}

func TestMember(t *testing.T) {
	assert.Equal(t, "resolvedIp", Member("resolved_ip"))
	assert.Equal(t, "ip", Member("ip"))
	assert.Equal(t, "", Member("--"))
}

func TestEnumTag(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a", "A"},
		{"b b", "B_B"},
		{"C-c", "C_C"},
		{"  leading and trailing  ", "LEADING_AND_TRAILING"},
		{"snake_case", "SNAKE_CASE"},
		{"multi---dash", "MULTI_DASH"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, EnumTag(tt.input))
		})
	}
}

func TestTokensCollideAcrossPunctuation(t *testing.T) {
	assert.Equal(t, Tokens("foo_bar"), Tokens("foo-bar"))
	assert.Equal(t, Pascal("foo_bar"), Pascal("foo.bar"))
}
