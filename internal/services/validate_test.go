package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "dotted host", raw: "https://example.com/page?q=1"},
		{name: "single label host", raw: "http://intranet/x"},
		{name: "localhost with port", raw: "http://localhost:8080/x"},
		{name: "ipv4", raw: "http://10.0.0.1/x"},
		{name: "ipv6 literal", raw: "http://[::1]:8080/x"},
		{name: "trailing dot", raw: "https://example.com./x"},
		{name: "empty", raw: "  ", wantErr: true},
		{name: "relative", raw: "example.com/x", wantErr: true},
		{name: "ftp scheme", raw: "ftp://example.com/x", wantErr: true},
		{name: "no host", raw: "https://", wantErr: true},
		{name: "underscore", raw: "https://bad_host/x", wantErr: true},
		{name: "empty label", raw: "https://a..b/x", wantErr: true},
		{name: "leading hyphen", raw: "https://-a.com/x", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateURL(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}
