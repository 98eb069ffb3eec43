package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAccount(t *testing.T) {
	long := strings.Repeat("a", 101)

	tests := []struct {
		name    string
		email   string
		user    string
		wantErr string
	}{
		{name: "valid", email: "a@x.com", user: "Alice"},
		{name: "name limit is inclusive", email: "a@x.com", user: strings.Repeat("a", 100)},
		{name: "missing email", email: "", user: "Alice", wantErr: "email: is required"},
		{name: "bad email", email: "not-an-email", user: "Alice", wantErr: "email: invalid email address"},
		{name: "missing name", email: "a@x.com", user: "", wantErr: "name: is required"},
		{name: "long name", email: "a@x.com", user: long, wantErr: "name: cannot be longer than 100 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAccount(tt.email, tt.user)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrUsage)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
