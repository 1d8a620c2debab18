package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lab-portal/internal/common"
)

type link struct {
	Link string `json:"link" validate:"required,weblink"`
}

type sample struct {
	Email string `json:"email" validate:"required,email"`
	Links []link `json:"links" validate:"dive"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name       string
		in         sample
		wantFields map[string]string
	}{
		{
			name: "valid",
			in:   sample{Email: "a@b.co", Links: []link{{Link: "https://drive.example.com/x"}}},
		},
		{
			name: "missing email",
			in:   sample{},
			wantFields: map[string]string{
				"email": "email is a required field",
			},
		},
		{
			name: "bad link",
			in:   sample{Email: "a@b.co", Links: []link{{Link: "ftp://x"}}},
			wantFields: map[string]string{
				"links[0].link": "link must be a valid http(s) URL",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Struct(tc.in)
			if tc.wantFields == nil {
				assert.NoError(t, err)
				return
			}

			var vErr *common.ValidationError
			require.True(t, errors.As(err, &vErr))
			got := make(map[string]string, len(vErr.Fields))
			for _, f := range vErr.Fields {
				got[f.Field] = f.Error
			}
			assert.Equal(t, tc.wantFields, got)
		})
	}
}
