package kernel_test

import (
	"testing"

	"foodbot/internal/core/domain/model/kernel"
	"foodbot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPhone(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"already international", "+998901234567", "+998901234567"},
		{"digits without plus", "998901234567", "+998901234567"},
		{"bare subscriber number", "901234567", "+998901234567"},
		{"formatted input", "+998 (90) 123-45-67", "+998901234567"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := kernel.NewPhone(tt.raw)

			require.NoError(t, err)
			require.NoError(t, p.Validate())
			assert.Equal(t, tt.want, p.String())
		})
	}

	t.Run("no digits", func(t *testing.T) {
		_, err := kernel.NewPhone("call me")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var p kernel.Phone
		require.Error(t, p.Validate())
	})
}
