package services_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodbot/internal/core/domain/services"
)

func TestOTPGenerator_Generate(t *testing.T) {
	gen := services.NewOTPGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := gen.Generate()
		require.NoError(t, err)
		require.Len(t, code, 5)

		_, err = strconv.Atoi(code)
		require.NoError(t, err, "code must be numeric: %q", code)
		seen[code] = true
	}

	// 50 draws from a 100000-code space collide vanishingly rarely.
	assert.Greater(t, len(seen), 40)
}
