package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "sovereign/pkg/domain-errors"
)

func TestParseAddress_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseAddress("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("rejects short hex", func(t *testing.T) {
		_, err := ParseAddress("abcd")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("rejects non-hex", func(t *testing.T) {
		_, err := ParseAddress(strings.Repeat("zz", 32))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("rejects zero address", func(t *testing.T) {
		_, err := ParseAddress(strings.Repeat("00", 32))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("round trips", func(t *testing.T) {
		raw := strings.Repeat("ab", 32)
		a, err := ParseAddress(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, a.String())
		assert.False(t, a.IsZero())
	})
}

func TestDerive_Deterministic(t *testing.T) {
	founder := MustAddress(strings.Repeat("11", 32))

	a := DAOAddress(founder, 0)
	b := DAOAddress(founder, 0)
	c := DAOAddress(founder, 1)

	assert.Equal(t, a, b, "same seeds must derive the same address")
	assert.NotEqual(t, a, c, "different nonce must derive a different address")
	assert.False(t, a.IsZero())
}

func TestDerive_NoSeedBoundaryCollision(t *testing.T) {
	a := Derive([]byte("ab"), []byte("c"))
	b := Derive([]byte("a"), []byte("bc"))
	assert.NotEqual(t, a, b)
}

func TestDerive_FamiliesAreDisjoint(t *testing.T) {
	dao := MustAddress(strings.Repeat("22", 32))
	wallet := MustAddress(strings.Repeat("33", 32))

	assert.NotEqual(t, MembershipAddress(dao, wallet), MarketAddress(dao, wallet))
	assert.NotEqual(t, VoteRecordAddress(dao, wallet), PositionAddress(dao, wallet))
}
