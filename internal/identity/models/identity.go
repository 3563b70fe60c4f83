// Package models defines the identity registry records: the multi-dimension
// identity itself plus the creator-side detail records that accumulate
// governance and market performance.
package models

import (
	"sovereign/internal/score"
	"sovereign/pkg/domain"
	dErrors "sovereign/pkg/domain-errors"
)

// Dimension tags one of the five reputation dimensions. Each dimension has
// its own write authority; the capability table in Identity maps tag to key.
type Dimension uint8

const (
	DimensionTrading Dimension = iota
	DimensionCivic
	DimensionDeveloper
	DimensionInfra
	DimensionCreator

	// NumDimensions sizes the per-dimension tables.
	NumDimensions = 5
)

var dimensionNames = [NumDimensions]string{"trading", "civic", "developer", "infra", "creator"}

func (d Dimension) String() string {
	if int(d) < len(dimensionNames) {
		return dimensionNames[d]
	}
	return "unknown"
}

// ParseDimension parses a dimension tag from its wire name.
func ParseDimension(s string) (Dimension, error) {
	for i, name := range dimensionNames {
		if s == name {
			return Dimension(i), nil
		}
	}
	return 0, dErrors.Newf(dErrors.CodeValidation, "unknown dimension %q", s)
}

// Identity is the root reputation record for a wallet. One per wallet, at
// the derived identity address.
type Identity struct {
	Address   domain.Address
	Owner     domain.Address
	CreatedAt int64

	// Authorities is the capability table: the key allowed to write each
	// dimension score. Checked by equality, never by dispatch.
	Authorities [NumDimensions]domain.Address

	// Scores holds the five dimension scores in basis points.
	Scores [NumDimensions]uint16

	CompositeScore uint16
	Tier           uint8
	LastUpdated    int64
}

// NewIdentity bootstraps an identity with all authorities defaulting to the
// owner and every score at zero (tier 1).
func NewIdentity(owner domain.Address, now int64) *Identity {
	id := &Identity{
		Address:     domain.IdentityAddress(owner),
		Owner:       owner,
		CreatedAt:   now,
		Tier:        1,
		LastUpdated: now,
	}
	for d := range id.Authorities {
		id.Authorities[d] = owner
	}
	return id
}

// Authority returns the key allowed to write the given dimension.
func (i *Identity) Authority(d Dimension) domain.Address {
	return i.Authorities[d]
}

// SetScore writes one dimension and recomputes composite and tier in the
// same step, so the derived fields can never drift from the dimensions.
func (i *Identity) SetScore(d Dimension, bps uint16, now int64) {
	i.Scores[d] = bps
	i.CompositeScore = score.Composite(
		i.Scores[DimensionTrading],
		i.Scores[DimensionCivic],
		i.Scores[DimensionDeveloper],
		i.Scores[DimensionInfra],
		i.Scores[DimensionCreator],
	)
	i.Tier = score.Tier(i.CompositeScore)
	i.LastUpdated = now
}

// Clone returns a deep copy. Memory stores hand out clones so callers cannot
// mutate shared state outside a commit.
func (i *Identity) Clone() *Identity {
	cp := *i
	return &cp
}
