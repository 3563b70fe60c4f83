package models

import (
	"crypto/sha256"
	"encoding/binary"

	"sovereign/pkg/domain"
	dErrors "sovereign/pkg/domain-errors"
)

// VoteChoice is a member's ballot on a nomination.
type VoteChoice uint8

const (
	VoteAbstain VoteChoice = iota
	VoteAccept
	VoteReject

	numVoteChoices
)

var voteChoiceNames = [numVoteChoices]string{"abstain", "accept", "reject"}

func (v VoteChoice) String() string {
	if v < numVoteChoices {
		return voteChoiceNames[v]
	}
	return "unknown"
}

func ParseVoteChoice(s string) (VoteChoice, error) {
	for i, name := range voteChoiceNames {
		if s == name {
			return VoteChoice(i), nil
		}
	}
	return 0, dErrors.Newf(dErrors.CodeValidation, "unknown vote choice %q", s)
}

// Nomination proposes a creator for admission to a DAO and accumulates the
// vote tally against a member snapshot taken at creation time.
type Nomination struct {
	Address domain.Address
	DAO     domain.Address
	ID      uint64

	NomineeIdentity domain.Address
	NomineeWallet   domain.Address
	Nominator       domain.Address
	Reason          string

	CreatedAt    int64
	VotingEndsAt int64

	VotesAccept  uint16
	VotesReject  uint16
	VotesAbstain uint16

	// TotalMembersSnapshot freezes the electorate size so quorum math is
	// unaffected by admissions that happen while voting runs.
	TotalMembersSnapshot uint16

	IsResolved    bool
	WasAccepted   bool
	ResolvedAt    int64
	HasResolvedAt bool
}

// HasQuorum reports whether enough of the snapshot electorate voted.
// Abstentions count toward quorum. The required count rounds up, so a
// fractional share of the electorate never satisfies it.
func (n *Nomination) HasQuorum(quorumPct uint8) bool {
	totalVotes := uint32(n.VotesAccept) + uint32(n.VotesReject) + uint32(n.VotesAbstain)
	required := (uint32(n.TotalMembersSnapshot)*uint32(quorumPct) + 99) / 100
	return totalVotes >= required
}

// MeetsThreshold reports whether accept votes carry the admission threshold
// among decisive (non-abstain) votes. No decisive votes means rejection.
func (n *Nomination) MeetsThreshold(thresholdPct uint8) bool {
	decisive := uint32(n.VotesAccept) + uint32(n.VotesReject)
	if decisive == 0 {
		return false
	}
	acceptPct := uint32(n.VotesAccept) * 100 / decisive
	return acceptPct >= uint32(thresholdPct)
}

// VotingEnded reports whether the voting window has closed.
func (n *Nomination) VotingEnded(now int64) bool {
	return now > n.VotingEndsAt
}

// Tally records one ballot.
func (n *Nomination) Tally(choice VoteChoice) {
	switch choice {
	case VoteAccept:
		n.VotesAccept++
	case VoteReject:
		n.VotesReject++
	case VoteAbstain:
		n.VotesAbstain++
	}
}

func (n *Nomination) Clone() *Nomination {
	cp := *n
	return &cp
}

// VoteRecord proves a member voted on a nomination without recording who
// voted how in the clear. Its existence enforces one ballot per member.
type VoteRecord struct {
	Address    domain.Address
	Nomination domain.Address
	VoterHash  [32]byte
	Vote       VoteChoice
	VotedAt    int64
}

func (v *VoteRecord) Clone() *VoteRecord {
	cp := *v
	return &cp
}

// VoterCommitment hashes (voter, nomination id, salt). The salt keeps the
// commitment unlinkable to the voter without the voter's cooperation.
func VoterCommitment(voter domain.Address, nominationID uint64, salt [32]byte) [32]byte {
	var id [8]byte
	binary.LittleEndian.PutUint64(id[:], nominationID)

	h := sha256.New()
	h.Write(voter[:])
	h.Write(id[:])
	h.Write(salt[:])

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
