// Package models defines the governance records: peer-voted DAOs, their
// memberships, nominations, and vote records.
package models

import (
	"sovereign/pkg/domain"
	dErrors "sovereign/pkg/domain-errors"
)

const (
	// MaxDAOMembers is the advisory ceiling before a DAO should consider
	// splitting. Founder additions stop here; admissions by vote do not.
	MaxDAOMembers = 200

	// MaxPendingNominations caps concurrent open nominations per DAO.
	MaxPendingNominations = 20

	// MinVotingPeriod is the shortest allowed voting window in seconds.
	MinVotingPeriod = 86400

	// Field width limits for the fixed record layout.
	MaxNameLen        = 32
	MaxDescriptionLen = 128
	MaxStyleTagLen    = 32
	MaxReasonLen      = 256
)

// ContentType classifies the dominant content niche a DAO curates.
type ContentType uint8

const (
	ContentLongFormWriting ContentType = iota
	ContentShortFormWriting
	ContentMusic
	ContentShortFormVideo
	ContentLongFormVideo
	ContentFiction
	ContentEducational
	ContentPodcasts
	ContentArt
	ContentCode

	numContentTypes
)

var contentTypeNames = [numContentTypes]string{
	"long_form_writing",
	"short_form_writing",
	"music",
	"short_form_video",
	"long_form_video",
	"fiction",
	"educational",
	"podcasts",
	"art",
	"code",
}

func (c ContentType) String() string {
	if c < numContentTypes {
		return contentTypeNames[c]
	}
	return "unknown"
}

func ParseContentType(s string) (ContentType, error) {
	for i, name := range contentTypeNames {
		if s == name {
			return ContentType(i), nil
		}
	}
	return 0, dErrors.Newf(dErrors.CodeValidation, "unknown content type %q", s)
}

// DAO is a peer-governed creator collective. Membership is not token based:
// N members vote new members in through nominations.
type DAO struct {
	Address domain.Address
	ID      uint64

	Name        string
	Description string
	ContentType ContentType
	StyleTag    string
	RegionCode  uint16

	MemberCount uint16
	Founder     domain.Address
	CreatedAt   int64

	// Governance parameters, fixed at creation.
	AdmissionThreshold uint8 // percent of decisive votes needed to admit
	VotingPeriod       int64 // seconds
	Quorum             uint8 // percent of snapshot members that must vote

	PendingNominations uint8
	TotalAdmitted      uint64
	TotalRejected      uint64
	IsActive           bool
	NominationNonce    uint64

	// Split lineage. Splitting itself happens off-protocol; the records
	// just carry the ancestry.
	ParentDAO  domain.Address
	HasParent  bool
	SplitCount uint8
}

// ShouldConsiderSplit reports whether the DAO has grown past the advisory
// member ceiling.
func (d *DAO) ShouldConsiderSplit() bool {
	return d.MemberCount >= MaxDAOMembers
}

func (d *DAO) Clone() *DAO {
	cp := *d
	return &cp
}

// Membership records one wallet's seat in a DAO. Founder-added members have
// no nominator.
type Membership struct {
	Address        domain.Address
	DAO            domain.Address
	MemberIdentity domain.Address
	MemberWallet   domain.Address
	AdmittedAt     int64

	NominatedBy  domain.Address
	HasNominator bool

	SuccessfulNominations uint16
	VotesCast             uint64
	IsActive              bool
}

func (m *Membership) Clone() *Membership {
	cp := *m
	return &cp
}

// DAOCounter is the singleton record handing out globally unique DAO ids.
type DAOCounter struct {
	Address domain.Address
	Count   uint64
}
