package models

import (
	"bytes"
	"encoding/binary"

	"sovereign/pkg/domain"
	dErrors "sovereign/pkg/domain-errors"
)

// Persisted record layouts, little-endian, fixed width. Text fields are
// null-padded to their maximum length so every record of a kind has the same
// footprint.

const (
	DAORecordSize        = 8 + MaxNameLen + MaxDescriptionLen + 1 + MaxStyleTagLen + 2 + 2 + 32 + 8 + 1 + 8 + 1 + 1 + 8 + 8 + 1 + 8 + 1 + 32 + 1
	MembershipRecordSize = 32 + 32 + 32 + 8 + 1 + 32 + 2 + 8 + 1
	NominationRecordSize = 32 + 8 + 32 + 32 + 32 + MaxReasonLen + 8 + 8 + 2 + 2 + 2 + 2 + 1 + 1 + 1 + 8
	VoteRecordSize       = 32 + 32 + 1 + 8
	CounterRecordSize    = 8
)

type daoRecord struct {
	ID                 uint64
	Name               [MaxNameLen]byte
	Description        [MaxDescriptionLen]byte
	ContentType        uint8
	StyleTag           [MaxStyleTagLen]byte
	RegionCode         uint16
	MemberCount        uint16
	Founder            domain.Address
	CreatedAt          int64
	AdmissionThreshold uint8
	VotingPeriod       int64
	Quorum             uint8
	PendingNominations uint8
	TotalAdmitted      uint64
	TotalRejected      uint64
	IsActive           uint8
	NominationNonce    uint64
	HasParent          uint8
	ParentDAO          domain.Address
	SplitCount         uint8
}

func (d *DAO) MarshalRecord() []byte {
	rec := daoRecord{
		ID:                 d.ID,
		ContentType:        uint8(d.ContentType),
		RegionCode:         d.RegionCode,
		MemberCount:        d.MemberCount,
		Founder:            d.Founder,
		CreatedAt:          d.CreatedAt,
		AdmissionThreshold: d.AdmissionThreshold,
		VotingPeriod:       d.VotingPeriod,
		Quorum:             d.Quorum,
		PendingNominations: d.PendingNominations,
		TotalAdmitted:      d.TotalAdmitted,
		TotalRejected:      d.TotalRejected,
		IsActive:           boolByte(d.IsActive),
		NominationNonce:    d.NominationNonce,
		HasParent:          boolByte(d.HasParent),
		ParentDAO:          d.ParentDAO,
		SplitCount:         d.SplitCount,
	}
	copy(rec.Name[:], d.Name)
	copy(rec.Description[:], d.Description)
	copy(rec.StyleTag[:], d.StyleTag)
	return marshalRecord(rec)
}

func UnmarshalDAORecord(addr domain.Address, data []byte) (*DAO, error) {
	var rec daoRecord
	if err := unmarshalRecord(data, DAORecordSize, &rec); err != nil {
		return nil, err
	}
	return &DAO{
		Address:            addr,
		ID:                 rec.ID,
		Name:               trimPadding(rec.Name[:]),
		Description:        trimPadding(rec.Description[:]),
		ContentType:        ContentType(rec.ContentType),
		StyleTag:           trimPadding(rec.StyleTag[:]),
		RegionCode:         rec.RegionCode,
		MemberCount:        rec.MemberCount,
		Founder:            rec.Founder,
		CreatedAt:          rec.CreatedAt,
		AdmissionThreshold: rec.AdmissionThreshold,
		VotingPeriod:       rec.VotingPeriod,
		Quorum:             rec.Quorum,
		PendingNominations: rec.PendingNominations,
		TotalAdmitted:      rec.TotalAdmitted,
		TotalRejected:      rec.TotalRejected,
		IsActive:           rec.IsActive != 0,
		NominationNonce:    rec.NominationNonce,
		ParentDAO:          rec.ParentDAO,
		HasParent:          rec.HasParent != 0,
		SplitCount:         rec.SplitCount,
	}, nil
}

type membershipRecord struct {
	DAO                   domain.Address
	MemberIdentity        domain.Address
	MemberWallet          domain.Address
	AdmittedAt            int64
	HasNominator          uint8
	NominatedBy           domain.Address
	SuccessfulNominations uint16
	VotesCast             uint64
	IsActive              uint8
}

func (m *Membership) MarshalRecord() []byte {
	return marshalRecord(membershipRecord{
		DAO:                   m.DAO,
		MemberIdentity:        m.MemberIdentity,
		MemberWallet:          m.MemberWallet,
		AdmittedAt:            m.AdmittedAt,
		HasNominator:          boolByte(m.HasNominator),
		NominatedBy:           m.NominatedBy,
		SuccessfulNominations: m.SuccessfulNominations,
		VotesCast:             m.VotesCast,
		IsActive:              boolByte(m.IsActive),
	})
}

func UnmarshalMembershipRecord(addr domain.Address, data []byte) (*Membership, error) {
	var rec membershipRecord
	if err := unmarshalRecord(data, MembershipRecordSize, &rec); err != nil {
		return nil, err
	}
	return &Membership{
		Address:               addr,
		DAO:                   rec.DAO,
		MemberIdentity:        rec.MemberIdentity,
		MemberWallet:          rec.MemberWallet,
		AdmittedAt:            rec.AdmittedAt,
		NominatedBy:           rec.NominatedBy,
		HasNominator:          rec.HasNominator != 0,
		SuccessfulNominations: rec.SuccessfulNominations,
		VotesCast:             rec.VotesCast,
		IsActive:              rec.IsActive != 0,
	}, nil
}

type nominationRecord struct {
	DAO                  domain.Address
	ID                   uint64
	NomineeIdentity      domain.Address
	NomineeWallet        domain.Address
	Nominator            domain.Address
	Reason               [MaxReasonLen]byte
	CreatedAt            int64
	VotingEndsAt         int64
	VotesAccept          uint16
	VotesReject          uint16
	VotesAbstain         uint16
	TotalMembersSnapshot uint16
	IsResolved           uint8
	WasAccepted          uint8
	HasResolvedAt        uint8
	ResolvedAt           int64
}

func (n *Nomination) MarshalRecord() []byte {
	rec := nominationRecord{
		DAO:                  n.DAO,
		ID:                   n.ID,
		NomineeIdentity:      n.NomineeIdentity,
		NomineeWallet:        n.NomineeWallet,
		Nominator:            n.Nominator,
		CreatedAt:            n.CreatedAt,
		VotingEndsAt:         n.VotingEndsAt,
		VotesAccept:          n.VotesAccept,
		VotesReject:          n.VotesReject,
		VotesAbstain:         n.VotesAbstain,
		TotalMembersSnapshot: n.TotalMembersSnapshot,
		IsResolved:           boolByte(n.IsResolved),
		WasAccepted:          boolByte(n.WasAccepted),
		HasResolvedAt:        boolByte(n.HasResolvedAt),
		ResolvedAt:           n.ResolvedAt,
	}
	copy(rec.Reason[:], n.Reason)
	return marshalRecord(rec)
}

func UnmarshalNominationRecord(addr domain.Address, data []byte) (*Nomination, error) {
	var rec nominationRecord
	if err := unmarshalRecord(data, NominationRecordSize, &rec); err != nil {
		return nil, err
	}
	return &Nomination{
		Address:              addr,
		DAO:                  rec.DAO,
		ID:                   rec.ID,
		NomineeIdentity:      rec.NomineeIdentity,
		NomineeWallet:        rec.NomineeWallet,
		Nominator:            rec.Nominator,
		Reason:               trimPadding(rec.Reason[:]),
		CreatedAt:            rec.CreatedAt,
		VotingEndsAt:         rec.VotingEndsAt,
		VotesAccept:          rec.VotesAccept,
		VotesReject:          rec.VotesReject,
		VotesAbstain:         rec.VotesAbstain,
		TotalMembersSnapshot: rec.TotalMembersSnapshot,
		IsResolved:           rec.IsResolved != 0,
		WasAccepted:          rec.WasAccepted != 0,
		ResolvedAt:           rec.ResolvedAt,
		HasResolvedAt:        rec.HasResolvedAt != 0,
	}, nil
}

type voteRecord struct {
	Nomination domain.Address
	VoterHash  [32]byte
	Vote       uint8
	VotedAt    int64
}

func (v *VoteRecord) MarshalRecord() []byte {
	return marshalRecord(voteRecord{
		Nomination: v.Nomination,
		VoterHash:  v.VoterHash,
		Vote:       uint8(v.Vote),
		VotedAt:    v.VotedAt,
	})
}

func UnmarshalVoteRecord(addr domain.Address, data []byte) (*VoteRecord, error) {
	var rec voteRecord
	if err := unmarshalRecord(data, VoteRecordSize, &rec); err != nil {
		return nil, err
	}
	return &VoteRecord{
		Address:    addr,
		Nomination: rec.Nomination,
		VoterHash:  rec.VoterHash,
		Vote:       VoteChoice(rec.Vote),
		VotedAt:    rec.VotedAt,
	}, nil
}

func (c *DAOCounter) MarshalRecord() []byte {
	var buf [CounterRecordSize]byte
	binary.LittleEndian.PutUint64(buf[:], c.Count)
	return buf[:]
}

func UnmarshalCounterRecord(addr domain.Address, data []byte) (*DAOCounter, error) {
	if len(data) != CounterRecordSize {
		return nil, dErrors.Newf(dErrors.CodeInternal, "record size %d, want %d", len(data), CounterRecordSize)
	}
	return &DAOCounter{Address: addr, Count: binary.LittleEndian.Uint64(data)}, nil
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func trimPadding(b []byte) string {
	return string(bytes.TrimRight(b, "\x00"))
}

func marshalRecord(rec any) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, rec)
	return buf.Bytes()
}

func unmarshalRecord(data []byte, want int, out any) error {
	if len(data) != want {
		return dErrors.Newf(dErrors.CodeInternal, "record size %d, want %d", len(data), want)
	}
	return binary.Read(bytes.NewReader(data), binary.LittleEndian, out)
}
