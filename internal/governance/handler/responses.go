package handler

import "sovereign/internal/governance/models"

type daoResponse struct {
	Address            string `json:"address"`
	ID                 uint64 `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description,omitempty"`
	ContentType        string `json:"content_type"`
	StyleTag           string `json:"style_tag,omitempty"`
	RegionCode         uint16 `json:"region_code,omitempty"`
	MemberCount        uint16 `json:"member_count"`
	Founder            string `json:"founder"`
	CreatedAt          int64  `json:"created_at"`
	AdmissionThreshold uint8  `json:"admission_threshold"`
	VotingPeriod       int64  `json:"voting_period"`
	Quorum             uint8  `json:"quorum"`
	PendingNominations uint8  `json:"pending_nominations"`
	TotalAdmitted      uint64 `json:"total_admitted"`
	TotalRejected      uint64 `json:"total_rejected"`
	IsActive           bool   `json:"is_active"`
	ShouldSplit        bool   `json:"should_consider_split"`
}

func newDAOResponse(d *models.DAO) daoResponse {
	return daoResponse{
		Address:            d.Address.String(),
		ID:                 d.ID,
		Name:               d.Name,
		Description:        d.Description,
		ContentType:        d.ContentType.String(),
		StyleTag:           d.StyleTag,
		RegionCode:         d.RegionCode,
		MemberCount:        d.MemberCount,
		Founder:            d.Founder.String(),
		CreatedAt:          d.CreatedAt,
		AdmissionThreshold: d.AdmissionThreshold,
		VotingPeriod:       d.VotingPeriod,
		Quorum:             d.Quorum,
		PendingNominations: d.PendingNominations,
		TotalAdmitted:      d.TotalAdmitted,
		TotalRejected:      d.TotalRejected,
		IsActive:           d.IsActive,
		ShouldSplit:        d.ShouldConsiderSplit(),
	}
}

type membershipResponse struct {
	Address               string `json:"address"`
	DAO                   string `json:"dao"`
	MemberIdentity        string `json:"member_identity"`
	MemberWallet          string `json:"member_wallet"`
	AdmittedAt            int64  `json:"admitted_at"`
	NominatedBy           string `json:"nominated_by,omitempty"`
	SuccessfulNominations uint16 `json:"successful_nominations"`
	VotesCast             uint64 `json:"votes_cast"`
	IsActive              bool   `json:"is_active"`
}

func newMembershipResponse(m *models.Membership) membershipResponse {
	resp := membershipResponse{
		Address:               m.Address.String(),
		DAO:                   m.DAO.String(),
		MemberIdentity:        m.MemberIdentity.String(),
		MemberWallet:          m.MemberWallet.String(),
		AdmittedAt:            m.AdmittedAt,
		SuccessfulNominations: m.SuccessfulNominations,
		VotesCast:             m.VotesCast,
		IsActive:              m.IsActive,
	}
	if m.HasNominator {
		resp.NominatedBy = m.NominatedBy.String()
	}
	return resp
}

type nominationResponse struct {
	Address              string `json:"address"`
	DAO                  string `json:"dao"`
	ID                   uint64 `json:"id"`
	NomineeIdentity      string `json:"nominee_identity"`
	NomineeWallet        string `json:"nominee_wallet"`
	Nominator            string `json:"nominator"`
	Reason               string `json:"reason,omitempty"`
	CreatedAt            int64  `json:"created_at"`
	VotingEndsAt         int64  `json:"voting_ends_at"`
	VotesAccept          uint16 `json:"votes_accept"`
	VotesReject          uint16 `json:"votes_reject"`
	VotesAbstain         uint16 `json:"votes_abstain"`
	TotalMembersSnapshot uint16 `json:"total_members_snapshot"`
	IsResolved           bool   `json:"is_resolved"`
	WasAccepted          bool   `json:"was_accepted"`
	ResolvedAt           *int64 `json:"resolved_at,omitempty"`
}

func newNominationResponse(n *models.Nomination) nominationResponse {
	resp := nominationResponse{
		Address:              n.Address.String(),
		DAO:                  n.DAO.String(),
		ID:                   n.ID,
		NomineeIdentity:      n.NomineeIdentity.String(),
		NomineeWallet:        n.NomineeWallet.String(),
		Nominator:            n.Nominator.String(),
		Reason:               n.Reason,
		CreatedAt:            n.CreatedAt,
		VotingEndsAt:         n.VotingEndsAt,
		VotesAccept:          n.VotesAccept,
		VotesReject:          n.VotesReject,
		VotesAbstain:         n.VotesAbstain,
		TotalMembersSnapshot: n.TotalMembersSnapshot,
		IsResolved:           n.IsResolved,
		WasAccepted:          n.WasAccepted,
	}
	if n.HasResolvedAt {
		resolvedAt := n.ResolvedAt
		resp.ResolvedAt = &resolvedAt
	}
	return resp
}
