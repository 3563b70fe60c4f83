package handler

import (
	"encoding/hex"

	"sovereign/internal/governance"
	"sovereign/internal/governance/models"
	"sovereign/pkg/domain"
	dErrors "sovereign/pkg/domain-errors"
)

type createDAORequest struct {
	Name               string `json:"name"`
	Description        string `json:"description"`
	ContentType        string `json:"content_type"`
	StyleTag           string `json:"style_tag"`
	RegionCode         uint16 `json:"region_code"`
	AdmissionThreshold uint8  `json:"admission_threshold"`
	VotingPeriod       int64  `json:"voting_period"`
	Quorum             uint8  `json:"quorum"`

	params governance.CreateDAOParams
}

func (r *createDAORequest) Validate() error {
	ct, err := models.ParseContentType(r.ContentType)
	if err != nil {
		return err
	}
	r.params = governance.CreateDAOParams{
		Name:               r.Name,
		Description:        r.Description,
		ContentType:        ct,
		StyleTag:           r.StyleTag,
		RegionCode:         r.RegionCode,
		AdmissionThreshold: r.AdmissionThreshold,
		VotingPeriod:       r.VotingPeriod,
		Quorum:             r.Quorum,
	}
	return nil
}

type addMemberRequest struct {
	Wallet string `json:"wallet"`

	wallet domain.Address
}

func (r *addMemberRequest) Validate() error {
	addr, err := domain.ParseAddress(r.Wallet)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "wallet")
	}
	r.wallet = addr
	return nil
}

type nominateRequest struct {
	NomineeWallet string `json:"nominee_wallet"`
	Reason        string `json:"reason"`

	nominee domain.Address
}

func (r *nominateRequest) Validate() error {
	addr, err := domain.ParseAddress(r.NomineeWallet)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "nominee_wallet")
	}
	r.nominee = addr
	return nil
}

type castVoteRequest struct {
	Choice string `json:"choice"`
	// Salt blinds the voter commitment; 32 bytes hex encoded.
	Salt string `json:"salt"`

	choice models.VoteChoice
	salt   [32]byte
}

func (r *castVoteRequest) Validate() error {
	choice, err := models.ParseVoteChoice(r.Choice)
	if err != nil {
		return err
	}
	raw, err := hex.DecodeString(r.Salt)
	if err != nil || len(raw) != 32 {
		return dErrors.New(dErrors.CodeValidation, "salt must be 32 bytes hex encoded")
	}
	r.choice = choice
	copy(r.salt[:], raw)
	return nil
}
