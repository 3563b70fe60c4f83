package handler

import "sovereign/internal/resolution"

type resolveResponse struct {
	Accepted        bool           `json:"accepted"`
	DAO             string         `json:"dao"`
	MemberCount     uint16         `json:"member_count"`
	NomineeIdentity string         `json:"nominee_identity"`
	NomineeWallet   string         `json:"nominee_wallet"`
	Market          *marketSummary `json:"market,omitempty"`
}

type marketSummary struct {
	Address      string `json:"address"`
	Outcome      string `json:"outcome"`
	AmountBurned uint64 `json:"amount_burned"`
}

func newResolveResponse(res *resolution.Result) resolveResponse {
	resp := resolveResponse{
		Accepted:        res.Outcome.Accepted,
		DAO:             res.Outcome.DAO.String(),
		MemberCount:     res.Outcome.MemberCount,
		NomineeIdentity: res.Outcome.NomineeIdentity.String(),
		NomineeWallet:   res.Outcome.NomineeWallet.String(),
	}
	if res.Market != nil {
		resp.Market = &marketSummary{
			Address:      res.Market.Address.String(),
			Outcome:      res.Market.Outcome.String(),
			AmountBurned: res.Market.AmountBurned,
		}
	}
	return resp
}
