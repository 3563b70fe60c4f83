package handler

import (
	"sovereign/internal/identity"
	"sovereign/internal/identity/models"
)

type identityResponse struct {
	Address        string            `json:"address"`
	Owner          string            `json:"owner"`
	CreatedAt      int64             `json:"created_at"`
	Authorities    map[string]string `json:"authorities"`
	Scores         map[string]uint16 `json:"scores"`
	CompositeScore uint16            `json:"composite_score"`
	Tier           uint8             `json:"tier"`
	LastUpdated    int64             `json:"last_updated"`
}

func newIdentityResponse(id *models.Identity) identityResponse {
	authorities := make(map[string]string, models.NumDimensions)
	scores := make(map[string]uint16, models.NumDimensions)
	for d := 0; d < models.NumDimensions; d++ {
		dim := models.Dimension(d)
		authorities[dim.String()] = id.Authorities[d].String()
		scores[dim.String()] = id.Scores[d]
	}
	return identityResponse{
		Address:        id.Address.String(),
		Owner:          id.Owner.String(),
		CreatedAt:      id.CreatedAt,
		Authorities:    authorities,
		Scores:         scores,
		CompositeScore: id.CompositeScore,
		Tier:           id.Tier,
		LastUpdated:    id.LastUpdated,
	}
}

type creatorScoreResponse struct {
	Identity              string `json:"identity"`
	DAOsAccepted          uint16 `json:"daos_accepted"`
	DAOReputationPoints   uint32 `json:"dao_reputation_points"`
	SuccessfulNominations uint16 `json:"successful_nominations"`
	FailedNominations     uint16 `json:"failed_nominations"`
	NominationAccuracyBps uint16 `json:"nomination_accuracy_bps"`
	PredictionPnlBps      int32  `json:"prediction_pnl_bps"`
	PredictionsCorrect    uint32 `json:"predictions_correct"`
	PredictionsIncorrect  uint32 `json:"predictions_incorrect"`
	PredictionAccuracyBps uint16 `json:"prediction_accuracy_bps"`
	PeerUpvotes           uint64 `json:"peer_upvotes"`
	TotalBurned           uint64 `json:"total_burned"`
	FirstDAOAcceptance    *int64 `json:"first_dao_acceptance,omitempty"`
	CreatorScore          uint16 `json:"creator_score"`
	LastUpdated           int64  `json:"last_updated"`
}

func newCreatorScoreResponse(d *models.CreatorScoreDetails) creatorScoreResponse {
	resp := creatorScoreResponse{
		Identity:              d.Identity.String(),
		DAOsAccepted:          d.DAOsAccepted,
		DAOReputationPoints:   d.DAOReputationPoints,
		SuccessfulNominations: d.SuccessfulNominations,
		FailedNominations:     d.FailedNominations,
		NominationAccuracyBps: d.NominationAccuracyBps,
		PredictionPnlBps:      d.PredictionPnlBps,
		PredictionsCorrect:    d.PredictionsCorrect,
		PredictionsIncorrect:  d.PredictionsIncorrect,
		PredictionAccuracyBps: d.PredictionAccuracyBps,
		PeerUpvotes:           d.PeerUpvotes,
		TotalBurned:           d.TotalBurned,
		CreatorScore:          d.CreatorScore(),
		LastUpdated:           d.LastUpdated,
	}
	if d.HasFirstDAOAcceptance {
		first := d.FirstDAOAcceptance
		resp.FirstDAOAcceptance = &first
	}
	return resp
}

type surfacingScoreResponse struct {
	Predictor            string `json:"predictor"`
	SuccessfulSurfaces   uint32 `json:"successful_surfaces"`
	MarketsCreated       uint32 `json:"markets_created"`
	SurfacingAccuracyBps uint16 `json:"surfacing_accuracy_bps"`
	TotalProfit          int64  `json:"total_profit"`
	ScoutScore           uint16 `json:"scout_score"`
	LastUpdated          int64  `json:"last_updated"`
}

func newSurfacingScoreResponse(s *models.SurfacingScore) surfacingScoreResponse {
	return surfacingScoreResponse{
		Predictor:            s.Predictor.String(),
		SuccessfulSurfaces:   s.SuccessfulSurfaces,
		MarketsCreated:       s.MarketsCreated,
		SurfacingAccuracyBps: s.SurfacingAccuracyBps,
		TotalProfit:          s.TotalProfit,
		ScoutScore:           s.ScoutScore,
		LastUpdated:          s.LastUpdated,
	}
}

type leaderboardResponse struct {
	Entries []leaderboardEntry `json:"entries"`
}

type leaderboardEntry struct {
	Rank     int    `json:"rank"`
	Identity string `json:"identity"`
	Score    uint16 `json:"score"`
}

func newLeaderboardResponse(entries []identity.LeaderboardEntry) leaderboardResponse {
	resp := leaderboardResponse{Entries: make([]leaderboardEntry, 0, len(entries))}
	for i, e := range entries {
		resp.Entries = append(resp.Entries, leaderboardEntry{
			Rank:     i + 1,
			Identity: e.Identity.String(),
			Score:    e.Score,
		})
	}
	return resp
}
