package models

import (
	"bytes"
	"encoding/binary"

	"sovereign/pkg/domain"
	dErrors "sovereign/pkg/domain-errors"
)

// Persisted record layouts. Field order is fixed and every field has
// constant width, so record sizes never change after creation. Integers are
// little-endian.

// Record sizes in bytes.
const (
	IdentityRecordSize       = 32 + 8 + NumDimensions*32 + NumDimensions*2 + 2 + 1 + 8
	CreatorScoreRecordSize   = 32 + 2 + 4 + 2 + 2 + 2 + 4 + 4 + 4 + 2 + 8 + 4 + 8 + 8 + 1 + 8
	SurfacingRecordSize      = 32 + 4 + 4 + 2 + 8 + 2 + 8
	TradingDetailsRecordSize = 32 + 2 + 2 + 8 + 8 + 2 + 8
	CivicDetailsRecordSize   = 32 + 8 + 2 + 8 + 8 + 2 + 2 + 8
)

type identityRecord struct {
	Owner          domain.Address
	CreatedAt      int64
	Authorities    [NumDimensions]domain.Address
	Scores         [NumDimensions]uint16
	CompositeScore uint16
	Tier           uint8
	LastUpdated    int64
}

// MarshalRecord encodes the identity into its fixed wire layout. The record
// address is the storage key and is not part of the payload.
func (i *Identity) MarshalRecord() []byte {
	return marshalRecord(identityRecord{
		Owner:          i.Owner,
		CreatedAt:      i.CreatedAt,
		Authorities:    i.Authorities,
		Scores:         i.Scores,
		CompositeScore: i.CompositeScore,
		Tier:           i.Tier,
		LastUpdated:    i.LastUpdated,
	})
}

// UnmarshalIdentityRecord decodes an identity record stored at addr.
func UnmarshalIdentityRecord(addr domain.Address, data []byte) (*Identity, error) {
	var rec identityRecord
	if err := unmarshalRecord(data, IdentityRecordSize, &rec); err != nil {
		return nil, err
	}
	return &Identity{
		Address:        addr,
		Owner:          rec.Owner,
		CreatedAt:      rec.CreatedAt,
		Authorities:    rec.Authorities,
		Scores:         rec.Scores,
		CompositeScore: rec.CompositeScore,
		Tier:           rec.Tier,
		LastUpdated:    rec.LastUpdated,
	}, nil
}

type creatorScoreRecord struct {
	Identity              domain.Address
	DAOsAccepted          uint16
	DAOReputationPoints   uint32
	SuccessfulNominations uint16
	FailedNominations     uint16
	NominationAccuracyBps uint16
	PredictionPnlBps      int32
	PredictionsCorrect    uint32
	PredictionsIncorrect  uint32
	PredictionAccuracyBps uint16
	PeerUpvotes           uint64
	ContentCount          uint32
	TotalBurned           uint64
	FirstDAOAcceptance    int64
	HasFirstAcceptance    uint8
	LastUpdated           int64
}

func (c *CreatorScoreDetails) MarshalRecord() []byte {
	rec := creatorScoreRecord{
		Identity:              c.Identity,
		DAOsAccepted:          c.DAOsAccepted,
		DAOReputationPoints:   c.DAOReputationPoints,
		SuccessfulNominations: c.SuccessfulNominations,
		FailedNominations:     c.FailedNominations,
		NominationAccuracyBps: c.NominationAccuracyBps,
		PredictionPnlBps:      c.PredictionPnlBps,
		PredictionsCorrect:    c.PredictionsCorrect,
		PredictionsIncorrect:  c.PredictionsIncorrect,
		PredictionAccuracyBps: c.PredictionAccuracyBps,
		PeerUpvotes:           c.PeerUpvotes,
		ContentCount:          c.ContentCount,
		TotalBurned:           c.TotalBurned,
		FirstDAOAcceptance:    c.FirstDAOAcceptance,
		LastUpdated:           c.LastUpdated,
	}
	if c.HasFirstDAOAcceptance {
		rec.HasFirstAcceptance = 1
	}
	return marshalRecord(rec)
}

func UnmarshalCreatorScoreRecord(addr domain.Address, data []byte) (*CreatorScoreDetails, error) {
	var rec creatorScoreRecord
	if err := unmarshalRecord(data, CreatorScoreRecordSize, &rec); err != nil {
		return nil, err
	}
	return &CreatorScoreDetails{
		Address:               addr,
		Identity:              rec.Identity,
		DAOsAccepted:          rec.DAOsAccepted,
		DAOReputationPoints:   rec.DAOReputationPoints,
		SuccessfulNominations: rec.SuccessfulNominations,
		FailedNominations:     rec.FailedNominations,
		NominationAccuracyBps: rec.NominationAccuracyBps,
		PredictionPnlBps:      rec.PredictionPnlBps,
		PredictionsCorrect:    rec.PredictionsCorrect,
		PredictionsIncorrect:  rec.PredictionsIncorrect,
		PredictionAccuracyBps: rec.PredictionAccuracyBps,
		PeerUpvotes:           rec.PeerUpvotes,
		ContentCount:          rec.ContentCount,
		TotalBurned:           rec.TotalBurned,
		FirstDAOAcceptance:    rec.FirstDAOAcceptance,
		HasFirstDAOAcceptance: rec.HasFirstAcceptance != 0,
		LastUpdated:           rec.LastUpdated,
	}, nil
}

type surfacingRecord struct {
	Predictor            domain.Address
	SuccessfulSurfaces   uint32
	MarketsCreated       uint32
	SurfacingAccuracyBps uint16
	TotalProfit          int64
	ScoutScore           uint16
	LastUpdated          int64
}

func (s *SurfacingScore) MarshalRecord() []byte {
	return marshalRecord(surfacingRecord{
		Predictor:            s.Predictor,
		SuccessfulSurfaces:   s.SuccessfulSurfaces,
		MarketsCreated:       s.MarketsCreated,
		SurfacingAccuracyBps: s.SurfacingAccuracyBps,
		TotalProfit:          s.TotalProfit,
		ScoutScore:           s.ScoutScore,
		LastUpdated:          s.LastUpdated,
	})
}

func UnmarshalSurfacingRecord(addr domain.Address, data []byte) (*SurfacingScore, error) {
	var rec surfacingRecord
	if err := unmarshalRecord(data, SurfacingRecordSize, &rec); err != nil {
		return nil, err
	}
	return &SurfacingScore{
		Address:              addr,
		Predictor:            rec.Predictor,
		SuccessfulSurfaces:   rec.SuccessfulSurfaces,
		MarketsCreated:       rec.MarketsCreated,
		SurfacingAccuracyBps: rec.SurfacingAccuracyBps,
		TotalProfit:          rec.TotalProfit,
		ScoutScore:           rec.ScoutScore,
		LastUpdated:          rec.LastUpdated,
	}, nil
}

type tradingDetailsRecord struct {
	Identity        domain.Address
	WinRateBps      uint16
	ProfitFactorBps uint16
	TotalTrades     uint64
	TotalVolume     uint64
	MaxDrawdownBps  uint16
	LastUpdated     int64
}

func (t *TradingScoreDetails) MarshalRecord() []byte {
	return marshalRecord(tradingDetailsRecord{
		Identity:        t.Identity,
		WinRateBps:      t.WinRateBps,
		ProfitFactorBps: t.ProfitFactorBps,
		TotalTrades:     t.TotalTrades,
		TotalVolume:     t.TotalVolume,
		MaxDrawdownBps:  t.MaxDrawdownBps,
		LastUpdated:     t.LastUpdated,
	})
}

func UnmarshalTradingDetailsRecord(addr domain.Address, data []byte) (*TradingScoreDetails, error) {
	var rec tradingDetailsRecord
	if err := unmarshalRecord(data, TradingDetailsRecordSize, &rec); err != nil {
		return nil, err
	}
	return &TradingScoreDetails{
		Address:         addr,
		Identity:        rec.Identity,
		WinRateBps:      rec.WinRateBps,
		ProfitFactorBps: rec.ProfitFactorBps,
		TotalTrades:     rec.TotalTrades,
		TotalVolume:     rec.TotalVolume,
		MaxDrawdownBps:  rec.MaxDrawdownBps,
		LastUpdated:     rec.LastUpdated,
	}, nil
}

type civicDetailsRecord struct {
	Identity              domain.Address
	ProblemsSolved        uint64
	PredictionAccuracyBps uint16
	DirectionsProposed    uint64
	DirectionsWon         uint64
	CurrentStreak         uint16
	CommunityTrust        uint16
	LastUpdated           int64
}

func (c *CivicScoreDetails) MarshalRecord() []byte {
	return marshalRecord(civicDetailsRecord{
		Identity:              c.Identity,
		ProblemsSolved:        c.ProblemsSolved,
		PredictionAccuracyBps: c.PredictionAccuracyBps,
		DirectionsProposed:    c.DirectionsProposed,
		DirectionsWon:         c.DirectionsWon,
		CurrentStreak:         c.CurrentStreak,
		CommunityTrust:        c.CommunityTrust,
		LastUpdated:           c.LastUpdated,
	})
}

func UnmarshalCivicDetailsRecord(addr domain.Address, data []byte) (*CivicScoreDetails, error) {
	var rec civicDetailsRecord
	if err := unmarshalRecord(data, CivicDetailsRecordSize, &rec); err != nil {
		return nil, err
	}
	return &CivicScoreDetails{
		Address:               addr,
		Identity:              rec.Identity,
		ProblemsSolved:        rec.ProblemsSolved,
		PredictionAccuracyBps: rec.PredictionAccuracyBps,
		DirectionsProposed:    rec.DirectionsProposed,
		DirectionsWon:         rec.DirectionsWon,
		CurrentStreak:         rec.CurrentStreak,
		CommunityTrust:        rec.CommunityTrust,
		LastUpdated:           rec.LastUpdated,
	}, nil
}

func marshalRecord(rec any) []byte {
	var buf bytes.Buffer
	// Records hold only fixed-size fields, so encoding cannot fail.
	_ = binary.Write(&buf, binary.LittleEndian, rec)
	return buf.Bytes()
}

func unmarshalRecord(data []byte, want int, out any) error {
	if len(data) != want {
		return dErrors.Newf(dErrors.CodeInternal, "record size %d, want %d", len(data), want)
	}
	return binary.Read(bytes.NewReader(data), binary.LittleEndian, out)
}
