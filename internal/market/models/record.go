package models

import (
	"bytes"
	"encoding/binary"

	"sovereign/pkg/domain"
	dErrors "sovereign/pkg/domain-errors"
)

// Persisted record layouts, little-endian, fixed width.

const (
	MarketRecordSize   = 8 + 32 + 32 + 32 + 32 + 2 + 8 + 8 + 4 + 8 + 2 + 8 + 8 + 1 + 8 + 8 + 1 + 1 + 1 + 32 + 1 + 8 + 2 + 8
	PositionRecordSize = 32 + 32 + 32 + 8 + 8 + 8 + 8 + 8 + 1 + 8
	FactoryRecordSize  = 32 + 8 + 2 + 2 + 8 + 8 + 2 + 8 + 8 + 8
)

type marketRecord struct {
	ID                   uint64
	DAO                  domain.Address
	CreatorIdentity      domain.Address
	CreatorWallet        domain.Address
	MarketCreator        domain.Address
	CreatorBonusBps      uint16
	YesPool              uint64
	NoPool               uint64
	PredictorCount       uint32
	InitialLiquidity     uint64
	FeeBps               uint16
	AccumulatedFees      uint64
	CreatedAt            int64
	HasTradingEndsAt     uint8
	TradingEndsAt        int64
	ExpiresAt            int64
	Status               uint8
	Outcome              uint8
	HasResolvedBy        uint8
	ResolvedByNomination domain.Address
	HasResolvedAt        uint8
	ResolvedAt           int64
	BurnBps              uint16
	AmountBurned         uint64
}

func (m *Market) MarshalRecord() []byte {
	return marshalRecord(marketRecord{
		ID:                   m.ID,
		DAO:                  m.DAO,
		CreatorIdentity:      m.CreatorIdentity,
		CreatorWallet:        m.CreatorWallet,
		MarketCreator:        m.MarketCreator,
		CreatorBonusBps:      m.CreatorBonusBps,
		YesPool:              m.YesPool,
		NoPool:               m.NoPool,
		PredictorCount:       m.PredictorCount,
		InitialLiquidity:     m.InitialLiquidity,
		FeeBps:               m.FeeBps,
		AccumulatedFees:      m.AccumulatedFees,
		CreatedAt:            m.CreatedAt,
		HasTradingEndsAt:     boolByte(m.HasTradingEndsAt),
		TradingEndsAt:        m.TradingEndsAt,
		ExpiresAt:            m.ExpiresAt,
		Status:               uint8(m.Status),
		Outcome:              uint8(m.Outcome),
		HasResolvedBy:        boolByte(m.HasResolvedBy),
		ResolvedByNomination: m.ResolvedByNomination,
		HasResolvedAt:        boolByte(m.HasResolvedAt),
		ResolvedAt:           m.ResolvedAt,
		BurnBps:              m.BurnBps,
		AmountBurned:         m.AmountBurned,
	})
}

func UnmarshalMarketRecord(addr domain.Address, data []byte) (*Market, error) {
	var rec marketRecord
	if err := unmarshalRecord(data, MarketRecordSize, &rec); err != nil {
		return nil, err
	}
	return &Market{
		Address:              addr,
		ID:                   rec.ID,
		DAO:                  rec.DAO,
		CreatorIdentity:      rec.CreatorIdentity,
		CreatorWallet:        rec.CreatorWallet,
		MarketCreator:        rec.MarketCreator,
		CreatorBonusBps:      rec.CreatorBonusBps,
		YesPool:              rec.YesPool,
		NoPool:               rec.NoPool,
		PredictorCount:       rec.PredictorCount,
		InitialLiquidity:     rec.InitialLiquidity,
		FeeBps:               rec.FeeBps,
		AccumulatedFees:      rec.AccumulatedFees,
		CreatedAt:            rec.CreatedAt,
		TradingEndsAt:        rec.TradingEndsAt,
		HasTradingEndsAt:     rec.HasTradingEndsAt != 0,
		ExpiresAt:            rec.ExpiresAt,
		Status:               Status(rec.Status),
		Outcome:              Outcome(rec.Outcome),
		ResolvedByNomination: rec.ResolvedByNomination,
		HasResolvedBy:        rec.HasResolvedBy != 0,
		ResolvedAt:           rec.ResolvedAt,
		HasResolvedAt:        rec.HasResolvedAt != 0,
		BurnBps:              rec.BurnBps,
		AmountBurned:         rec.AmountBurned,
	}, nil
}

type positionRecord struct {
	Market            domain.Address
	Predictor         domain.Address
	PredictorIdentity domain.Address
	YesTokens         uint64
	NoTokens          uint64
	TotalStaked       uint64
	OpenedAt          int64
	LastModified      int64
	Claimed           uint8
	Payout            uint64
}

func (p *Position) MarshalRecord() []byte {
	return marshalRecord(positionRecord{
		Market:            p.Market,
		Predictor:         p.Predictor,
		PredictorIdentity: p.PredictorIdentity,
		YesTokens:         p.YesTokens,
		NoTokens:          p.NoTokens,
		TotalStaked:       p.TotalStaked,
		OpenedAt:          p.OpenedAt,
		LastModified:      p.LastModified,
		Claimed:           boolByte(p.Claimed),
		Payout:            p.Payout,
	})
}

func UnmarshalPositionRecord(addr domain.Address, data []byte) (*Position, error) {
	var rec positionRecord
	if err := unmarshalRecord(data, PositionRecordSize, &rec); err != nil {
		return nil, err
	}
	return &Position{
		Address:           addr,
		Market:            rec.Market,
		Predictor:         rec.Predictor,
		PredictorIdentity: rec.PredictorIdentity,
		YesTokens:         rec.YesTokens,
		NoTokens:          rec.NoTokens,
		TotalStaked:       rec.TotalStaked,
		OpenedAt:          rec.OpenedAt,
		LastModified:      rec.LastModified,
		Claimed:           rec.Claimed != 0,
		Payout:            rec.Payout,
	}, nil
}

type factoryRecord struct {
	Authority           domain.Address
	MarketCount         uint64
	DefaultFeeBps       uint16
	DefaultBurnBps      uint16
	MinInitialLiquidity uint64
	DefaultExpiryPeriod int64
	CreatorBonusBps     uint16
	TotalMarkets        uint64
	TotalVolume         uint64
	TotalBurned         uint64
}

func (f *Factory) MarshalRecord() []byte {
	return marshalRecord(factoryRecord{
		Authority:           f.Authority,
		MarketCount:         f.MarketCount,
		DefaultFeeBps:       f.DefaultFeeBps,
		DefaultBurnBps:      f.DefaultBurnBps,
		MinInitialLiquidity: f.MinInitialLiquidity,
		DefaultExpiryPeriod: f.DefaultExpiryPeriod,
		CreatorBonusBps:     f.CreatorBonusBps,
		TotalMarkets:        f.TotalMarkets,
		TotalVolume:         f.TotalVolume,
		TotalBurned:         f.TotalBurned,
	})
}

func UnmarshalFactoryRecord(addr domain.Address, data []byte) (*Factory, error) {
	var rec factoryRecord
	if err := unmarshalRecord(data, FactoryRecordSize, &rec); err != nil {
		return nil, err
	}
	return &Factory{
		Address:             addr,
		Authority:           rec.Authority,
		MarketCount:         rec.MarketCount,
		DefaultFeeBps:       rec.DefaultFeeBps,
		DefaultBurnBps:      rec.DefaultBurnBps,
		MinInitialLiquidity: rec.MinInitialLiquidity,
		DefaultExpiryPeriod: rec.DefaultExpiryPeriod,
		CreatorBonusBps:     rec.CreatorBonusBps,
		TotalMarkets:        rec.TotalMarkets,
		TotalVolume:         rec.TotalVolume,
		TotalBurned:         rec.TotalBurned,
	}, nil
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
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
