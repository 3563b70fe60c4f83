// Package score derives reputation numbers from accumulated counters. All
// functions are pure: callers load records, pass the relevant fields in, and
// persist the results. Scores and accuracies are basis points (0-10000).
package score

// MaxScore is the ceiling for every dimension, composite, and component
// score.
const MaxScore = 10000

// Composite dimension weights, summing to 100. The creator dimension is the
// only one governed by peer collectives rather than a single oracle, and it
// carries the second-largest weight.
const (
	weightTrading   = 30
	weightCivic     = 20
	weightDeveloper = 15
	weightInfra     = 10
	weightCreator   = 25
)

// Composite folds the five dimension scores into one weighted number.
func Composite(trading, civic, developer, infra, creator uint16) uint16 {
	weighted := uint32(trading)*weightTrading +
		uint32(civic)*weightCivic +
		uint32(developer)*weightDeveloper +
		uint32(infra)*weightInfra +
		uint32(creator)*weightCreator
	return uint16(weighted / 100)
}

// Tier buckets a composite score into five bands of 2000.
func Tier(composite uint16) uint8 {
	tier := composite/2000 + 1
	if tier > 5 {
		tier = 5
	}
	return uint8(tier)
}

// CreatorInputs are the counters feeding the creator dimension score.
type CreatorInputs struct {
	DAOsAccepted          uint16
	NominationAccuracyBps uint16
	PredictionAccuracyBps uint16
	PeerUpvotes           uint64
}

// Creator computes the creator dimension score.
//
// Weighting follows the protocol's hierarchy of signals: acceptance by
// quality peers (40%), judgment quality as a nominator (25%), prediction
// market accuracy (20%), peer upvotes (15%).
func Creator(in CreatorInputs) uint16 {
	dao := uint32(lookup(daoAcceptanceTable, uint64(in.DAOsAccepted))) * 40 / 100
	judgment := uint32(in.NominationAccuracyBps) * 25 / 100
	prediction := uint32(in.PredictionAccuracyBps) * 20 / 100
	upvotes := uint32(lookup(upvoteTable, in.PeerUpvotes)) * 15 / 100
	return clamp(dao + judgment + prediction + upvotes)
}

// ScoutInputs are the counters feeding the surfacing (talent scout) score.
type ScoutInputs struct {
	SurfacingAccuracyBps uint16
	MarketsCreated       uint32
	TotalProfit          int64
}

// Scout computes the surfacing score for market creators: accuracy 50%,
// volume 30%, profitability 20%. A scout with no markets has no score.
func Scout(in ScoutInputs) uint16 {
	if in.MarketsCreated == 0 {
		return 0
	}
	accuracy := uint32(in.SurfacingAccuracyBps) * 50 / 100
	volume := uint32(lookup(marketVolumeTable, uint64(in.MarketsCreated))) * 30 / 100

	profitTier := uint32(2000)
	if in.TotalProfit > 0 {
		profitTier = uint32(lookup(profitTable, uint64(in.TotalProfit)))
	}
	profit := profitTier * 20 / 100

	return clamp(accuracy + volume + profit)
}

// TradingInputs are the counters feeding the trading dimension breakdown.
type TradingInputs struct {
	WinRateBps      uint16
	ProfitFactorBps uint16
	TotalTrades     uint64
	TotalVolume     uint64
	MaxDrawdownBps  uint16
}

// Trading computes the trading dimension score from its detail record: win
// rate 30%, profit factor 25%, volume 20%, drawdown 15%, consistency 10%.
func Trading(in TradingInputs) uint16 {
	pf := in.ProfitFactorBps
	if pf > 20000 {
		pf = 20000
	}
	drawdown := in.MaxDrawdownBps
	if drawdown > MaxScore {
		drawdown = MaxScore
	}

	winRate := uint32(in.WinRateBps) * 30 / 100
	profitFactor := uint32(pf/2) * 25 / 100
	volume := uint32(lookup(tradingVolumeTable, in.TotalVolume)) * 20 / 100
	drawdownComp := uint32(MaxScore-drawdown) * 15 / 100
	consistency := uint32(lookup(tradeCountTable, in.TotalTrades)) * 10 / 100

	return clamp(winRate + profitFactor + volume + drawdownComp + consistency)
}

// CivicInputs are the counters feeding the civic dimension breakdown.
type CivicInputs struct {
	PredictionAccuracyBps uint16
	ProblemsSolved        uint64
	CommunityTrust        uint16
	CurrentStreak         uint16
}

// Civic computes the civic dimension score: accuracy 40%, problems solved
// 25%, community trust 25%, streak 10%.
func Civic(in CivicInputs) uint16 {
	accuracy := uint32(in.PredictionAccuracyBps) * 40 / 100
	solved := uint32(lookup(problemsSolvedTable, in.ProblemsSolved)) * 25 / 100
	trust := uint32(in.CommunityTrust) * 25 / 100
	streak := uint32(lookup(streakTable, uint64(in.CurrentStreak))) * 10 / 100
	return clamp(accuracy + solved + trust + streak)
}

// PrestigeBonus is the reputation point award for being accepted by a DAO of
// the given member count.
func PrestigeBonus(memberCount uint16) uint32 {
	return uint32(lookup(prestigeTable, uint64(memberCount)))
}

// AccuracyBps computes correct/(correct+incorrect) in basis points,
// returning 0 when nothing has been counted yet.
func AccuracyBps(correct, incorrect uint32) uint16 {
	total := uint64(correct) + uint64(incorrect)
	if total == 0 {
		return 0
	}
	return uint16(uint64(correct) * MaxScore / total)
}

func clamp(v uint32) uint16 {
	if v > MaxScore {
		return MaxScore
	}
	return uint16(v)
}
