package domain

import "encoding/binary"

// Seed tags keep each record family in its own derivation namespace. They
// mirror the persisted record layout: changing one is a breaking change for
// every client that derives addresses locally.
const (
	seedIdentity     = "identity"
	seedScoreDetails = "creator_score"
	seedSurfacing    = "surfacing_score"
	seedDAO          = "creator_dao"
	seedMembership   = "dao_membership"
	seedNomination   = "nomination"
	seedVoteRecord   = "vote_record"
	seedMarket       = "admission_market"
	seedPosition     = "market_position"
	seedTrading      = "trading_score"
	seedCivic        = "civic_score"
	seedDAOCounter   = "dao_counter"
	seedFactory      = "market_factory"
)

func u64seed(v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return b[:]
}

// IdentityAddress derives the identity record address for a wallet.
func IdentityAddress(owner Address) Address {
	return Derive([]byte(seedIdentity), owner[:])
}

// CreatorScoreAddress derives the creator score details record for an identity.
func CreatorScoreAddress(identity Address) Address {
	return Derive([]byte(seedScoreDetails), identity[:])
}

// SurfacingScoreAddress derives the surfacing score record for a predictor.
func SurfacingScoreAddress(predictor Address) Address {
	return Derive([]byte(seedSurfacing), predictor[:])
}

// DAOAddress derives a DAO record address from its founder and creation nonce.
func DAOAddress(founder Address, nonce uint64) Address {
	return Derive([]byte(seedDAO), founder[:], u64seed(nonce))
}

// MembershipAddress derives the membership record for a wallet in a DAO.
func MembershipAddress(dao, memberWallet Address) Address {
	return Derive([]byte(seedMembership), dao[:], memberWallet[:])
}

// NominationAddress derives a nomination record from its DAO and nonce.
func NominationAddress(dao Address, nonce uint64) Address {
	return Derive([]byte(seedNomination), dao[:], u64seed(nonce))
}

// VoteRecordAddress derives the vote record for a voter on a nomination.
// Its existence is what enforces at-most-once voting.
func VoteRecordAddress(nomination, voter Address) Address {
	return Derive([]byte(seedVoteRecord), nomination[:], voter[:])
}

// MarketAddress derives the admission market for a (dao, creator identity)
// pair. One market per pair.
func MarketAddress(dao, creatorIdentity Address) Address {
	return Derive([]byte(seedMarket), dao[:], creatorIdentity[:])
}

// PositionAddress derives a predictor's position record in a market.
func PositionAddress(market, predictor Address) Address {
	return Derive([]byte(seedPosition), market[:], predictor[:])
}

// TradingScoreAddress derives the trading detail record for an identity.
func TradingScoreAddress(identity Address) Address {
	return Derive([]byte(seedTrading), identity[:])
}

// CivicScoreAddress derives the civic detail record for an identity.
func CivicScoreAddress(identity Address) Address {
	return Derive([]byte(seedCivic), identity[:])
}

// DAOCounterAddress derives the singleton counter record that hands out DAO
// creation nonces.
func DAOCounterAddress() Address {
	return Derive([]byte(seedDAOCounter))
}

// MarketFactoryAddress derives the singleton market factory record.
func MarketFactoryAddress() Address {
	return Derive([]byte(seedFactory))
}
