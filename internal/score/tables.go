package score

import "math"

// bracket maps every value up to and including UpTo onto a tier score. Tables
// are ordered ascending and terminated by an UpTo of MaxUint64, so a lookup
// always lands somewhere. Data-driven tables keep every boundary testable.
type bracket struct {
	UpTo  uint64
	Score uint16
}

func lookup(table []bracket, v uint64) uint16 {
	for _, b := range table {
		if v <= b.UpTo {
			return b.Score
		}
	}
	// Unreachable with a well-formed table; the terminator catches all.
	return table[len(table)-1].Score
}

// daoAcceptanceTable log-scales the count of DAOs that accepted a creator.
// Acceptance by the first few collectives moves the needle most.
var daoAcceptanceTable = []bracket{
	{UpTo: 0, Score: 0},
	{UpTo: 1, Score: 4000},
	{UpTo: 2, Score: 5000},
	{UpTo: 5, Score: 6000},
	{UpTo: 10, Score: 7000},
	{UpTo: 20, Score: 8000},
	{UpTo: 30, Score: 9000},
	{UpTo: math.MaxUint64, Score: 10000},
}

var upvoteTable = []bracket{
	{UpTo: 10, Score: 2000},
	{UpTo: 50, Score: 4000},
	{UpTo: 200, Score: 6000},
	{UpTo: 1000, Score: 8000},
	{UpTo: math.MaxUint64, Score: 10000},
}

// marketVolumeTable rewards scouts for sustained surfacing activity.
var marketVolumeTable = []bracket{
	{UpTo: 5, Score: 2000},
	{UpTo: 20, Score: 4000},
	{UpTo: 50, Score: 6000},
	{UpTo: 100, Score: 8000},
	{UpTo: math.MaxUint64, Score: 10000},
}

// profitTable buckets cumulative prediction profit in smallest currency
// units. Break-even or worse sits in the floor bracket.
var profitTable = []bracket{
	{UpTo: 1_000_000_000, Score: 4000},
	{UpTo: 10_000_000_000, Score: 6000},
	{UpTo: 100_000_000_000, Score: 8000},
	{UpTo: math.MaxUint64, Score: 10000},
}

var tradingVolumeTable = []bracket{
	{UpTo: 1_000_000_000, Score: 2000},
	{UpTo: 10_000_000_000, Score: 4000},
	{UpTo: 100_000_000_000, Score: 6000},
	{UpTo: 1_000_000_000_000, Score: 8000},
	{UpTo: math.MaxUint64, Score: 10000},
}

var tradeCountTable = []bracket{
	{UpTo: 10, Score: 2000},
	{UpTo: 50, Score: 4000},
	{UpTo: 200, Score: 6000},
	{UpTo: 1000, Score: 8000},
	{UpTo: math.MaxUint64, Score: 10000},
}

var problemsSolvedTable = []bracket{
	{UpTo: 2, Score: 2000},
	{UpTo: 10, Score: 4000},
	{UpTo: 50, Score: 6000},
	{UpTo: 200, Score: 8000},
	{UpTo: math.MaxUint64, Score: 10000},
}

var streakTable = []bracket{
	{UpTo: 2, Score: 2000},
	{UpTo: 5, Score: 4000},
	{UpTo: 10, Score: 6000},
	{UpTo: 20, Score: 8000},
	{UpTo: math.MaxUint64, Score: 10000},
}

// prestigeTable awards reputation points for an acceptance, keyed by how
// established the accepting DAO is at resolution time.
var prestigeTable = []bracket{
	{UpTo: 10, Score: 100},
	{UpTo: 50, Score: 200},
	{UpTo: 100, Score: 300},
	{UpTo: 150, Score: 400},
	{UpTo: math.MaxUint64, Score: 500},
}
