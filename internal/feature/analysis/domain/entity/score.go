package entity

// SubScore is the 0-100 score contributed by one indicator. It exists
// only when the source indicator was computable; absent indicators never
// produce a zero-valued SubScore.
type SubScore struct {
	Indicator string  // Chinese indicator name, e.g. 市盈率
	Score     float64 // ∈ [0,100]
	Value     float64 // supporting numeric value the score was derived from
	Detail    string  // short human-readable basis, e.g. "PE=12.40"
}

// CompositeScore is the arithmetic mean of the available sub-scores
// mapped to a recommendation tier. Available is false when zero
// sub-scores could be produced; Score and Tier are then meaningless and
// the report must say "insufficient data" instead of printing a number.
type CompositeScore struct {
	Score     float64
	Tier      string
	Available bool
	SubScores []SubScore
}
