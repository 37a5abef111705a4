// internal/service/scale.go
package service

import (
    appErrors "github.com/avaliamed/surveypulse-backend/internal/errors"
)

// Tier is the NPS trisection of a 0-10 score.
type Tier string

const (
    TierDetractor Tier = "detractor"
    TierNeutral   Tier = "neutral"
    TierPromoter  Tier = "promoter"
)

// Classify maps a 0-10 score to its tier. Both the flow logic (conditional
// follow-up questions) and the reporting rollup go through here so the two
// can never disagree on the cut points.
func Classify(score int) (Tier, error) {
    if score < 0 || score > 10 {
        return "", appErrors.NewValidation("nps_score", "must be between 0 and 10")
    }
    switch {
    case score <= 6:
        return TierDetractor, nil
    case score <= 8:
        return TierNeutral, nil
    default:
        return TierPromoter, nil
    }
}

// RevealPositiveFollowUp reports whether the "what contributed most to your
// satisfaction" question should be shown for the given score.
func RevealPositiveFollowUp(score int) bool {
    tier, err := Classify(score)
    if err != nil {
        return false
    }
    return tier == TierPromoter
}

// TierCounts folds per-score response counts into per-tier totals.
func TierCounts(scoreCounts map[int]int) map[Tier]int {
    counts := map[Tier]int{
        TierDetractor: 0,
        TierNeutral:   0,
        TierPromoter:  0,
    }
    for score, n := range scoreCounts {
        tier, err := Classify(score)
        if err != nil {
            continue
        }
        counts[tier] += n
    }
    return counts
}

// NPSFromCounts computes the classic rollup: %promoters - %detractors,
// rounded toward zero. Returns 0 for an empty campaign.
func NPSFromCounts(counts map[Tier]int) int {
    total := counts[TierDetractor] + counts[TierNeutral] + counts[TierPromoter]
    if total == 0 {
        return 0
    }
    return (counts[TierPromoter]*100 - counts[TierDetractor]*100) / total
}
