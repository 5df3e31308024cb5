package service

import (
	"github.com/shopspring/decimal"

	"github.com/noah-isme/attendance-report/internal/models"
	appErrors "github.com/noah-isme/attendance-report/pkg/errors"
)

// DefaultProjectionCap bounds the needed-to-reach search.
const DefaultProjectionCap = 100

var hundred = decimal.NewFromInt(100)

// ThresholdProjector answers attend/skip questions over aggregated counts. All comparisons are exact.
type ThresholdProjector struct {
	Cap int
}

// NewThresholdProjector returns a projector with the given search cap; non-positive values use the default.
func NewThresholdProjector(searchCap int) *ThresholdProjector {
	if searchCap <= 0 {
		searchCap = DefaultProjectionCap
	}
	return &ThresholdProjector{Cap: searchCap}
}

// meets reports whether present/total*100 >= target without dividing.
func meets(present, total int, target decimal.Decimal) bool {
	if total <= 0 {
		return !target.IsPositive()
	}
	lhs := decimal.NewFromInt(int64(present)).Mul(hundred)
	rhs := target.Mul(decimal.NewFromInt(int64(total)))
	return lhs.GreaterThanOrEqual(rhs)
}

// NeededToReach returns the smallest number of consecutive attended lectures after which the percentage
// reaches target. achievable is false when no k up to the cap satisfies it.
func (p *ThresholdProjector) NeededToReach(present, total int, target float64) (k int, achievable bool) {
	t := decimal.NewFromFloat(target)
	searchCap := p.searchCap()
	for k = 0; k <= searchCap; k++ {
		if meets(present+k, total+k, t) {
			return k, true
		}
	}
	return searchCap, false
}

// MaxSkippable returns how many of the remaining planned lectures may be missed in a row while the
// percentage after each miss stays at or above target.
func (p *ThresholdProjector) MaxSkippable(present, total int, target float64, totalPlanned int) (int, error) {
	if totalPlanned < total {
		return 0, appErrors.Clone(appErrors.ErrValidation, "total planned lectures cannot be less than lectures held")
	}
	t := decimal.NewFromFloat(target)
	skippable := 0
	for held := total; held < totalPlanned; held++ {
		if !meets(present, held+1, t) {
			break
		}
		skippable++
	}
	return skippable, nil
}

// Project combines the current standing with both projections. A zero totalPlanned skips the
// plan-dependent answers.
func (p *ThresholdProjector) Project(present, total int, target float64, totalPlanned int) (models.Projection, error) {
	if present < 0 || total < 0 || present > total {
		return models.Projection{}, appErrors.Clone(appErrors.ErrValidation, "present lectures must be between 0 and lectures held")
	}

	proj := models.Projection{
		Present:        present,
		Total:          total,
		TargetPct:      target,
		Percentage:     models.Percentage(present, total),
		InGoodStanding: meets(present, total, decimal.NewFromFloat(target)),
	}
	proj.NeededToReach, proj.Achievable = p.NeededToReach(present, total, target)

	if totalPlanned == 0 {
		return proj, nil
	}
	skippable, err := p.MaxSkippable(present, total, target, totalPlanned)
	if err != nil {
		return models.Projection{}, err
	}
	proj.TotalPlanned = totalPlanned
	proj.Remaining = totalPlanned - total
	proj.Skippable = skippable
	proj.ReachableWithinPlan = proj.Achievable && proj.NeededToReach <= proj.Remaining
	if proj.ReachableWithinPlan {
		proj.RemainingAfter = proj.Remaining - proj.NeededToReach
	}
	return proj, nil
}

func (p *ThresholdProjector) searchCap() int {
	if p == nil || p.Cap <= 0 {
		return DefaultProjectionCap
	}
	return p.Cap
}
