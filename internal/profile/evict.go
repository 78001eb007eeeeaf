package profile

import (
	"slices"
)

// Retention limits applied when the store nears its ceiling.
const (
	KeepDiagnoses = 10
	KeepRewards   = 20
)

// trim drops all but the newest KeepDiagnoses diagnoses and KeepRewards
// rewards. Collections already within their limit are left untouched,
// including their order. It reports whether anything was dropped.
func trim(ud *UserData) bool {
	trimmed := false
	if len(ud.CompletedDiagnoses) > KeepDiagnoses {
		slices.SortStableFunc(ud.CompletedDiagnoses, func(a, b Diagnosis) int {
			return b.CompletedAt.Compare(a.CompletedAt)
		})
		ud.CompletedDiagnoses = slices.Clip(ud.CompletedDiagnoses[:KeepDiagnoses])
		trimmed = true
	}
	if len(ud.UnlockedRewards) > KeepRewards {
		slices.SortStableFunc(ud.UnlockedRewards, func(a, b Reward) int {
			return b.UnlockedAt.Compare(a.UnlockedAt)
		})
		ud.UnlockedRewards = slices.Clip(ud.UnlockedRewards[:KeepRewards])
		trimmed = true
	}
	return trimmed
}
