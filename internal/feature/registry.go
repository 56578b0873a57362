package feature

// Flag holds the feature flags of the countdown command, checked with
// `feature.Flag.Enabled(feature.EagerRangeValidation)`.
var Flag = New()

const (
	EagerRangeValidation FlagName = "eager-range-validation"
	StopOnBoundaryTick   FlagName = "stop-on-boundary-tick"
)

func init() {
	Flag.SetFlags(map[FlagName]FlagDesc{
		EagerRangeValidation: {Type: Alpha, Description: "reject a start/end pair that does not fit the direction before the timer starts, instead of halting on the first tick"},
		StopOnBoundaryTick:   {Type: Beta, Description: "stop in the same tick that reaches the end value, when disabled the timer stops one interval later"},
	})
}
