package cmd

// Verdict is what a gate or a chained event handler returns to say whether
// processing should go on.
type Verdict int

const (
	Continue Verdict = iota
	Stop
)

func (v Verdict) String() string {
	if v == Stop {
		return "stop"
	}
	return "continue"
}
