package league

// Rule identifies a step of the tie-break cascade.
type Rule int

const (
	RuleNone Rule = iota
	RuleHeadToHead
	RuleRunDifferential
	RuleFewestRunsAgainst
	RuleMostRunsScored
	// RuleManual marks a tie no rule could separate.
	RuleManual
)

var allRules = []Rule{
	RuleHeadToHead,
	RuleRunDifferential,
	RuleFewestRunsAgainst,
	RuleMostRunsScored,
	RuleManual,
}

func (r Rule) String() string {
	switch r {
	case RuleHeadToHead:
		return "head_to_head"
	case RuleRunDifferential:
		return "run_differential"
	case RuleFewestRunsAgainst:
		return "fewest_runs_against"
	case RuleMostRunsScored:
		return "most_runs_scored"
	case RuleManual:
		return "manual"
	default:
		return "none"
	}
}

// Symbol is the footnote marker printed next to a tie-broken row.
func (r Rule) Symbol() string {
	switch r {
	case RuleHeadToHead:
		return "*"
	case RuleRunDifferential:
		return "**"
	case RuleFewestRunsAgainst:
		return "***"
	case RuleMostRunsScored:
		return "****"
	case RuleManual:
		return "†"
	default:
		return ""
	}
}

// Reason is the legend text for the rule's symbol.
func (r Rule) Reason() string {
	switch r {
	case RuleHeadToHead:
		return "Head-to-head record"
	case RuleRunDifferential:
		return "Run differential"
	case RuleFewestRunsAgainst:
		return "Fewest runs against"
	case RuleMostRunsScored:
		return "Most runs scored"
	case RuleManual:
		return "Requires manual resolution"
	default:
		return ""
	}
}
