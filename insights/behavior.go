package insights

// Behaviour thresholds.
const (
	PanicSellLimit    = 2
	OvertradeLimit    = 4
	MinSIPConsistency = 75.0
)

const (
	MsgPanicSelling      = "You tend to withdraw during market dips. Long-term investing may work better."
	MsgOvertrading       = "High trade frequency indicates overtrading risk and may increase behavioral errors."
	MsgLowSIPConsistency = "SIP consistency is low. Missing installments affects compounding potential."
	MsgDisciplined       = "Behavior metrics look disciplined. Continue goal-oriented investing."
)

type BehaviorInput struct {
	PanicSells     int     `json:"panic_sells"`
	Overtrades     int     `json:"overtrades"`
	SIPConsistency float64 `json:"sip_consistency"`
}

var behaviorRules = NewEvaluator(MsgDisciplined,
	Threshold("panic-selling", MsgPanicSelling, func(in BehaviorInput) bool {
		return in.PanicSells >= PanicSellLimit
	}),
	Threshold("overtrading", MsgOvertrading, func(in BehaviorInput) bool {
		return in.Overtrades >= OvertradeLimit
	}),
	Threshold("sip-consistency", MsgLowSIPConsistency, func(in BehaviorInput) bool {
		return in.SIPConsistency < MinSIPConsistency
	}),
)

// Behavior evaluates the investing-behaviour rules.
func Behavior(in BehaviorInput) []string {
	return behaviorRules.Evaluate(in)
}
