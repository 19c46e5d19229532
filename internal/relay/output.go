package relay

// outputEnabled is the single combinational rule mapping machine state to
// the physical output. The indicate-off sub-state always wins so the
// "programming accepted" blink is visible regardless of power state.
func outputEnabled(power PowerState, prog progState) bool {
	if prog == progIndicateOff {
		return false
	}
	switch power {
	case PowerOutputOn, PowerStayOn, PowerTimerWait:
		return true
	}
	return false
}
