package logging

// Standardized attribute keys shared across packages so log lines stay
// greppable whichever component emitted them.
const (
	FieldComponent  = "component"
	FieldRunID      = "run_id"
	FieldLine       = "line"
	FieldFragments  = "fragments"
	FieldReason     = "reason"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldQuarantine = "quarantine"
)
