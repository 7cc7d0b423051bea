package audithook

// Action constants for audit events.
const (
	// Item actions
	ActionItemAdded   = "item.added"
	ActionItemRemoved = "item.removed"

	// Ledger actions
	ActionLedgerLoaded  = "ledger.loaded"
	ActionLedgerCleared = "ledger.cleared"

	// Failure actions
	ActionValidationFailed = "validation.failed"
	ActionStateCorrupt     = "state.corrupt"
	ActionPersistFailed    = "persist.failed"
)

// Resource constants for audit events.
const (
	ResourceItem   = "item"
	ResourceLedger = "ledger"
	ResourceSlot   = "slot"
)

// Category constants for audit events.
const (
	CategoryCosting = "costing"
	CategoryInput   = "input"
	CategoryStorage = "storage"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
