// Package sym defines canonical symbols for shopplan subsystems.
// These symbols are stable across CLI output, logs, and documentation,
// and are attached to log lines as a structured "symbol" field so logs
// stay queryable by subsystem.
package sym

// Engine phases.
const (
	Plan   = "⧖" // scheduling computation (the batch run itself)
	Slot   = "▥" // segment/slot placement
	Limit  = "⊸" // limit-dependency resolution
	Risk   = "⚑" // completion-risk classification
	Worker = "⌬" // employee matching and reservations
)

// Infrastructure.
const (
	DB  = "⊔" // database/storage layer
	Cal = "✦" // calendar and working-hours resolution
	AM  = "≡" // configuration and system settings
)

// Lookup maps a symbol glyph back to its short name. Used by CLI help
// and log tooling; unknown glyphs return the empty string.
func Lookup(glyph string) string {
	switch glyph {
	case Plan:
		return "plan"
	case Slot:
		return "slot"
	case Limit:
		return "limit"
	case Risk:
		return "risk"
	case Worker:
		return "worker"
	case DB:
		return "db"
	case Cal:
		return "cal"
	case AM:
		return "am"
	}
	return ""
}
