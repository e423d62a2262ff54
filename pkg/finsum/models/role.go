package models

// Role is the semantic tag of a ledger row, derived from its column-A text.
type Role string

const (
	RoleGroupHeader Role = "group_header"
	RoleSubItem     Role = "sub_item"
	RoleSubtotal    Role = "subtotal"
	RoleTotal       Role = "total"
	RoleBlank       Role = "blank"
	RoleOther       Role = "other"
)

// Anomaly marks column-A text that is close to, but not exactly, a sentinel or prefix.
type Anomaly string

const (
	AnomalyNone             Anomaly = ""
	AnomalySubtotalNearMiss Anomaly = "subtotal_near_miss"
	AnomalyTotalNearMiss    Anomaly = "total_near_miss"
	AnomalyDashWithoutSpace Anomaly = "dash_without_space"
)

// Sentinels and prefixes of the row grammar.
const (
	TotalSentinel    = "TOTAL:"
	SubtotalSentinel = "Subtotal:"
	SubItemPrefix    = "- "
)
