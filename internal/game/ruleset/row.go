package ruleset

// RowRole is the battlefield lane a card fights from.
type RowRole string

// Row roles in canonical order.
const (
	Front  RowRole = "FRONT"
	Middle RowRole = "MIDDLE"
	Back   RowRole = "BACK"
)

// AnyRow is the wildcard an ability uses to apply to every row.
const AnyRow RowRole = "ANY"

// RowRoles lists the row roles in canonical order.
var RowRoles = []RowRole{Front, Middle, Back}

// Order returns r's canonical index, or len(RowRoles) for an unknown role.
func (r RowRole) Order() int {
	for i, x := range RowRoles {
		if x == r {
			return i
		}
	}
	return len(RowRoles)
}

// Valid reports whether r is FRONT, MIDDLE or BACK.
func (r RowRole) Valid() bool {
	return r.Order() < len(RowRoles)
}

// BuildPhaseChance is the base probability that a card in r carries a
// build-phase ability.
func (r RowRole) BuildPhaseChance() float64 {
	switch r {
	case Front:
		return 0.25
	case Middle:
		return 0.55
	case Back:
		return 0.72
	}
	return 0.5
}

// DefaultRowRoleWeights are the target row shares for every faction.
func DefaultRowRoleWeights() map[RowRole]float64 {
	return map[RowRole]float64{Front: 0.35, Middle: 0.45, Back: 0.2}
}
