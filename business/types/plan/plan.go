// Package plan represents the billing plan type in the system.
package plan

import "fmt"

// The set of plans that can be assigned to a tenant. Trial is the default
// applied to freshly registered tenants.
var (
	Trial      = newPlan("TRIAL")
	Standard   = newPlan("STANDARD")
	Enterprise = newPlan("ENTERPRISE")
)

// =============================================================================

// Set of known plans.
var plans = make(map[string]Plan)

// Plan represents a billing plan in the system.
type Plan struct {
	value string
}

func newPlan(plan string) Plan {
	p := Plan{plan}
	plans[plan] = p
	return p
}

// String returns the name of the plan.
func (p Plan) String() string {
	return p.value
}

// Equal provides support for the go-cmp package and testing.
func (p Plan) Equal(p2 Plan) bool {
	return p.value == p2.value
}

// MarshalText provides support for logging and any marshal needs.
func (p Plan) MarshalText() ([]byte, error) {
	return []byte(p.value), nil
}

// =============================================================================

// Parse parses the string value and returns a plan if one exists.
func Parse(value string) (Plan, error) {
	plan, exists := plans[value]
	if !exists {
		return Plan{}, fmt.Errorf("invalid plan %q", value)
	}

	return plan, nil
}

// MustParse parses the string value and returns a plan if one exists. If
// an error occurs the function panics.
func MustParse(value string) Plan {
	plan, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return plan
}
