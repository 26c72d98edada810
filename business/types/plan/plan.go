// Package plan represents the billing plan type in the system.
package plan

import "fmt"

// The set of plans that can be subscribed to.
var (
	Free     = newPlan("free")
	Pro      = newPlan("pro")
	Business = newPlan("business")
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

// IsZero reports whether the plan carries no value.
func (p Plan) IsZero() bool {
	return p.value == ""
}

// =============================================================================

// Limits represents the capacity a plan buys.
type Limits struct {
	Users     int
	Campaigns int
	Planning  int
}

var limits = map[Plan]Limits{
	Free:     {Users: 3, Campaigns: 3, Planning: 1},
	Pro:      {Users: 10, Campaigns: 50, Planning: 5},
	Business: {Users: 50, Campaigns: 500, Planning: 20},
}

// LimitsFor returns the capacity for the plan.
func LimitsFor(p Plan) Limits {
	return limits[p]
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
