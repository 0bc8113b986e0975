package models

type Decision int

const (
	DecisionAllow Decision = iota
	DecisionDenyUnauthenticated
	DecisionDenyForbidden
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionDenyUnauthenticated:
		return "deny_unauthenticated"
	case DecisionDenyForbidden:
		return "deny_forbidden"
	default:
		return "unknown"
	}
}

// RolePolicy is the declarative table consulted by the authorization gate.
type RolePolicy struct {
	Resources map[string]ResourcePolicy `yaml:"resources"`
}

type ResourcePolicy struct {
	// Actions maps an action name to the role names allowed to run it.
	Actions map[string][]string `yaml:"actions"`
	// Unauthenticated lists actions reachable without a session.
	Unauthenticated []string `yaml:"unauthenticated"`
}
