package engine

import "regexp"

// TargetKind classifies the run input.
type TargetKind int

const (
	Hostname TargetKind = iota
	AddressLiteral
)

// Deliberately permissive: four 1-3 digit groups, no range validation,
// so "999.999.999.999" still classifies as an address literal.
var ipv4Pattern = regexp.MustCompile(`^(\d{1,3}\.){3}\d{1,3}$`)

// Classify decides whether target is an IPv4 literal or a hostname
// requiring resolution. No side effects, no failure mode.
func Classify(target string) TargetKind {
	if ipv4Pattern.MatchString(target) {
		return AddressLiteral
	}
	return Hostname
}
