// Package recon implements the stage collectors behind the engine interfaces.
package recon

import (
	"context"
	"fmt"
	"net"

	"github.com/vulnverified/scout/internal/engine"
)

// Resolver implements engine.AddressResolver with the platform resolver.
type Resolver struct{}

// Resolve returns the target unchanged, with zero network calls, when it
// is already an address literal. Otherwise it performs one lookup and
// prefers the first IPv4 address in the answer.
func (r *Resolver) Resolve(ctx context.Context, target string) (string, error) {
	if engine.Classify(target) == engine.AddressLiteral {
		return target, nil
	}

	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, target)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", target, err)
	}
	if len(addrs) == 0 {
		return "", fmt.Errorf("resolving %s: empty answer", target)
	}

	for _, a := range addrs {
		if v4 := a.IP.To4(); v4 != nil {
			return v4.String(), nil
		}
	}
	return addrs[0].IP.String(), nil
}
