package recon

import "github.com/vulnverified/scout/internal/engine"

// Every collector satisfies its engine stage interface.
var (
	_ engine.AddressResolver = (*Resolver)(nil)
	_ engine.WhoisClient     = (*WhoisCollector)(nil)
	_ engine.DNSCollector    = (*RecordCollector)(nil)
	_ engine.PortScanner     = (*Scanner)(nil)
	_ engine.HeaderFetcher   = (*HeaderFetcher)(nil)
)
