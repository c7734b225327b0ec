package recon

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/vulnverified/scout/internal/engine"
	"github.com/vulnverified/scout/pkg/ports"
)

// Dialer establishes a single probe connection. *net.Dialer satisfies it;
// tests inject doubles to control completion order and observe concurrency.
type Dialer interface {
	DialContext(ctx context.Context, network, addr string) (net.Conn, error)
}

// Scanner implements engine.PortScanner with a bounded worker pool.
type Scanner struct {
	// Dialer overrides the per-worker dialer. When nil, each worker uses
	// a net.Dialer carrying the scan's connect timeout.
	Dialer Dialer
}

// Scan probes every port on address with at most concurrency attempts in
// flight. Each attempt is a single TCP connect under timeout; any dial
// error is a terminal closed classification for that port, independent of
// the others. Results come back sorted ascending by port number so
// completion order never leaks into the report.
func (s *Scanner) Scan(ctx context.Context, address string, probePorts []int, concurrency int, timeout time.Duration) ([]engine.PortResult, error) {
	if address == "" {
		return nil, fmt.Errorf("no address to probe")
	}
	if concurrency < 1 {
		concurrency = 1
	}

	work := make(chan int, len(probePorts))
	for _, p := range probePorts {
		work <- p
	}
	close(work)

	var (
		mu      sync.Mutex
		results []engine.PortResult
	)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dialer := s.Dialer
			if dialer == nil {
				dialer = &net.Dialer{Timeout: timeout}
			}

			for port := range work {
				select {
				case <-ctx.Done():
					return
				default:
				}

				result := engine.PortResult{Port: port}
				addr := net.JoinHostPort(address, strconv.Itoa(port))
				conn, err := dialer.DialContext(ctx, "tcp", addr)
				if err == nil {
					conn.Close()
					result.Open = true
					result.Service = ports.ServiceName(port)
				}

				mu.Lock()
				results = append(results, result)
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Port < results[j].Port })
	return results, nil
}
