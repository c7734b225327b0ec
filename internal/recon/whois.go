package recon

import (
	"context"
	"fmt"
	"strings"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"

	"github.com/vulnverified/scout/internal/engine"
)

// WhoisCollector implements engine.WhoisClient.
type WhoisCollector struct {
	// Query overrides the raw WHOIS fetch; tests inject canned responses.
	Query func(target string) (string, error)
}

// Lookup performs one WHOIS query and extracts registrar, dates,
// nameservers and contact emails. Any failure, protocol or parse, comes
// back as a single error; fields missing from the response stay empty.
func (c *WhoisCollector) Lookup(ctx context.Context, target string) (*engine.Registration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := c.Query
	if query == nil {
		query = func(target string) (string, error) {
			return whois.Whois(target)
		}
	}

	raw, err := query(target)
	if err != nil {
		return nil, fmt.Errorf("whois query: %w", err)
	}

	parsed, err := whoisparser.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("whois parse: %w", err)
	}

	reg := &engine.Registration{
		NameServers: []string{},
		Emails:      []string{},
	}
	if parsed.Registrar != nil {
		reg.Registrar = parsed.Registrar.Name
	}
	if parsed.Domain != nil {
		reg.CreationDate = parsed.Domain.CreatedDate
		reg.ExpirationDate = parsed.Domain.ExpirationDate
		for _, ns := range parsed.Domain.NameServers {
			reg.NameServers = append(reg.NameServers, strings.ToLower(ns))
		}
	}

	seen := make(map[string]bool)
	for _, contact := range []*whoisparser.Contact{
		parsed.Registrant, parsed.Administrative, parsed.Technical, parsed.Billing, parsed.Registrar,
	} {
		if contact == nil {
			continue
		}
		email := strings.ToLower(strings.TrimSpace(contact.Email))
		if email == "" || seen[email] {
			continue
		}
		seen[email] = true
		reg.Emails = append(reg.Emails, email)
	}

	return reg, nil
}
