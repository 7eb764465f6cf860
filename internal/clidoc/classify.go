package clidoc

import (
	"strings"

	"github.com/quantmind-br/sitedocs-go/internal/domain"
)

// prefixRules are evaluated in order after the auth check; first match wins.
var prefixRules = []struct {
	prefix   string
	category domain.Category
}{
	{"agents", domain.CategoryAgents},
	{"sites", domain.CategorySites},
	{"storage", domain.CategoryStorage},
	{"config", domain.CategoryConfig},
}

var authKeywords = []string{"login", "logout", "whoami"}

// Classify returns the bucket a command belongs to. Every record maps to
// exactly one category; unmatched commands fall into CategoryOther.
func Classify(rec domain.CommandRecord) domain.Category {
	name := rec.Subcommand()

	for _, kw := range authKeywords {
		if strings.Contains(name, kw) {
			return domain.CategoryAuth
		}
	}

	for _, rule := range prefixRules {
		if strings.HasPrefix(name, rule.prefix) {
			return rule.category
		}
	}

	return domain.CategoryOther
}

// Group classifies records into buckets, preserving encounter order
func Group(records []domain.CommandRecord) *domain.Buckets {
	b := domain.NewBuckets()
	for _, rec := range records {
		b.Add(Classify(rec), rec)
	}
	return b
}
