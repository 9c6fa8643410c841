package jqlb

import (
	"log/slog"
	"time"
)

// DefaultDateLayout renders dates the way JQL expects them (yyyy-MM-dd HH:mm).
const DefaultDateLayout = "2006-01-02 15:04"

// Config contains configuration shared by the builders of one query.
type Config struct {
	// Logger receives builder diagnostics.
	// OPTIONAL: Uses slog.Default() if nil.
	Logger *slog.Logger

	// Location is the time zone date operands are rendered in.
	// OPTIONAL: Uses time.UTC if nil.
	Location *time.Location

	// DateLayout is the Go time layout used for date operands.
	// OPTIONAL: Uses DefaultDateLayout if empty.
	DateLayout string

	// Resolver maps system field ids to clause names for the order-by helpers.
	// OPTIONAL: Uses the built-in system field table if nil.
	Resolver ClauseNameResolver
}

func (c *Config) withDefaults() *Config {
	out := Config{}
	if c != nil {
		out = *c
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	if out.Location == nil {
		out.Location = time.UTC
	}
	if out.DateLayout == "" {
		out.DateLayout = DefaultDateLayout
	}
	if out.Resolver == nil {
		out.Resolver = SystemFieldResolver{}
	}
	return &out
}

// formatDate renders t as a date literal in the configured zone.
func (c *Config) formatDate(t time.Time) string {
	return t.In(c.Location).Format(c.DateLayout)
}
