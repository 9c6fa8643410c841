package jqlb

import "github.com/gobeam/stringy"

// NamingStrategy decides how clause names become storage column names.
type NamingStrategy string

const (
	NamingStrategyNoChange  NamingStrategy = "no_change"
	NamingStrategySnakeCase NamingStrategy = "snake_case"
)

// ParseNamingStrategy accepts the textual strategy names used by the CLI.
func ParseNamingStrategy(s string) (NamingStrategy, error) {
	switch NamingStrategy(s) {
	case NamingStrategyNoChange, NamingStrategySnakeCase:
		return NamingStrategy(s), nil
	case "":
		return NamingStrategySnakeCase, nil
	}
	return "", invalidArgument("unknown naming strategy %q", s)
}

func normalizeColumnName(strategy NamingStrategy, name string) string {
	switch strategy {
	case NamingStrategySnakeCase:
		return stringy.New(name).SnakeCase("?", "").ToLower()
	case NamingStrategyNoChange:
		fallthrough
	default:
		return name
	}
}
