// Package config loads the process-wide settings that influence how this
// module validates and renders geometry coordinates. It is decoupled from
// CLI and evaluation concerns so both cmd/cql2 and pkg/crs can depend on it
// without pulling in each other.
package config

// Config holds the settings resolved once from the environment and handed
// to callers as an immutable value.
type Config struct {
	// DefaultCRS is the coordinate reference system code used to validate
	// geometry coordinates that arrive with no explicit CRS.
	DefaultCRS string

	// DefaultPrecision is the number of digits after the decimal point used
	// when rendering geometry coordinates as WKT, absent an explicit
	// precision argument. Must fall in 0..7.
	DefaultPrecision int
}
