package config

// Default configuration values, used when the corresponding environment
// variable is unset.
const (
	DefaultCRSCode   = "EPSG:4326"
	DefaultPrecision = 6

	// MaxPrecision is the highest value CQL2_DEFAULT_PRECISION may take.
	MaxPrecision = 7
)

// ApplyDefaults fills in zero-valued fields of c with the package defaults.
func (c *Config) ApplyDefaults() {
	if c.DefaultCRS == "" {
		c.DefaultCRS = DefaultCRSCode
	}
	if c.DefaultPrecision == 0 {
		c.DefaultPrecision = DefaultPrecision
	}
}
