package config

// Config is the engine's TOML-decoded configuration: the shape of the
// region to create and the knobs governing the commit protocol's stripe
// table and admission ceiling.
type Config struct {
	RegionSize  int    `toml:"region-size"`   // bytes of the initial segment
	Align       int    `toml:"align"`         // word size in bytes, must be a power of two
	StripeSize  int    `toml:"stripe-size"`   // number of entries in the lock stripe table
	MaxSimulTxs int64  `toml:"max-simul-txs"` // admission ceiling on concurrent committing writers
	LogLevel    string `toml:"log-level"`
}

// DefaultConfig mirrors the teacher's DefaultConf pattern: sane defaults a
// host can load from a TOML file and selectively override.
var DefaultConfig = Config{
	RegionSize:  4096,
	Align:       8,
	StripeSize:  1024,
	MaxSimulTxs: 64,
	LogLevel:    "info",
}
