package cmd

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/randomstrangerpassenger/rebalance"
)

// Config is the optional rebalance.toml file. It carries session settings
// the engine itself does not own: the reporting currency, the exchange rate
// to use when the quote service is not consulted, the drift tolerance, and
// whether (and how long) to wait on background calculation.
type Config struct {
	Currency       string  `toml:"currency"`
	ExchangeRate   string  `toml:"exchange_rate"` // won per dollar, decimal string
	Tolerance      float64 `toml:"tolerance"`     // percent points of drift before flagging
	Offload        bool    `toml:"offload"`
	OffloadTimeout string  `toml:"offload_timeout"`
}

// defaultConfig is used when no config file exists.
var defaultConfig = Config{
	Currency:       rebalance.KRW,
	ExchangeRate:   "1350",
	Tolerance:      5,
	Offload:        true,
	OffloadTimeout: "10s",
}

// LoadConfig reads the app config file, falling back to defaults when it
// does not exist.
func LoadConfig() (Config, error) {
	content, err := os.ReadFile(*configFile)
	if errors.Is(err, fs.ErrNotExist) {
		return defaultConfig, nil
	}
	if err != nil {
		return Config{}, err
	}
	cfg := defaultConfig
	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Rate returns the configured exchange rate.
func (c Config) Rate() rebalance.Quantity {
	return rebalance.ParseQuantity(c.ExchangeRate)
}

// Timeout returns the caller-side offload timeout. The offload service
// itself never enforces one.
func (c Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.OffloadTimeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}
