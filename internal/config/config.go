// internal/config/config.go
//
// Runtime configuration, read from the environment.
// A `.env` file in the working directory is loaded first (development),
// real environment variables win over it.
//
// Environment variables:
//   LOG_LEVEL            zerolog level                      (info)
//   CELESTIA_RPC_URL     node JSON-RPC endpoint             (http://localhost:10101)
//   CELESTIA_AUTH_TOKEN  node auth JWT, empty for skip-auth
//   CELESTIA_NAMESPACE   10-byte blob namespace tag         (WORDTIATIA)
//   CELESTIA_NETWORK     label stored with each record      (mocha-4)
//   EXPLORER_TX_URL      tx link template, %s = hash        (https://mocha-4.celenium.io/tx/%s)
//   SUBMIT_ENABLED       attest finished games              (true)
//   SUBMIT_TIMEOUT       HTTP timeout, 0 = none             (0)
//   TX_GAS_PRICE, TX_GAS, TX_KEY_NAME, TX_SIGNER_ADDRESS, TX_FEE_GRANTER
//   WORDS_FILE           replace the embedded word list
//   DAILY_SALT           secret for the daily word schedule (local_dev_salt)
//   DB_PATH              SQLite history, "-" = memory only   (./data/wordtia.db)
//   PORT                 history server port                (5175)

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/robalobadob/wordtia/internal/attest"
	"github.com/robalobadob/wordtia/internal/celestia"
)

// Config is the resolved process configuration.
type Config struct {
	LogLevel string

	RPCURL        string
	AuthToken     string
	Namespace     attest.Namespace
	Network       string
	ExplorerURL   string
	SubmitEnabled bool
	SubmitTimeout time.Duration
	Tx            attest.TxConfig

	WordsFile string
	DailySalt string
	DBPath    string
	Port      string
}

// Load reads `.env` (if present) and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv resolves a Config through getenv. Split out for tests.
func FromEnv(getenv func(string) string) (Config, error) {
	e := env{get: getenv}
	c := Config{
		LogLevel:    e.str("LOG_LEVEL", "info"),
		RPCURL:      e.str("CELESTIA_RPC_URL", celestia.DefaultURL),
		AuthToken:   e.str("CELESTIA_AUTH_TOKEN", ""),
		Network:     e.str("CELESTIA_NETWORK", "mocha-4"),
		ExplorerURL: e.str("EXPLORER_TX_URL", attest.DefaultExplorer),
		WordsFile:   e.str("WORDS_FILE", ""),
		DailySalt:   e.str("DAILY_SALT", "local_dev_salt"),
		DBPath:      e.str("DB_PATH", "./data/wordtia.db"),
		Port:        e.str("PORT", "5175"),
		Tx: attest.TxConfig{
			KeyName:           e.str("TX_KEY_NAME", ""),
			SignerAddress:     e.str("TX_SIGNER_ADDRESS", ""),
			FeeGranterAddress: e.str("TX_FEE_GRANTER", ""),
		},
	}

	var err error
	if c.Namespace, err = attest.NewNamespace(e.str("CELESTIA_NAMESPACE", attest.DefaultNamespace)); err != nil {
		return Config{}, fmt.Errorf("CELESTIA_NAMESPACE: %w", err)
	}
	if c.SubmitEnabled, err = e.boolean("SUBMIT_ENABLED", true); err != nil {
		return Config{}, err
	}
	if c.SubmitTimeout, err = e.duration("SUBMIT_TIMEOUT", 0); err != nil {
		return Config{}, err
	}
	if c.Tx.GasPrice, err = e.number("TX_GAS_PRICE", 0); err != nil {
		return Config{}, err
	}
	if c.Tx.Gas, err = e.count("TX_GAS", 0); err != nil {
		return Config{}, err
	}
	return c, nil
}

// MemoryOnly reports whether history should stay in process memory.
func (c Config) MemoryOnly() bool { return c.DBPath == "" || c.DBPath == "-" }

type env struct{ get func(string) string }

func (e env) str(k, def string) string {
	if v := e.get(k); v != "" {
		return v
	}
	return def
}

func (e env) boolean(k string, def bool) (bool, error) {
	v := e.get(k)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", k, err)
	}
	return b, nil
}

func (e env) duration(k string, def time.Duration) (time.Duration, error) {
	v := e.get(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return d, nil
}

func (e env) number(k string, def float64) (float64, error) {
	v := e.get(k)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("%s: invalid value %q", k, v)
	}
	return f, nil
}

func (e env) count(k string, def uint64) (uint64, error) {
	v := e.get(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}
