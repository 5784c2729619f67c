// Package config centralizes configuration for the tariff tools. All tunables
// are sourced from command-line flags whose defaults are seeded from
// environment variables, so `--help` shows every knob and its effective
// default.
//
// Precedence:
//  1. Environment values seed each flag's default.
//  2. Explicit CLI flags override the seeded defaults.
//
// Typical usage from a cobra command:
//
//	cfg := config.BindNormalizer(cmd.Flags(), os.Getenv)
//	// cobra parses flags, then RunE validates and uses cfg
//
// For tests, prefer LoadNormalizerFromArgs with a private FlagSet and a map
// backed getenv to keep them hermetic.
package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/pflag"
)

// Defaults mirror the original deployment.
const (
	DefaultInput         = "MRLP_E_MEEN_SSP_20240917_0001_nTOU.csv"
	DefaultVaultURL      = "https://tpwlcompricecufa-kv-qa.vault.azure.net/"
	DefaultSecretName    = "tidq-db-connection-info"
	DefaultPushgateway   = "http://localhost:9091"
	DefaultPreviewRows   = 5
	DefaultInputEncoding = "utf-8"
)

// Logging selects the log level and output format.
type Logging struct {
	Level  string // trace|debug|info|warn|error
	Format string // console|json
}

// Normalizer holds configuration for the tariffnorm binary.
type Normalizer struct {
	Input         string // Path to the input tariff CSV.
	Output        string // Path to the output CSV; derived from Input when empty.
	Comma         string // Single-character field delimiter.
	InputEncoding string // IANA charset name of the input file.
	PreviewRows   int    // Rows rendered to stdout after the run; <=0 disables.

	MetricsBackend string // none|pushgateway
	PushgatewayURL string

	Logging Logging
}

// Secrets holds configuration for the dbsecret binary.
type Secrets struct {
	VaultURL      string
	SecretName    string
	SecretVersion string // empty selects the latest version
	PrintDSN      bool

	Logging Logging
}

// BindNormalizer defines the normalizer flags on fs, seeding defaults through
// getenv. The returned Config is populated once fs has been parsed.
func BindNormalizer(fs *pflag.FlagSet, getenv func(string) string) *Normalizer {
	cfg := &Normalizer{}
	env := envReader{getenv: getenv}

	fs.StringVar(&cfg.Input, "input", env.str("TARIFF_INPUT", DefaultInput), "Path to the input tariff CSV")
	fs.StringVar(&cfg.Output, "output", env.str("TARIFF_OUTPUT", ""), "Path to the output CSV (default <input>_normalized.csv)")
	fs.StringVar(&cfg.Comma, "comma", env.str("TARIFF_COMMA", ","), "Field delimiter of the input CSV")
	fs.StringVar(&cfg.InputEncoding, "input_encoding", env.str("TARIFF_INPUT_ENCODING", DefaultInputEncoding), "Character set of the input CSV (IANA name)")
	fs.IntVar(&cfg.PreviewRows, "preview_rows", env.integer("TARIFF_PREVIEW_ROWS", DefaultPreviewRows), "Rows to preview on stdout after writing (0 disables)")

	fs.StringVar(&cfg.MetricsBackend, "metrics_backend", env.str("METRICS_BACKEND", "none"), "Metrics backend: 'none' or 'pushgateway'")
	fs.StringVar(&cfg.PushgatewayURL, "pushgateway_url", env.str("PUSHGATEWAY_URL", DefaultPushgateway), "Pushgateway base URL")

	bindLogging(fs, env, &cfg.Logging)
	return cfg
}

// BindSecrets defines the dbsecret flags on fs, seeding defaults through getenv.
func BindSecrets(fs *pflag.FlagSet, getenv func(string) string) *Secrets {
	cfg := &Secrets{}
	env := envReader{getenv: getenv}

	fs.StringVar(&cfg.VaultURL, "vault_url", env.str("KEY_VAULT_URL", DefaultVaultURL), "Azure Key Vault URL")
	fs.StringVar(&cfg.SecretName, "secret_name", env.str("DB_SECRET_NAME", DefaultSecretName), "Name of the secret holding the connection info")
	fs.StringVar(&cfg.SecretVersion, "secret_version", env.str("DB_SECRET_VERSION", ""), "Secret version (empty for latest)")
	fs.BoolVar(&cfg.PrintDSN, "print_dsn", env.boolean("PRINT_DSN", false), "Also print the sqlserver DSN built from the secret")

	bindLogging(fs, env, &cfg.Logging)
	return cfg
}

func bindLogging(fs *pflag.FlagSet, env envReader, l *Logging) {
	fs.StringVar(&l.Level, "log_level", env.str("LOG_LEVEL", "info"), "Log level: trace, debug, info, warn, error")
	fs.StringVar(&l.Format, "log_format", env.str("LOG_FORMAT", "console"), "Log format: console or json")
}

// LoadNormalizerFromArgs binds and parses in one step. Tests use it with a
// private FlagSet.
func LoadNormalizerFromArgs(fs *pflag.FlagSet, getenv func(string) string, args []string) (*Normalizer, error) {
	cfg := BindNormalizer(fs, getenv)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadSecretsFromArgs binds and parses in one step.
func LoadSecretsFromArgs(fs *pflag.FlagSet, getenv func(string) string, args []string) (*Secrets, error) {
	cfg := BindSecrets(fs, getenv)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the parsed normalizer configuration and fills derived
// values (the output path).
func (c *Normalizer) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return fmt.Errorf("--input is required")
	}
	if utf8.RuneCountInString(c.Comma) != 1 {
		return fmt.Errorf("--comma must be a single character, got %q", c.Comma)
	}
	if r := c.CommaRune(); r == '"' || r == '\r' || r == '\n' {
		return fmt.Errorf("--comma %q is not a valid delimiter", c.Comma)
	}
	switch c.MetricsBackend {
	case "", "none", "pushgateway":
	default:
		return fmt.Errorf("unsupported --metrics_backend=%q", c.MetricsBackend)
	}
	if c.Output == "" {
		c.Output = DerivedOutput(c.Input)
	}
	if filepath.Clean(c.Output) == filepath.Clean(c.Input) {
		return fmt.Errorf("--output must differ from --input")
	}
	return validateLogging(c.Logging)
}

// CommaRune returns the delimiter as a rune. Call after Validate.
func (c *Normalizer) CommaRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Comma)
	return r
}

// Validate checks the parsed secrets configuration.
func (c *Secrets) Validate() error {
	if strings.TrimSpace(c.VaultURL) == "" {
		return fmt.Errorf("--vault_url is required")
	}
	if !strings.HasPrefix(c.VaultURL, "https://") {
		return fmt.Errorf("--vault_url must be an https URL, got %q", c.VaultURL)
	}
	if strings.TrimSpace(c.SecretName) == "" {
		return fmt.Errorf("--secret_name is required")
	}
	return validateLogging(c.Logging)
}

func validateLogging(l Logging) error {
	switch strings.ToLower(l.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported --log_format=%q", l.Format)
	}
	return nil
}

// DerivedOutput names the output file after the input: data.csv becomes
// data_normalized.csv in the same directory.
func DerivedOutput(input string) string {
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(input, ext)
	if ext == "" {
		ext = ".csv"
	}
	return stem + "_normalized" + ext
}

// envReader wraps getenv with typed default helpers so loaders never touch the
// process environment directly.
type envReader struct {
	getenv func(string) string
}

func (e envReader) str(k, d string) string {
	if v := e.getenv(k); v != "" {
		return v
	}
	return d
}

func (e envReader) integer(k string, d int) int {
	if v := e.getenv(k); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return d
}

// boolean accepts 1/0, true/false, yes/no, on/off (case-insensitive).
func (e envReader) boolean(k string, d bool) bool {
	switch strings.ToLower(e.getenv(k)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}
