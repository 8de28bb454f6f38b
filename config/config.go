package config

import (
	"fmt"
	"os"
	"time"

	"github.com/alejandrodnm/venicebot/internal/domain"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del monitor.
type Config struct {
	Monitor MonitorConfig `yaml:"monitor"`
	API     APIConfig     `yaml:"api"`
	Paper   PaperConfig   `yaml:"paper"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// MonitorConfig controla el comportamiento del loop de monitoreo y la
// evaluación de paths.
type MonitorConfig struct {
	IntervalSeconds    int      `yaml:"interval_seconds"`
	BaseToken          string   `yaml:"base_token"`
	DerivedToken       string   `yaml:"derived_token"`
	Universe           []string `yaml:"universe"`
	MaxHops            int      `yaml:"max_hops"`
	StartAmountUSD     float64  `yaml:"start_amount_usd"`
	PerHopCostUSD      float64  `yaml:"per_hop_cost_usd"`
	MintCostMultiplier float64  `yaml:"mint_cost_multiplier"`
	MinLiquidityUSD    float64  `yaml:"min_liquidity_usd"`
	MaxTradeFraction   float64  `yaml:"max_trade_fraction"`
	// MinProfitPct es el umbral accionable como fracción (0.01 = 1%).
	MinProfitPct float64 `yaml:"min_profit_pct"`
	// MinSpreadAlertPct es el spread mint-vs-mercado mínimo (%) para
	// marcar el análisis como rentable.
	MinSpreadAlertPct float64 `yaml:"min_spread_alert_pct"`
	CrossVenueMinPct  float64 `yaml:"cross_venue_min_pct"`
}

// APIConfig contiene los base URLs y keys de las fuentes de precios.
type APIConfig struct {
	CoinGeckoBase     string `yaml:"coingecko_base"`
	CoinMarketCapBase string `yaml:"coinmarketcap_base"`
	MintRateURL       string `yaml:"mint_rate_url"`
	DexScreenerBase   string `yaml:"dexscreener_base"`
	ChainID           string `yaml:"chain_id"`
	// Keys vienen del entorno (.env), no del YAML.
	CoinGeckoKey     string `yaml:"-"`
	CoinMarketCapKey string `yaml:"-"`
}

// PaperConfig controla el paper trading.
type PaperConfig struct {
	InitialCapitalUSD float64 `yaml:"initial_capital_usd"`
}

// StorageConfig controla dónde se persisten los datos.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si
// existe. Los valores del entorno sobreescriben los del YAML para las keys
// que correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// Interval devuelve el intervalo de monitoreo como time.Duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Monitor.IntervalSeconds) * time.Second
}

// UniverseTokens devuelve el universo como tokens de dominio.
func (c *Config) UniverseTokens() []domain.Token {
	out := make([]domain.Token, 0, len(c.Monitor.Universe))
	for _, s := range c.Monitor.Universe {
		out = append(out, domain.Token(s))
	}
	return out
}

// applyEnvOverrides sobreescribe valores con variables de entorno.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		cfg.API.CoinGeckoKey = v
	}
	if v := os.Getenv("COINMARKETCAP_API_KEY"); v != "" {
		cfg.API.CoinMarketCapKey = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Monitor.IntervalSeconds <= 0 {
		cfg.Monitor.IntervalSeconds = 300
	}
	if cfg.Monitor.BaseToken == "" {
		cfg.Monitor.BaseToken = string(domain.USDC)
	}
	if cfg.Monitor.DerivedToken == "" {
		cfg.Monitor.DerivedToken = string(domain.DIEM)
	}
	if len(cfg.Monitor.Universe) == 0 {
		cfg.Monitor.Universe = []string{string(domain.VVV), string(domain.DIEM)}
	}
	if cfg.Monitor.MaxHops <= 0 {
		cfg.Monitor.MaxHops = 3
	}
	if cfg.Monitor.StartAmountUSD <= 0 {
		cfg.Monitor.StartAmountUSD = 1000
	}
	if cfg.Monitor.PerHopCostUSD <= 0 {
		cfg.Monitor.PerHopCostUSD = 5
	}
	if cfg.Monitor.MintCostMultiplier < 1 {
		cfg.Monitor.MintCostMultiplier = 1.5
	}
	if cfg.Monitor.MinLiquidityUSD <= 0 {
		cfg.Monitor.MinLiquidityUSD = 10000
	}
	if cfg.Monitor.MaxTradeFraction <= 0 {
		cfg.Monitor.MaxTradeFraction = 0.05
	}
	if cfg.Monitor.MinProfitPct <= 0 {
		cfg.Monitor.MinProfitPct = 0.01
	}
	if cfg.Monitor.MinSpreadAlertPct <= 0 {
		cfg.Monitor.MinSpreadAlertPct = 5
	}
	if cfg.Monitor.CrossVenueMinPct <= 0 {
		cfg.Monitor.CrossVenueMinPct = 5
	}
	if cfg.Paper.InitialCapitalUSD <= 0 {
		cfg.Paper.InitialCapitalUSD = 1000
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "venicebot.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
