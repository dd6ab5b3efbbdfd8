package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const DefaultPath = "config.toml"

// Credentials são resolvidas uma única vez na inicialização e passadas
// explicitamente para o login.
type Credentials struct {
	Email    string
	Password string
}

type Config struct {
	Browser  BrowserConfig  `toml:"browser"`
	Timeouts TimeoutsConfig `toml:"timeouts"`
	Output   OutputConfig   `toml:"output"`
	Logging  LoggingConfig  `toml:"logging"`
	Web      WebConfig      `toml:"web"`

	// nunca lidas do arquivo, só do ambiente
	Credentials Credentials `toml:"-"`
}

type BrowserConfig struct {
	Headless  bool   `toml:"headless"`
	ExecPath  string `toml:"exec_path"`
	UserAgent string `toml:"user_agent"`
	Stealth   bool   `toml:"stealth"`
}

type TimeoutsConfig struct {
	// SettleMode: "delay" espera Settle inteiro; "ready" retorna antes se
	// document.readyState ficar complete.
	SettleMode  string `toml:"settle_mode"`
	Settle      string `toml:"settle"`
	LoginForm   string `toml:"login_form"`
	LoginResult string `toml:"login_result"`
	AboutLink   string `toml:"about_link"`
}

type OutputConfig struct {
	CSVPath   string `toml:"csv_path"`
	ErrorPage string `toml:"error_page"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type WebConfig struct {
	Addr        string `toml:"addr"`
	PhoneRegion string `toml:"phone_region"`
}

func Default() *Config {
	return &Config{
		Browser: BrowserConfig{
			Headless:  true,
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64)",
		},
		Timeouts: TimeoutsConfig{
			SettleMode:  "delay",
			Settle:      "5s",
			LoginForm:   "10s",
			LoginResult: "15s",
			AboutLink:   "10s",
		},
		Output: OutputConfig{
			CSVPath:   "company_linkedin_about.csv",
			ErrorPage: "error_page.html",
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Web:     WebConfig{Addr: ":8080", PhoneRegion: "IN"},
	}
}

// Load aplica, nesta ordem: defaults, o arquivo TOML em path (opcional
// quando path é o DefaultPath) e as variáveis de ambiente (.env incluso).
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		case errors.Is(err, fs.ErrNotExist) && path == DefaultPath:
		default:
			return nil, err
		}
	}

	_ = godotenv.Load()
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	// ausência vira string vazia; o erro só aparece no login
	c.Credentials = Credentials{
		Email:    os.Getenv("LINKEDIN_EMAIL"),
		Password: os.Getenv("LINKEDIN_PASSWORD"),
	}

	if v, ok := lookupBool("HEADLESS"); ok {
		c.Browser.Headless = v
	}
	if v, ok := lookupBool("STEALTH"); ok {
		c.Browser.Stealth = v
	}
	c.Browser.ExecPath = getEnv("CHROME_PATH", c.Browser.ExecPath)
	c.Browser.UserAgent = getEnv("USER_AGENT", c.Browser.UserAgent)
	c.Output.CSVPath = getEnv("OUTPUT_CSV", c.Output.CSVPath)
	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = getEnv("LOG_FORMAT", c.Logging.Format)
	c.Web.Addr = getEnv("WEB_ADDR", c.Web.Addr)
	c.Web.PhoneRegion = getEnv("PHONE_REGION", c.Web.PhoneRegion)
}

func (t TimeoutsConfig) SettleDelay() time.Duration {
	return parseDuration(t.Settle, 5*time.Second)
}

func (t TimeoutsConfig) LoginFormWait() time.Duration {
	return parseDuration(t.LoginForm, 10*time.Second)
}

func (t TimeoutsConfig) LoginResultWait() time.Duration {
	return parseDuration(t.LoginResult, 15*time.Second)
}

func (t TimeoutsConfig) AboutLinkWait() time.Duration {
	return parseDuration(t.AboutLink, 10*time.Second)
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && strings.TrimSpace(val) != "" {
		return strings.TrimSpace(val)
	}
	return fallback
}

func lookupBool(key string) (bool, bool) {
	val, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(val) == "" {
		return false, false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(val))
	if err != nil {
		return false, false
	}
	return b, true
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}
