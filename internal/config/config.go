package config

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN             string        `yaml:"url"`
		MaxOpenConns    int           `yaml:"max_open_conns"`
		MaxIdleConns    int           `yaml:"max_idle_conns"`
		ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
		AutoMigrate     bool          `yaml:"auto_migrate"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // минуты
	} `yaml:"jwt"`

	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Geocoder struct {
		APIKey           string        `yaml:"api_key"`
		BaseURL          string        `yaml:"base_url"` // https://maps.googleapis.com/maps/api
		Timeout          time.Duration `yaml:"timeout"`
		RatePerSecond    float64       `yaml:"rate_per_second"`
		Burst            int           `yaml:"burst"`
		FailureThreshold uint32        `yaml:"failure_threshold"`
		OpenTimeout      time.Duration `yaml:"open_timeout"`
		CountryFilter    string        `yaml:"country_filter"` // "canada"
	} `yaml:"geocoder"`

	Scoring struct {
		BaseScore            float64 `yaml:"base_score"`
		DistanceFactorBase   float64 `yaml:"distance_factor_base"`
		PriceFactorBase      float64 `yaml:"price_factor_base"`
		BathroomFactorBase   float64 `yaml:"bathroom_factor_base"`
		UtilitiesAdjustment  float64 `yaml:"utilities_adjustment"`
		BuildingTypeFactor   float64 `yaml:"building_type_factor"`
		GenderFactor         float64 `yaml:"gender_factor"`
		LegacyDistanceGrowth bool    `yaml:"legacy_distance_growth"`
	} `yaml:"scoring"`

	Matching struct {
		DateSlackDays  int `yaml:"date_slack_days"`
		CandidateLimit int `yaml:"candidate_limit"`
	} `yaml:"matching"`

	Recommendation struct {
		TopN      int           `yaml:"top_n"`
		ScanLimit int           `yaml:"scan_limit"`
		CacheTTL  time.Duration `yaml:"cache_ttl"`
	} `yaml:"recommendation"`

	Workers struct {
		ListingExpiryInterval time.Duration `yaml:"listing_expiry_interval"`
	} `yaml:"workers"`
}

var AppConfig *Config

func LoadConfig() {
	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		log.Println("Загрузка из config.yaml")

		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		cfg, err := Parse(f)
		if err != nil {
			log.Fatalf("Failed to load config file at %s: %v", configPath, err)
		}
		AppConfig = cfg
		return
	}

	log.Println("Загрузка конфигурации из переменных окружения")
	cfg := Default()
	loadFromEnv(cfg, dbURL)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	AppConfig = cfg
}

// Parse читает YAML поверх значений по умолчанию, поэтому явно заданный
// ноль (например date_slack_days: 0) сохраняется.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := yaml.NewDecoder(r).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFromEnv(cfg *Config, dbURL string) {
	cfg.Database.DSN = dbURL
	cfg.Database.AutoMigrate = true
	if env := os.Getenv("SERVER_ENV"); env != "" {
		cfg.Server.Env = env
	}
	if port, err := strconv.Atoi(os.Getenv("SERVER_PORT")); err == nil && port > 0 {
		cfg.Server.Port = port
	}
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Enabled = true
		cfg.Redis.Addr = addr
		cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	}

	cfg.Geocoder.APIKey = os.Getenv("GOOGLE_API_KEY")
}

// Default возвращает конфигурацию по умолчанию. Коэффициенты скоринга
// совпадают с algorithms.DefaultScoringParams.
func Default() *Config {
	cfg := &Config{}

	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 4000
	cfg.Server.Env = "development"

	cfg.Database.MaxOpenConns = 25
	cfg.Database.MaxIdleConns = 5
	cfg.Database.ConnMaxLifetime = 30 * time.Minute

	cfg.JWT.TTL = 60

	cfg.Geocoder.BaseURL = "https://maps.googleapis.com/maps/api"
	cfg.Geocoder.Timeout = 5 * time.Second
	cfg.Geocoder.RatePerSecond = 10
	cfg.Geocoder.Burst = 5
	cfg.Geocoder.FailureThreshold = 5
	cfg.Geocoder.OpenTimeout = 30 * time.Second
	cfg.Geocoder.CountryFilter = "canada"

	cfg.Scoring.BaseScore = 100.0
	cfg.Scoring.DistanceFactorBase = 1.01
	cfg.Scoring.PriceFactorBase = 0.995
	cfg.Scoring.BathroomFactorBase = 1.2
	cfg.Scoring.UtilitiesAdjustment = 100
	cfg.Scoring.BuildingTypeFactor = 1.2
	cfg.Scoring.GenderFactor = 1.5

	cfg.Matching.DateSlackDays = 5
	cfg.Matching.CandidateLimit = 500

	cfg.Recommendation.TopN = 10
	cfg.Recommendation.ScanLimit = 50000
	cfg.Recommendation.CacheTTL = 10 * time.Minute

	cfg.Workers.ListingExpiryInterval = 6 * time.Hour
	return cfg
}

// Validate отклоняет значения, при которых меняется направление факторов
// скоринга или ломаются лимиты.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port))
	}
	if c.JWT.TTL <= 0 {
		errs = append(errs, fmt.Errorf("jwt.ttl must be positive, got %d", c.JWT.TTL))
	}
	if c.Scoring.BaseScore <= 0 {
		errs = append(errs, fmt.Errorf("scoring.base_score must be positive, got %v", c.Scoring.BaseScore))
	}
	if c.Scoring.DistanceFactorBase <= 1 {
		errs = append(errs, fmt.Errorf("scoring.distance_factor_base must be > 1, got %v", c.Scoring.DistanceFactorBase))
	}
	if c.Scoring.PriceFactorBase <= 0 || c.Scoring.PriceFactorBase >= 1 {
		errs = append(errs, fmt.Errorf("scoring.price_factor_base must be in (0, 1), got %v", c.Scoring.PriceFactorBase))
	}
	if c.Scoring.BathroomFactorBase <= 1 {
		errs = append(errs, fmt.Errorf("scoring.bathroom_factor_base must be > 1, got %v", c.Scoring.BathroomFactorBase))
	}
	if c.Scoring.UtilitiesAdjustment < 0 {
		errs = append(errs, fmt.Errorf("scoring.utilities_adjustment must not be negative, got %v", c.Scoring.UtilitiesAdjustment))
	}
	if c.Scoring.BuildingTypeFactor < 1 {
		errs = append(errs, fmt.Errorf("scoring.building_type_factor must be >= 1, got %v", c.Scoring.BuildingTypeFactor))
	}
	if c.Scoring.GenderFactor < 1 {
		errs = append(errs, fmt.Errorf("scoring.gender_factor must be >= 1, got %v", c.Scoring.GenderFactor))
	}
	if c.Matching.DateSlackDays < 0 {
		errs = append(errs, fmt.Errorf("matching.date_slack_days must not be negative, got %d", c.Matching.DateSlackDays))
	}
	if c.Matching.CandidateLimit <= 0 {
		errs = append(errs, fmt.Errorf("matching.candidate_limit must be positive, got %d", c.Matching.CandidateLimit))
	}
	if c.Recommendation.TopN <= 0 || c.Recommendation.ScanLimit <= 0 {
		errs = append(errs, errors.New("recommendation.top_n and recommendation.scan_limit must be positive"))
	}
	if c.Workers.ListingExpiryInterval <= 0 {
		errs = append(errs, errors.New("workers.listing_expiry_interval must be positive"))
	}
	return errors.Join(errs...)
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
