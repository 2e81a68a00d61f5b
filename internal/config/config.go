package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database     Database     `json:"database" mapstructure:"database"`
	Counts       Counts       `json:"counts" mapstructure:"counts"`
	Seed         int64        `json:"seed" mapstructure:"seed"`
	BatchSize    int          `json:"batch_size" mapstructure:"batch_size"`
	Workers      int          `json:"workers" mapstructure:"workers"`
	AcademicYear AcademicYear `json:"academic_year" mapstructure:"academic_year"`
	Export       Export       `json:"export" mapstructure:"export"`
	PolicyPath   string       `json:"policy_path" mapstructure:"policy_path"`
	MaxAttempts  int          `json:"max_attempts" mapstructure:"max_attempts"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
	Host     string `json:"host" mapstructure:"host"`
	Port     int    `json:"port" mapstructure:"port"`
	User     string `json:"user" mapstructure:"user"`
	Password string `json:"password" mapstructure:"password"`
	Name     string `json:"name" mapstructure:"name"`
	Charset  string `json:"charset" mapstructure:"charset"`
	PoolSize int    `json:"pool_size" mapstructure:"pool_size"`
}

type Counts struct {
	Departments int `json:"departments" mapstructure:"departments"`
	Teachers    int `json:"teachers" mapstructure:"teachers"`
	Students    int `json:"students" mapstructure:"students"`
	Grades      int `json:"grades" mapstructure:"grades"`
}

type AcademicYear struct {
	Start string `json:"start" mapstructure:"start"`
	End   string `json:"end" mapstructure:"end"`
}

type Export struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()

	// Seed 0 is a legitimate choice; the zero value only means "unset"
	// when the key is absent from the config.
	if viper.IsSet("seed") {
		cfg.Seed = viper.GetInt64("seed")
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Database.Provider == "" {
		c.Database.Provider = "mysql"
	}
	if c.Database.URLEnv == "" {
		c.Database.URLEnv = "DATABASE_URL"
	}
	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		switch c.Database.Provider {
		case "postgresql", "postgres":
			c.Database.Port = 5432
		default:
			c.Database.Port = 3306
		}
	}
	if c.Database.Charset == "" {
		c.Database.Charset = "utf8mb4"
	}
	if c.Database.PoolSize == 0 {
		c.Database.PoolSize = 5
	}
	if c.Counts.Departments == 0 {
		c.Counts.Departments = 5
	}
	if c.Counts.Teachers == 0 {
		c.Counts.Teachers = 200
	}
	if c.Counts.Students == 0 {
		c.Counts.Students = 10000
	}
	if c.Counts.Grades == 0 {
		c.Counts.Grades = 30000
	}
	if c.Seed == 0 {
		c.Seed = 42
	}
	if c.BatchSize == 0 {
		c.BatchSize = 1000
	}
	if c.Workers == 0 {
		c.Workers = 4
	}
	if c.Database.PoolSize < c.Workers {
		c.Database.PoolSize = c.Workers
	}
	if c.AcademicYear.Start == "" {
		year := time.Now().Year()
		c.AcademicYear.Start = fmt.Sprintf("%d-09-01", year-1)
	}
	if c.AcademicYear.End == "" {
		year := time.Now().Year()
		c.AcademicYear.End = fmt.Sprintf("%d-06-30", year)
	}
	if c.Export.Path == "" {
		c.Export.Path = "data"
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 1000
	}
}

func (c *Config) Validate() error {
	supported := map[string]bool{
		"postgresql": true, "postgres": true,
		"mysql": true,
		"sqlite": true, "sqlite3": true,
	}
	if !supported[c.Database.Provider] {
		return fmt.Errorf("unsupported database provider: %s", c.Database.Provider)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Database.PoolSize < c.Workers {
		return fmt.Errorf("database pool_size (%d) must be at least the worker count (%d)", c.Database.PoolSize, c.Workers)
	}
	start, end, err := c.Window()
	if err != nil {
		return err
	}
	if !end.After(start) {
		return fmt.Errorf("academic year end %s must be after start %s", c.AcademicYear.End, c.AcademicYear.Start)
	}
	return nil
}

// Window parses the academic-year bounds.
func (c *Config) Window() (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", c.AcademicYear.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid academic_year.start: %w", err)
	}
	end, err := time.Parse("2006-01-02", c.AcademicYear.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid academic_year.end: %w", err)
	}
	return start, end, nil
}

// DatabaseURL returns the connection string: the env var named by url_env
// wins, otherwise the DSN is assembled from the individual fields.
func (c *Config) DatabaseURL() (string, error) {
	if dbURL := os.Getenv(c.Database.URLEnv); dbURL != "" {
		return dbURL, nil
	}

	d := c.Database
	switch d.Provider {
	case "postgresql", "postgres":
		if d.User == "" || d.Name == "" {
			return "", fmt.Errorf("database user and name are required when %s is unset", d.URLEnv)
		}
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
			url.QueryEscape(d.User), url.QueryEscape(d.Password), d.Host, d.Port, d.Name), nil
	case "mysql":
		if d.User == "" || d.Name == "" {
			return "", fmt.Errorf("database user and name are required when %s is unset", d.URLEnv)
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=true",
			d.User, d.Password, d.Host, d.Port, d.Name, d.Charset), nil
	case "sqlite", "sqlite3":
		if d.Name == "" {
			return "", fmt.Errorf("database name (file path) is required for sqlite")
		}
		return d.Name, nil
	}
	return "", fmt.Errorf("unsupported database provider: %s", d.Provider)
}
