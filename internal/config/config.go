package config

import (
	"encoding/json"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port      string `json:"port" yaml:"port"`
	SchemaDir string `json:"schemaDir" yaml:"schemaDir"` // *.dsl с переименованиями; пусто — встроенная схема моделей
	SeedDir   string `json:"seedDir" yaml:"seedDir"`     // YAML-фикстуры для recmapctl seed

	// Хранилище записей
	StoreDriver   string `json:"storeDriver" yaml:"storeDriver"` // "memory" (default) | "redis" | "postgres" | "sqlite"
	RedisAddr     string `json:"redisAddr" yaml:"redisAddr"`
	RedisPassword string `json:"redisPassword" yaml:"redisPassword"`
	RedisDB       int    `json:"redisDb" yaml:"redisDb"`
	DBURL         string `json:"dbUrl" yaml:"dbUrl"`
	SQLitePath    string `json:"sqlitePath" yaml:"sqlitePath"`
	Table         string `json:"table" yaml:"table"` // для postgres/sqlite
	AutoMigrate   bool   `json:"autoMigrate" yaml:"autoMigrate"`

	LogLevel     string `json:"logLevel" yaml:"logLevel"`         // debug | info | warn | error
	DateLocation string `json:"dateLocation" yaml:"dateLocation"` // IANA-имя, в котором режутся даты
}

func def() Config {
	return Config{
		Port:      "8080",
		SchemaDir: "",
		SeedDir:   "seed",

		StoreDriver: "memory",
		RedisAddr:   "localhost:6379",
		RedisDB:     0,
		SQLitePath:  "recmap.db",
		Table:       "recmap_fields",
		AutoMigrate: false,

		LogLevel:     "info",
		DateLocation: "UTC",
	}
}

// Default возвращает конфигурацию по умолчанию.
func Default() Config { return def() }

func loadFile(path string) (Config, error) {
	c := def()
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &c)
	default:
		err = json.Unmarshal(b, &c)
	}
	if err != nil {
		return def(), err
	}
	return c, nil
}

func getenv(k, fallback string) string {
	if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func getenvInt(k string, fallback int) int {
	if v, ok := os.LookupEnv(k); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

func parseBool(v string, fallback bool) bool {
	v = strings.TrimSpace(strings.ToLower(v))
	if v == "1" || v == "true" || v == "yes" {
		return true
	}
	if v == "0" || v == "false" || v == "no" {
		return false
	}
	return fallback
}

func getenvBool(k string, fallback bool) bool {
	if v, ok := os.LookupEnv(k); ok {
		return parseBool(v, fallback)
	}
	return fallback
}

// LoadWithPath читает файл по указанному пути, потом применяет ENV и флаги из os.Args.
func LoadWithPath(path string) Config {
	cfg, _ := LoadWithArgs(path, os.Args[1:], io.Discard)
	return cfg
}

// LoadWithArgs — то же, что LoadWithPath, но с явными аргументами; ошибка только при разборе флагов.
func LoadWithArgs(path string, args []string, usage io.Writer) (Config, error) {
	cfg := def()

	// файл (если существует); путь можно переопределить флагом -config или RECMAP_CONFIG
	path = getenv("RECMAP_CONFIG", path)
	if p := configFlag(args); p != "" {
		path = p
	}
	if st, err := os.Stat(path); err == nil && !st.IsDir() {
		if c2, err := loadFile(path); err == nil {
			cfg = c2
		}
	}

	// ENV overrides
	cfg.Port = getenv("RECMAP_PORT", cfg.Port)
	cfg.SchemaDir = getenv("RECMAP_SCHEMA_DIR", cfg.SchemaDir)
	cfg.SeedDir = getenv("RECMAP_SEED_DIR", cfg.SeedDir)
	cfg.StoreDriver = getenv("RECMAP_STORE", cfg.StoreDriver)
	cfg.RedisAddr = getenv("RECMAP_REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = getenv("RECMAP_REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisDB = getenvInt("RECMAP_REDIS_DB", cfg.RedisDB)
	cfg.DBURL = getenv("RECMAP_DB_URL", cfg.DBURL)
	cfg.SQLitePath = getenv("RECMAP_SQLITE_PATH", cfg.SQLitePath)
	cfg.Table = getenv("RECMAP_TABLE", cfg.Table)
	cfg.AutoMigrate = getenvBool("RECMAP_AUTO_MIGRATE", cfg.AutoMigrate)
	cfg.LogLevel = getenv("RECMAP_LOG_LEVEL", cfg.LogLevel)
	cfg.DateLocation = getenv("RECMAP_DATE_LOCATION", cfg.DateLocation)

	// Flags overrides
	fs := flag.NewFlagSet("recmap", flag.ContinueOnError)
	fs.SetOutput(usage)
	fs.String("config", path, "Path to config file (JSON or YAML)")
	port := fs.String("port", cfg.Port, "HTTP port")
	schema := fs.String("schema", cfg.SchemaDir, "Path to DSL schema directory (empty = built-in)")
	seed := fs.String("seed", cfg.SeedDir, "Path to YAML fixtures directory")
	driver := fs.String("store", cfg.StoreDriver, "Record store (memory/redis/postgres/sqlite)")
	raddr := fs.String("redis-addr", cfg.RedisAddr, "Redis address")
	rdb := fs.Int("redis-db", cfg.RedisDB, "Redis logical database")
	db := fs.String("db", cfg.DBURL, "Postgres URL")
	sqlite := fs.String("sqlite", cfg.SQLitePath, "SQLite file path")
	table := fs.String("table", cfg.Table, "Table for postgres/sqlite records")
	auto := fs.String("auto-migrate", strconv.FormatBool(cfg.AutoMigrate), "Create records table (true/false)")
	level := fs.String("log-level", cfg.LogLevel, "Log level (debug/info/warn/error)")
	loc := fs.String("date-location", cfg.DateLocation, "Time zone for date fields")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	cfg.Port = strings.TrimSpace(*port)
	cfg.SchemaDir = strings.TrimSpace(*schema)
	cfg.SeedDir = strings.TrimSpace(*seed)
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(*driver))
	cfg.RedisAddr = strings.TrimSpace(*raddr)
	cfg.RedisDB = *rdb
	cfg.DBURL = strings.TrimSpace(*db)
	cfg.SQLitePath = strings.TrimSpace(*sqlite)
	cfg.Table = strings.TrimSpace(*table)
	cfg.AutoMigrate = parseBool(*auto, cfg.AutoMigrate)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(*level))
	cfg.DateLocation = strings.TrimSpace(*loc)

	return cfg, nil
}

// configFlag достаёт -config/--config до основного разбора, чтобы файл читался раньше ENV и флагов.
func configFlag(args []string) string {
	for i, a := range args {
		name := strings.TrimLeft(a, "-")
		if name == a {
			continue
		}
		if v, ok := strings.CutPrefix(name, "config="); ok {
			return v
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// Location разбирает DateLocation; пустое значение — UTC.
func (c Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.DateLocation) == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.DateLocation)
}
