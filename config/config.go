package config

import (
	"os"
	"strings"
	"sync"

	"github.com/pelletier/go-toml"
)

type Config struct {
	DatabasePath     string   `toml:"database_path" json:"databasePath" comment:"SQLite database file"`
	ListenAddr       string   `toml:"listen_addr" json:"listenAddr" comment:"HTTP listen address"`
	BackupDir        string   `toml:"backup_dir" json:"backupDir" comment:"directory for timestamped backups"`
	SeedDir          string   `toml:"seed_dir" json:"seedDir" comment:"directory holding products.csv and materials.csv for the first start"`
	CSVEncoding      string   `toml:"csv_encoding" json:"csvEncoding" comment:"seed CSV encoding (auto|utf-8|utf-16|windows-1252|shift_jis)"`
	RecipeSkipSheets []string `toml:"recipe_skip_sheets" json:"recipeSkipSheets" comment:"workbook sheets that do not hold a recipe"`
	LogLevel         string   `toml:"log_level" json:"logLevel" comment:"debug|info|warn|error"`
	LogMode          string   `toml:"log_mode" json:"logMode" comment:"development|production"`
}

var (
	cfg Config
	mu  sync.RWMutex

	configFilePath = "./prodledger.toml"
)

// 環境変数による上書き (.env からも読み込まれます)
const (
	EnvDatabasePath = "PRODLEDGER_DB_PATH"
	EnvListenAddr   = "PRODLEDGER_LISTEN_ADDR"
	EnvLogLevel     = "PRODLEDGER_LOG_LEVEL"
)

// SetPath は設定ファイルの場所を変更します。CLI の --config とテストで使います。
func SetPath(path string) {
	mu.Lock()
	defer mu.Unlock()
	configFilePath = path
}

func Defaults() Config {
	return Config{
		DatabasePath:     "./prodledger.db",
		ListenAddr:       "127.0.0.1:8080",
		BackupDir:        "./backups",
		SeedDir:          "./SOU",
		CSVEncoding:      "auto",
		RecipeSkipSheets: []string{"Home", "Cream & Syrup", "Spray Mixer"},
		LogLevel:         "info",
		LogMode:          "production",
	}
}

func applyDefaults(c *Config) {
	d := Defaults()
	if c.DatabasePath == "" {
		c.DatabasePath = d.DatabasePath
	}
	if c.ListenAddr == "" {
		c.ListenAddr = d.ListenAddr
	}
	if c.BackupDir == "" {
		c.BackupDir = d.BackupDir
	}
	if c.SeedDir == "" {
		c.SeedDir = d.SeedDir
	}
	if c.CSVEncoding == "" {
		c.CSVEncoding = d.CSVEncoding
	}
	if c.RecipeSkipSheets == nil {
		c.RecipeSkipSheets = d.RecipeSkipSheets
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.LogMode == "" {
		c.LogMode = d.LogMode
	}
}

func applyEnv(c *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvDatabasePath)); v != "" {
		c.DatabasePath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvListenAddr)); v != "" {
		c.ListenAddr = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
}

// fallback は読み込みに失敗したときの設定 (既定値 + 環境変数) を有効にします。mu を保持して呼びます。
func fallback() Config {
	cfg = Defaults()
	applyEnv(&cfg)
	return cfg
}

// LoadConfig は設定ファイルを読み込みます。ファイルが無ければ既定値を使います。
// 読み込みに失敗した場合も既定値を有効にした上でエラーを返します。
func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	var tempCfg Config
	file, err := os.ReadFile(configFilePath)
	if err != nil && !os.IsNotExist(err) {
		return fallback(), err
	}
	if err == nil {
		if err := toml.Unmarshal(file, &tempCfg); err != nil {
			return fallback(), err
		}
	}
	applyDefaults(&tempCfg)
	applyEnv(&tempCfg)
	cfg = tempCfg
	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	applyDefaults(&newCfg)

	file, err := toml.Marshal(newCfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
