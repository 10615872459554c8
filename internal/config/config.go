package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// 存储驱动
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// ConfigFileName 默认配置文件名（位于可执行文件同目录）
const ConfigFileName = "config.toml"

// AppConfig 应用配置
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Data     DataConfig     `toml:"data"`
	Store    StoreConfig    `toml:"store"`
	Business BusinessConfig `toml:"business"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port        int  `toml:"port"`
	DevMode     bool `toml:"dev_mode"`
	MaxUploadMB int  `toml:"max_upload_mb"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// StoreConfig 存储配置
type StoreConfig struct {
	Driver string `toml:"driver"` // sqlite/postgres/memory
	DSN    string `toml:"dsn"`    // postgres 连接串
}

// BusinessConfig 业务配置
type BusinessConfig struct {
	DefaultCity string `toml:"default_city"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `toml:"level"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:        20261,
			DevMode:     false,
			MaxUploadMB: 20,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Store: StoreConfig{
			Driver: DriverSQLite,
		},
		Business: BusinessConfig{
			DefaultCity: "佛山",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// MaxUploadBytes 上传大小上限（字节）
func (c *AppConfig) MaxUploadBytes() int64 {
	mb := c.Server.MaxUploadMB
	if mb <= 0 {
		mb = DefaultConfig().Server.MaxUploadMB
	}
	return int64(mb) << 20
}

// Validate 检查配置是否可用
func (c *AppConfig) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite, DriverMemory:
	case DriverPostgres:
		if strings.TrimSpace(c.Store.DSN) == "" {
			return errors.New("store.dsn or DATABASE_URL is required for postgres driver")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultConfigPath 可执行文件同目录下的 config.toml
func DefaultConfigPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return filepath.Join(exeDir, ConfigFileName)
}

// LoadDotEnv 加载 .env 文件（不存在时忽略），已存在的环境变量不会被覆盖
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// LoadConfigWithInfo 从 config.toml 加载配置并返回元信息。
// path 为空时使用可执行文件同目录下的 config.toml，文件不存在时使用默认配置。
func LoadConfigWithInfo(path string) (*AppConfig, LoadConfigInfo, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	info := LoadConfigInfo{Path: path}
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// 配置文件不存在，使用默认配置
	case err != nil:
		return nil, info, err
	default:
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	applyEnv(config)
	return config, info, nil
}

// LoadConfig 从 config.toml 加载配置
func LoadConfig(path string) (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo(path)
	return config, err
}

// applyEnv 环境变量覆盖
func applyEnv(config *AppConfig) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		config.Store.DSN = v
	}
	if v := os.Getenv("SHEBAO_STORE_DRIVER"); v != "" {
		config.Store.Driver = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("SHEBAO_DEFAULT_CITY"); v != "" {
		config.Business.DefaultCity = strings.TrimSpace(v)
	}
	if v := os.Getenv("SHEBAO_LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
	if v := os.Getenv("SHEBAO_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
}

// SaveConfig 保存配置到 path（为空时写到可执行文件同目录）
func SaveConfig(config *AppConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ResolveDataDir 数据目录绝对路径；相对路径以可执行文件目录为基准
func ResolveDataDir(config *AppConfig) string {
	if filepath.IsAbs(config.Data.DataDir) {
		return config.Data.DataDir
	}
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, config.Data.DataDir)
}

// EnsureDataDir 确保数据目录及 exports 子目录存在
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := ResolveDataDir(config)
	if err := os.MkdirAll(filepath.Join(dataDir, "exports"), 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}
