/*
 * @Description: 统一配置管理 (手动加载 ini + 环境变量覆盖)
 * @Author: 安知鱼
 * @Date: 2025-06-28 00:21:55
 * @LastEditTime: 2026-10-15 11:02:37
 * @LastEditors: 安知鱼
 */
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-ini/ini"
	"github.com/spf13/viper"
)

// DefaultFilePath 是默认的配置文件路径
const DefaultFilePath = "data/conf.ini"

// EnvPrefix 是环境变量前缀，例如 HOLLOW_DATABASE_HOST
const EnvPrefix = "HOLLOW"

// 定义所有已知的配置键
var allKeys = []string{
	KeyServerPort, KeyServerDebug, KeyServerTrustedProxies,
	KeyDBType, KeyDBHost, KeyDBPort, KeyDBUser, KeyDBPassword, KeyDBName,
	KeyRedisAddr, KeyRedisPassword, KeyRedisDB,
	KeyJWTSecret, KeyIDSeed,
	KeySearchCacheTTL, KeySearchTrendingCapacity, KeySearchSourceTimeout,
	KeySearchRateLimit, KeySearchRateBurst, KeySearchTrendingDecay,
}

const (
	KeyServerPort    = "System.Port"
	KeyServerDebug   = "System.Debug"
	KeyDBType        = "Database.Type"
	KeyDBHost        = "Database.Host"
	KeyDBPort        = "Database.Port"
	KeyDBUser        = "Database.User"
	KeyDBPassword    = "Database.Password"
	KeyDBName        = "Database.Name"
	KeyRedisAddr     = "Redis.Addr"
	KeyRedisPassword = "Redis.Password"
	KeyRedisDB       = "Redis.DB"
	KeyJWTSecret     = "Auth.JWTSecret"
	KeyIDSeed        = "Auth.IDSeed"

	// KeyServerTrustedProxies 逗号分隔的代理 IP/CIDR，只有来自这些地址的 X-Forwarded-For 才被采信
	KeyServerTrustedProxies = "System.TrustedProxies"

	KeySearchCacheTTL         = "Search.CacheTTL"
	KeySearchTrendingCapacity = "Search.TrendingCapacity"
	KeySearchSourceTimeout    = "Search.SourceTimeout"
	KeySearchRateLimit        = "Search.RateLimit"
	KeySearchRateBurst        = "Search.RateBurst"
	KeySearchTrendingDecay    = "Search.TrendingDecay"
)

type Config struct {
	vp *viper.Viper
}

// NewConfig 从默认路径加载配置
func NewConfig() (*Config, error) {
	return Load(DefaultFilePath)
}

// Load 手动加载配置，确保可靠性：先读 ini 文件作为默认值，再用环境变量覆盖
func Load(filePath string) (*Config, error) {
	vp := viper.New()

	// --- 步骤 1: 使用 go-ini 从文件加载配置 (作为默认值) ---
	iniCfg, err := ini.Load(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("提示: 未找到 %s，将创建默认配置文件。", filePath)
			if err := createDefaultConfigFile(filePath); err != nil {
				log.Printf("警告: 创建默认配置文件失败: %v，将仅依赖环境变量或内部默认值。", err)
			} else {
				log.Printf("✅ 已创建默认配置文件: %s", filePath)
				iniCfg, err = ini.Load(filePath)
				if err != nil {
					log.Printf("警告: 重新加载配置文件失败: %v", err)
				}
			}
		} else {
			// 如果文件存在但格式错误
			return nil, fmt.Errorf("错误: 解析配置文件 '%s' 失败: %w", filePath, err)
		}
	}

	if iniCfg != nil {
		for _, section := range iniCfg.Sections() {
			for _, key := range section.Keys() {
				viperKey := fmt.Sprintf("%s.%s", section.Name(), key.Name())
				// 特殊处理默认分区 "DEFAULT"
				if section.Name() == ini.DefaultSection {
					viperKey = key.Name()
				}
				vp.Set(viperKey, key.Value())
			}
		}
		log.Printf("从 %s 文件加载了默认配置。", filePath)
	}

	// --- 步骤 2: 手动检查并覆盖环境变量 ---
	envReplacer := strings.NewReplacer(".", "_")
	for _, key := range allKeys {
		envVarName := fmt.Sprintf("%s_%s", EnvPrefix, envReplacer.Replace(strings.ToUpper(key)))
		if value, found := os.LookupEnv(envVarName); found {
			vp.Set(key, value)
			log.Printf("发现环境变量: %s, 已覆盖配置 '%s'。", envVarName, key)
		}
	}

	log.Println("✅ 配置加载器初始化完成。")
	return &Config{vp: vp}, nil
}

// NewFromMap 直接使用给定的键值创建配置，主要用于测试和命令行覆盖
func NewFromMap(values map[string]string) *Config {
	vp := viper.New()
	for k, v := range values {
		vp.Set(k, v)
	}
	return &Config{vp: vp}
}

func (c *Config) GetString(key string) string {
	return c.vp.GetString(key)
}

func (c *Config) GetInt(key string) int {
	return c.vp.GetInt(key)
}

func (c *Config) GetBool(key string) bool {
	return c.vp.GetBool(key)
}

// GetIntOr 读取整数配置，未配置或非正数时返回默认值
func (c *Config) GetIntOr(key string, def int) int {
	if !c.vp.IsSet(key) || c.vp.GetString(key) == "" {
		return def
	}
	if v := c.vp.GetInt(key); v > 0 {
		return v
	}
	return def
}

// GetDurationOr 读取时长配置（如 "5m"、"30s"），解析失败时返回默认值
func (c *Config) GetDurationOr(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(c.vp.GetString(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("⚠️  无效的配置 %s='%s'，使用默认值 %v", key, raw, def)
		return def
	}
	return d
}

// GetStringList 读取逗号分隔的列表，忽略空白项
func (c *Config) GetStringList(key string) []string {
	var out []string
	for _, part := range strings.Split(c.vp.GetString(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Set 覆盖单个配置项
func (c *Config) Set(key string, value interface{}) {
	c.vp.Set(key, value)
}

// createDefaultConfigFile 创建默认的配置文件
func createDefaultConfigFile(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	// 默认配置内容（使用 SQLite 作为默认数据库）
	defaultConfig := `[System]
Port = 8091
Debug = false
# 反向代理地址（如 127.0.0.1,10.0.0.0/8），留空表示不信任任何代理
TrustedProxies =

[Database]
Type = sqlite
Name = hollow_press.db

# Redis 配置（可选）
# 如果不配置或留空 Addr，搜索结果缓存将使用内存
[Redis]
Addr =
Password =
DB = 0

[Auth]
JWTSecret =
IDSeed =

[Search]
CacheTTL = 5m
TrendingCapacity = 10000
TrendingDecay = 0 0 * * * *
SourceTimeout = 5s
RateLimit = 120
RateBurst = 30
`

	if err := os.WriteFile(filePath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}
