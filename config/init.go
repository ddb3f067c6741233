package config

import (
	"strings"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

var (
	instance *Config
	once     sync.Once
)

// Init 加载配置：先读 config.yaml，再用环境变量覆盖
func Init() {
	once.Do(load)
}

// Get 获取全局配置实例，未初始化时自动加载默认值
func Get() *Config {
	once.Do(load)
	return instance
}

func load() {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// 配置文件可以不存在，全部走默认值和环境变量
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		panic(err)
	}

	// 环境变量优先级最高
	if err := envconfig.Process("hackcontrol", cfg); err != nil {
		panic(err)
	}

	if cfg.Scoring.DefaultMinJudges < 1 {
		cfg.Scoring.DefaultMinJudges = 1
	}

	instance = cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", "8080")
	v.SetDefault("prefix", "api")
	v.SetDefault("mode", string(ModeDebug))
	v.SetDefault("mysql.host", "127.0.0.1")
	v.SetDefault("mysql.port", "3306")
	v.SetDefault("jwt.accesssecret", "hackcontrol-dev-secret")
	v.SetDefault("jwt.accessexpire", 72*3600)
	v.SetDefault("log.level", "info")
	v.SetDefault("scoring.default_min_judges", 2)
}

// SetForTest 测试用：直接注入配置，跳过文件和环境变量
func SetForTest(cfg *Config) {
	once.Do(func() {})
	instance = cfg
}
