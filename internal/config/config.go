package config

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ServiceName string        `yaml:"service_name"`
	Server      ServerConfig  `yaml:"server"`
	DB          DBConfig      `yaml:"db"`
	Redis       RedisConfig   `yaml:"redis"`
	Minio       MinioConfig   `yaml:"minio"`
	Email       EmailConfig   `yaml:"email"`
	Auth        AuthConfig    `yaml:"auth"`
	Jaeger      *JaegerConfig `yaml:"jaeger"`
}

type ServerConfig struct {
	Mode   string `yaml:"mode"`
	Port   int    `yaml:"port"`
	Scheme string `yaml:"scheme"`
	Domain string `yaml:"domain"`
}

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type RedisConfig struct {
	Addr string `yaml:"addr"`
	Pass string `yaml:"pass"`
}

type MinioConfig struct {
	Endpoint      string `yaml:"endpoint"`
	AccessKey     string `yaml:"access_key"`
	SecretKey     string `yaml:"secret_key"`
	Bucket        string `yaml:"bucket"`
	UseSSL        bool   `yaml:"use_ssl"`
	PublicBaseURL string `yaml:"public_base_url"`
}

type EmailConfig struct {
	Enabled bool   `yaml:"enabled"`
	Server  string `yaml:"server"`
	Port    int    `yaml:"port"`
	User    string `yaml:"user"`
	Pass    string `yaml:"pass"`
	Admin   string `yaml:"admin"`
}

type AuthConfig struct {
	Issuer        string `yaml:"issuer"`
	AccessSecret  string `yaml:"access_secret"`
	RefreshSecret string `yaml:"refresh_secret"`
}

type JaegerConfig struct {
	Sampler struct {
		Type  string `yaml:"type"`
		Param int    `yaml:"param"`
	} `yaml:"sampler"`
	Reporter struct {
		LogSpans           bool   `yaml:"log_spans"`
		LocalAgentHostPort string `yaml:"local_agent_host_port"`
	} `yaml:"reporter"`
}

// MustLoad reads the yaml config at path, expanding ${ENV} references after
// loading the optional .env file. Secrets never live in the yaml itself.
func MustLoad(path string) Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		zap.L().Debug("no .env file loaded", zap.Error(err))
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		zap.L().Fatal("failed to read config file", zap.String("path", path), zap.Error(err))
	}

	conf := Config{}
	if err = yaml.Unmarshal([]byte(os.ExpandEnv(string(bytes))), &conf); err != nil {
		zap.L().Fatal("failed to parse config file", zap.String("path", path), zap.Error(err))
	}

	return conf
}
