package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	Databases       DatabasesConfig      `mapstructure:"databases"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
	Logging         LoggingConfig        `mapstructure:"logging"`
}

type ServiceConfig struct {
	Port string `mapstructure:"port"`
}

type DatabasesConfig struct {
	SQL   SQLConfig   `mapstructure:"sql"`
	Redis RedisConfig `mapstructure:"redis"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
	// PasswordSecretARN, when set, overrides Password with the value stored
	// in AWS Secrets Manager.
	PasswordSecretARN string `mapstructure:"passwordSecretArn"`
	AWSRegion         string `mapstructure:"awsRegion"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

type ExternalClientConfig struct {
	Pricing PricingConfig `mapstructure:"pricing"`
}

type PricingConfig struct {
	BaseURL  string `mapstructure:"baseUrl"`
	Token    string `mapstructure:"token"`
	CacheTTL int    `mapstructure:"cacheTtlSeconds"`
}

type LoggingConfig struct {
	Level     string `mapstructure:"level"`
	LogToFile bool   `mapstructure:"logToFile"`
	FilePath  string `mapstructure:"filePath"`
}

func LoadConfig(path, env string) (*Config, error) {
	var cfg Config

	viper.AddConfigPath(path)
	if env != "" {
		viper.SetConfigName("appsettings." + env)
	} else {
		viper.SetConfigName("appsettings")
	}
	viper.SetConfigType("yaml")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}
	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
