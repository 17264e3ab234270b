package config

import (
	"fmt"
	"io/ioutil"
	"time"

	"github.com/AlexAkulov/reportfox/helpers"
	yaml "gopkg.in/yaml.v2"
)

type Vault struct {
	Enable   bool     `yaml:"enable"`
	VaultURL string   `yaml:"vault_url"`
	Token    string   `yaml:"token"`
	Paths    []string `yaml:"paths"`
}

type SMTP struct {
	Enable         bool   `yaml:"enable"`
	From           string `yaml:"mail_from"`
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	TLS            bool   `yaml:"tls"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	Recipient      string `yaml:"recipient"`
	RecipientRegex string `yaml:"recipient_filter"`
	Delay          string `yaml:"delay"`
}

type GitHub struct {
	Enable      bool   `yaml:"enable"`
	Token       string `yaml:"token"`
	Owner       string `yaml:"owner"`
	Repo        string `yaml:"repo"`
	PullRequest int    `yaml:"pull_request"`
}

type Webhook struct {
	Enable  bool              `yaml:"enable"`
	URL     string            `yaml:"url"`
	Method  string            `yaml:"method"`
	Headers map[string]string `yaml:"headers"`
}

type Logging struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type Metrics struct {
	GraphiteAddress    string `yaml:"graphite_address"`
	Prefix             string `yaml:"prefix"`
	SendIntervalString string `yaml:"send_interval"`
	SendInterval       time.Duration
}

type Common struct {
	CommentFile    string `yaml:"comment_file"`
	HistoryFile    string `yaml:"history_file"`
	MaxCommentSize int    `yaml:"max_comment_size"`
}

type Config struct {
	Common  *Common  `yaml:"common"`
	Logging *Logging `yaml:"logging"`
	Metrics *Metrics `yaml:"metrics"`
	GitHub  *GitHub  `yaml:"github"`
	Webhook *Webhook `yaml:"webhook"`
	SMTP    *SMTP    `yaml:"smtp"`
	Vault   *Vault   `yaml:"vault"`
}

func defaultConfig() *Config {
	return &Config{
		Common: &Common{
			CommentFile:    "security-comment.md",
			MaxCommentSize: 65000,
		},
		Logging: &Logging{
			Level: "info",
		},
		Metrics: &Metrics{
			SendIntervalString: "1m",
		},
		GitHub:  &GitHub{},
		Webhook: &Webhook{Method: "POST"},
		SMTP:    &SMTP{Delay: "5m"},
		Vault:   &Vault{},
	}
}

func LoadConfig(configLocation string) (*Config, error) {
	config := defaultConfig()
	configYaml, err := ioutil.ReadFile(configLocation)
	if err != nil {
		return nil, fmt.Errorf("can't read with: %v", err)
	}
	err = yaml.Unmarshal(configYaml, &config)
	if err != nil {
		return nil, fmt.Errorf("can't parse with: %v", err)
	}
	config.Metrics.SendInterval, err = helpers.ParseDuration(config.Metrics.SendIntervalString)
	if err != nil {
		return nil, err
	}
	if config.Metrics.SendInterval < time.Second {
		config.Metrics.SendInterval = time.Minute
	}
	if config.Common.MaxCommentSize < 1 {
		return nil, fmt.Errorf("max_comment_size so small")
	}
	return config, nil
}

func PrintDefaultConfig() {
	c := defaultConfig()
	d, _ := yaml.Marshal(&c)
	fmt.Print(string(d))
}
