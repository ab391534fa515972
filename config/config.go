// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml"
	"github.com/spf13/viper"

	"gitlab.com/meridiannetwork/meridian/protocol"
)

const (
	configDir  = "config"
	configFile = "meridian.toml"
)

type StorageType string

const (
	MemoryStorage StorageType = "memory"
	BadgerStorage StorageType = "badger"
)

// LogLevel defines the default and per-module log level for Meridian's
// logging.
type LogLevel struct {
	Default string
	Modules [][2]string
}

// Parse parses a string such as "error;executor=info" into a LogLevel.
func (l LogLevel) Parse(s string) LogLevel {
	for _, s := range strings.Split(s, ";") {
		s := strings.SplitN(s, "=", 2)
		if len(s) == 1 {
			l.Default = s[0]
		} else {
			l.Modules = append(l.Modules, *(*[2]string)(s))
		}
	}
	return l
}

// SetDefault sets the default log level.
func (l LogLevel) SetDefault(level string) LogLevel {
	l.Default = level
	return l
}

// SetModule sets the log level for a module.
func (l LogLevel) SetModule(module, level string) LogLevel {
	l.Modules = append(l.Modules, [2]string{module, level})
	return l
}

// String converts the log level into a string, for example
// "error;executor=debug".
func (l LogLevel) String() string {
	s := new(strings.Builder)
	s.WriteString(l.Default)
	for _, m := range l.Modules {
		fmt.Fprintf(s, ";%s=%s", m[0], m[1])
	}
	return s.String()
}

var DefaultLogLevels = LogLevel{}.
	SetDefault("error").
	SetModule("executor", "info").
	SetModule("node", "info").
	String()

// Default returns a configuration with sensible defaults: Badger storage
// under the data directory, the API and metrics servers on localhost, and the
// latest protocol version.
func Default() *Config {
	c := new(Config)
	c.LogLevel = DefaultLogLevels
	c.LogFormat = "plain"
	c.ProtocolVersion = protocol.ProtocolLatest
	c.Storage.Type = BadgerStorage
	c.Storage.Path = filepath.Join("data", "meridian.db")
	c.API.ListenAddress = "http://127.0.0.1:26660"
	c.Metrics.ListenAddress = "http://127.0.0.1:26661"
	return c
}

type Config struct {
	// RootDir is the node's working directory. It is set by Load and is not
	// stored in the file.
	RootDir string `toml:"-" mapstructure:"-"`

	LogLevel  string `toml:"log-level" mapstructure:"log-level"`
	LogFormat string `toml:"log-format" mapstructure:"log-format"`

	// ProtocolVersion is the version the ledger is initialized at. Changing
	// it after initialization has no effect.
	ProtocolVersion protocol.ProtocolVersion `toml:"protocol-version" mapstructure:"protocol-version"`

	Storage Storage   `toml:"storage" mapstructure:"storage"`
	API     API       `toml:"api" mapstructure:"api"`
	Metrics Metrics   `toml:"metrics" mapstructure:"metrics"`
	Genesis []Genesis `toml:"genesis" mapstructure:"genesis"`
}

type Storage struct {
	Type StorageType `toml:"type" mapstructure:"type"`
	Path string      `toml:"path" mapstructure:"path"`
}

type API struct {
	ListenAddress string `toml:"listen-address" mapstructure:"listen-address"`
}

type Metrics struct {
	ListenAddress string `toml:"listen-address" mapstructure:"listen-address"`
}

// Genesis is an account funded when the ledger is initialized.
type Genesis struct {
	ID string `toml:"id" mapstructure:"id"`

	// Balance is the account's refundable balance in base units, as a
	// decimal string. Balances routinely exceed what TOML integers can
	// carry.
	Balance string `toml:"balance" mapstructure:"balance"`

	Keys []protocol.PublicKey `toml:"keys" mapstructure:"keys"`
}

// SetRoot sets the root directory.
func (c *Config) SetRoot(dir string) *Config {
	c.RootDir = dir
	return c
}

// FilePath returns the path of the config file within the root directory.
func (c *Config) FilePath() string {
	return filepath.Join(c.RootDir, configDir, configFile)
}

func MakeAbsolute(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func Load(dir string) (*Config, error) {
	return loadFile(dir, filepath.Join(dir, configDir, configFile))
}

func loadFile(dir, file string) (*Config, error) {
	config := new(Config)
	err := load(dir, file, config)
	if err != nil {
		return nil, err
	}

	config.RootDir = dir
	return config, nil
}

func Store(config *Config) error {
	f, err := os.Create(config.FilePath())
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(config)
}

func load(dir, file string, c interface{}) error {
	v := viper.New()
	v.SetConfigFile(file)
	v.AddConfigPath(dir)
	err := v.ReadInConfig()
	if err != nil {
		return fmt.Errorf("read: %v", err)
	}

	// Public keys are stored in their text form
	err = v.Unmarshal(c, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	)))
	if err != nil {
		return fmt.Errorf("unmarshal: %v", err)
	}

	return nil
}
