package configs

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

const (
	configFileName   = `cmdset.yaml`
	defaultWorkspace = `cmdset_workspace`
	// DefaultConfigPath is used when no --config flag is given.
	DefaultConfigPath = `~/.cmdset`
)

var (
	errConfigPathNotExist = errors.New("config path not exist")
	errConfigPathIsFile   = errors.New("config path is file")
)

// Config stores cmdset config items.
type Config struct {
	// configuration folder path, default ~/.cmdset
	ConfigPath string `yaml:"-"`
	// workspace path storing interactive history, default $PWD/cmdset_workspace
	WorkspacePath string `yaml:"WorkspacePath"`
	// definition file loaded when none is given on the command line
	DefinitionPath string `yaml:"DefinitionPath,omitempty"`
	// output format name for parse results
	OutputFormat string `yaml:"OutputFormat,omitempty"`
	// Strict forces strict command checking regardless of the definition file
	Strict bool `yaml:"Strict,omitempty"`
	// LogLevel is the zap level name, logging is off when empty
	LogLevel string `yaml:"LogLevel,omitempty"`
}

func (c *Config) load() error {
	err := c.checkConfigPath()
	if err != nil {
		return err
	}

	bs, err := os.ReadFile(c.getConfigPath())
	if err != nil {
		return err
	}

	return yaml.Unmarshal(bs, c)
}

func (c *Config) getConfigPath() string {
	return filepath.Join(c.ConfigPath, configFileName)
}

// checkConfigPath exists and is a directory.
func (c *Config) checkConfigPath() error {
	info, err := os.Stat(c.ConfigPath)
	if err != nil {
		// not exist, return specified type to handle
		if os.IsNotExist(err) {
			return errConfigPathNotExist
		}
		return err
	}
	if !info.IsDir() {
		return errors.Wrapf(errConfigPathIsFile, "%s is not a directory", c.ConfigPath)
	}

	return nil
}

func (c *Config) createDefault() error {
	err := os.MkdirAll(c.ConfigPath, os.ModePerm)
	if err != nil {
		return err
	}

	// setup default value
	c.WorkspacePath = defaultWorkspace

	bs, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	return os.WriteFile(c.getConfigPath(), bs, 0o644)
}

// NewConfig loads the config stored under configPath, creating a default
// one on first run. "~" is expanded to the user home directory.
func NewConfig(configPath string) (*Config, error) {
	expanded, err := homedir.Expand(configPath)
	if err != nil {
		return &Config{ConfigPath: configPath, WorkspacePath: defaultWorkspace}, err
	}
	config := &Config{
		ConfigPath: expanded,
	}
	err = config.load()
	// config path not exist, may first time to run
	if errors.Is(err, errConfigPathNotExist) {
		return config, config.createDefault()
	}

	return config, err
}

// ExpandPath expands a leading "~" in user supplied paths.
func ExpandPath(path string) (string, error) {
	return homedir.Expand(path)
}
