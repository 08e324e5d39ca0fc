package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"os/user"
	"path"

	"gopkg.in/yaml.v2"
)

const (
	configDir  string = ".lebtool"
	configFile string = "config.yml"

	// configDirEnv overrides the directory containing config.yml and the
	// shell history.
	configDirEnv = "LEBTOOL_CONFIG_DIR"
)

// Config defines all configuration options available to be set through the config file.
type Config struct {
	// Commands aliases.
	Aliases map[string][]string `yaml:"aliases"`

	// DefaultWidth is the bit width used by encode, decode and dump when
	// --width is not specified. Zero means 64.
	DefaultWidth int `yaml:"default-width,omitempty"`
	// Signed selects SLEB128 instead of ULEB128 when --signed is not
	// specified.
	Signed bool `yaml:"signed"`

	// Color enables colored output. If unset colors are used when the
	// output is a terminal.
	Color *bool `yaml:"color,omitempty"`
	// Colors of groups with the continuation bit set and of terminating
	// groups (3/4 bit color codes as defined here:
	// https://en.wikipedia.org/wiki/ANSI_escape_code#Colors)
	ContinuationColor int `yaml:"continuation-color"`
	TerminatorColor   int `yaml:"terminator-color"`
}

// LoadConfig attempts to populate a Config object from the config.yml file.
func LoadConfig() *Config {
	err := createConfigPath()
	if err != nil {
		fmt.Printf("Could not create config directory: %v.", err)
		return &Config{}
	}
	fullConfigFile, err := GetConfigFilePath(configFile)
	if err != nil {
		fmt.Printf("Unable to get config file path: %v.", err)
		return &Config{}
	}

	f, err := os.Open(fullConfigFile)
	if err != nil {
		f, err = createDefaultConfig(fullConfigFile)
		if err != nil {
			fmt.Printf("Error creating default config file: %v", err)
			return &Config{}
		}
	}
	defer func() {
		err := f.Close()
		if err != nil {
			fmt.Printf("Closing config file failed: %v.", err)
		}
	}()

	data, err := ioutil.ReadAll(f)
	if err != nil {
		fmt.Printf("Unable to read config data: %v.", err)
		return &Config{}
	}

	var c Config
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		fmt.Printf("Unable to decode config file: %v.", err)
		return &Config{}
	}

	return &c
}

// SaveConfig will marshal and save the config struct
// to disk.
func SaveConfig(conf *Config) error {
	fullConfigFile, err := GetConfigFilePath(configFile)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(*conf)
	if err != nil {
		return err
	}

	f, err := os.Create(fullConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(out)
	return err
}

// Width returns the configured default bit width.
func (c *Config) Width() int {
	if c == nil || c.DefaultWidth == 0 {
		return 64
	}
	return c.DefaultWidth
}

func createDefaultConfig(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("unable to create config file: %v", err)
	}
	err = writeDefaultConfig(f)
	if err != nil {
		return nil, fmt.Errorf("unable to write default configuration: %v", err)
	}
	// The caller reads the file back from the start.
	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}
	return f, nil
}

func writeDefaultConfig(f *os.File) error {
	_, err := f.WriteString(
		`# Configuration file for lebtool.

# This is the default configuration file. Available options are provided, but disabled.
# Delete the leading hash mark to enable an item.

# Provided aliases will be added to the default aliases for a given command
# of the interactive shell.
aliases:
  # command: ["alias1", "alias2"]

# Bit width used when --width is not specified: 8, 16, 32, 64 or 128.
# default-width: 64

# Use SLEB128 instead of ULEB128 when --signed is not specified.
# signed: true

# Force colored output on or off. By default colors are used when
# writing to a terminal.
# color: false

# ANSI foreground colors of groups with the continuation bit set and of
# terminating groups (if unset, 90 and 32).
# continuation-color: 90
# terminator-color: 32
`)
	return err
}

// createConfigPath creates the directory structure at which all config files are saved.
func createConfigPath() error {
	path, err := GetConfigFilePath("")
	if err != nil {
		return err
	}
	return os.MkdirAll(path, 0700)
}

// GetConfigFilePath gets the full path to the given config file name.
func GetConfigFilePath(file string) (string, error) {
	if dir := os.Getenv(configDirEnv); dir != "" {
		return path.Join(dir, file), nil
	}

	userHomeDir := "."
	usr, err := user.Current()
	if err == nil {
		userHomeDir = usr.HomeDir
	}
	return path.Join(userHomeDir, configDir, file), nil
}
