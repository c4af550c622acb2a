/*
The Config package handles the application configuration. Configurations can come from a variety of places, and
are listed below in order of precedence:
	- Command Line
	- kubeview.yaml
	- .kubeview/config.yaml
	- ~/.kubeview.yaml
	- <XDG_CONFIG_HOME>/kubeview/config.yaml
	- Environment Variables prefixed with KUBEVIEW_
*/
package config

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/adrg/xdg"
	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/anchore/kubeview-client/internal"
	"github.com/anchore/kubeview-client/pkg/mode"
	"github.com/anchore/kubeview-client/pkg/namespace"
	"github.com/anchore/kubeview-client/pkg/presenter"
)

// Configuration options that may only be specified on the command line
type CliOnlyOptions struct {
	ConfigPath string
	Verbosity  int
}

// All Application configurations
type Application struct {
	ConfigPath             string
	PresenterOpt           presenter.Option
	Output                 string  `mapstructure:"output"`
	Quiet                  bool    `mapstructure:"quiet"`
	Log                    Logging `mapstructure:"log"`
	CliOptions             CliOnlyOptions
	API                    APIInfo            `mapstructure:"api"`
	Namespaces             NamespaceSelection `mapstructure:"namespaces"`
	RunMode                mode.Mode
	Mode                   string `mapstructure:"mode"`
	PollingIntervalSeconds int    `mapstructure:"polling-interval-seconds"`
}

// Location of the kubeview API, e.g. http://localhost:8000/api
type APIInfo struct {
	URL  string     `mapstructure:"url"`
	HTTP HTTPConfig `mapstructure:"http"`
}

// Configurations for the HTTP Client itself (net/http)
type HTTPConfig struct {
	Insecure       bool `mapstructure:"insecure"`
	TimeoutSeconds int  `mapstructure:"timeout-seconds"`
}

// Which of the fetched namespaces are shown
type NamespaceSelection struct {
	Include       []string `mapstructure:"include"`
	Exclude       []string `mapstructure:"exclude"`
	ExcludeSystem bool     `mapstructure:"exclude-system"`
	Patterns      bool     `mapstructure:"patterns"`
}

// Logging Configuration
type Logging struct {
	Structured   bool `mapstructure:"structured"`
	LevelOpt     logrus.Level
	Level        string `mapstructure:"level"`
	FileLocation string `mapstructure:"file"`
}

// Return whether or not the API details are specified
func (api *APIInfo) IsValid() bool {
	return api.URL != ""
}

// Filter converts the selection into the filter applied to every namespace fetch
func (n NamespaceSelection) Filter() namespace.Filter {
	return namespace.Filter{
		Include:       n.Include,
		Exclude:       n.Exclude,
		ExcludeSystem: n.ExcludeSystem,
		Patterns:      n.Patterns,
	}
}

func setNonCliDefaultValues(v *viper.Viper) {
	v.SetDefault("output", presenter.TablePresenter.String())
	v.SetDefault("mode", mode.AdHoc.String())
	v.SetDefault("log.level", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.structured", false)
	v.SetDefault("api.url", "http://localhost:8000/api")
	v.SetDefault("api.http.insecure", false)
	v.SetDefault("api.http.timeout-seconds", 10)
	v.SetDefault("namespaces.include", []string{})
	v.SetDefault("namespaces.exclude", []string{})
	v.SetDefault("namespaces.exclude-system", false)
	v.SetDefault("namespaces.patterns", false)
	v.SetDefault("polling-interval-seconds", 30)
}

// Load the Application Configuration from the Viper specifications
func LoadConfigFromFile(v *viper.Viper, cliOpts *CliOnlyOptions) (*Application, error) {
	// the user may not have a config, and this is OK, we can use the default config + default cobra cli values instead
	setNonCliDefaultValues(v)
	if cliOpts == nil {
		cliOpts = &CliOnlyOptions{}
	}
	if err := readConfig(v, cliOpts.ConfigPath); err != nil && cliOpts.ConfigPath != "" {
		return nil, err
	}

	config := &Application{
		CliOptions: *cliOpts,
	}
	err := v.Unmarshal(config)
	if err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}
	config.ConfigPath = v.ConfigFileUsed()

	err = config.Build()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// Build the configuration object (to be used as a singleton)
func (cfg *Application) Build() error {
	// set the presenter
	presenterOption := presenter.ParseOption(cfg.Output)
	if presenterOption == presenter.UnknownPresenter {
		return fmt.Errorf("bad --output value '%s'", cfg.Output)
	}
	cfg.PresenterOpt = presenterOption

	cfg.RunMode = mode.ParseMode(cfg.Mode)
	if cfg.RunMode == mode.PeriodicPolling && cfg.PollingIntervalSeconds <= 0 {
		return fmt.Errorf("polling-interval-seconds must be positive in %s mode", cfg.RunMode)
	}

	if cfg.API.IsValid() {
		u, err := url.Parse(cfg.API.URL)
		if err != nil {
			return fmt.Errorf("bad api.url (%q): %w", cfg.API.URL, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("bad api.url (%q): scheme must be http or https", cfg.API.URL)
		}
	}

	if err := cfg.Namespaces.Filter().Validate(); err != nil {
		return err
	}

	if cfg.Quiet {
		// TODO: quiet trumps all other logging options; file logging should survive --quiet
		cfg.Log.LevelOpt = logrus.PanicLevel
	} else {
		if cfg.Log.Level != "" {
			if cfg.CliOptions.Verbosity > 0 {
				return fmt.Errorf("cannot explicitly set log level (cfg file or env var) and use -v flag together")
			}

			lvl, err := logrus.ParseLevel(strings.ToLower(cfg.Log.Level))
			if err != nil {
				return fmt.Errorf("bad log level configured (%q): %w", cfg.Log.Level, err)
			}
			// set the log level explicitly
			cfg.Log.LevelOpt = lvl
		} else {
			// set the log level implicitly
			switch v := cfg.CliOptions.Verbosity; {
			case v == 1:
				cfg.Log.LevelOpt = logrus.InfoLevel
			case v >= 2:
				cfg.Log.LevelOpt = logrus.DebugLevel
			default:
				cfg.Log.LevelOpt = logrus.ErrorLevel
			}
		}
	}

	return nil
}

func readConfig(v *viper.Viper, configPath string) error {
	v.AutomaticEnv()
	v.SetEnvPrefix(internal.ApplicationName)
	// allow for nested options to be specified via environment variables
	// e.g. api.url = KUBEVIEW_API_URL
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// use explicitly the given user config
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err == nil {
			return nil
		}
		// don't fall through to other options if this fails
		return fmt.Errorf("unable to read config: %v", configPath)
	}

	// start searching for valid configs in order...

	// 1. look for <appname>.yaml (in the current directory)
	v.AddConfigPath(".")
	v.SetConfigName(internal.ApplicationName)
	if err := v.ReadInConfig(); err == nil {
		return nil
	}

	// 2. look for .<appname>/config.yaml (in the current directory)
	v.AddConfigPath("." + internal.ApplicationName)
	v.SetConfigName("config")
	if err := v.ReadInConfig(); err == nil {
		return nil
	}

	// 3. look for ~/.<appname>.yaml
	home, err := homedir.Dir()
	if err == nil {
		v.AddConfigPath(home)
		v.SetConfigName("." + internal.ApplicationName)
		if err := v.ReadInConfig(); err == nil {
			return nil
		}
	}

	// 4. look for <appname>/config.yaml in xdg locations (starting with xdg home config dir, then moving upwards)
	v.AddConfigPath(path.Join(xdg.ConfigHome, internal.ApplicationName))
	for _, dir := range xdg.ConfigDirs {
		v.AddConfigPath(path.Join(dir, internal.ApplicationName))
	}
	v.SetConfigName("config")
	if err := v.ReadInConfig(); err == nil {
		return nil
	}

	return fmt.Errorf("application config not found")
}

func (cfg Application) String() string {
	// yaml is pretty human friendly (at least when compared to json)
	appCfgStr, err := yaml.Marshal(&cfg)

	if err != nil {
		return err.Error()
	}

	return string(appCfgStr)
}
