package forward

import (
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultEndpoint is the port forward assignment api.
	DefaultEndpoint = "https://www.privateinternetaccess.com/vpninfo/port_forward_assignment"
	// DefaultInterface is the tunnel device created by the openvpn client.
	DefaultInterface = "tun0"
	// DefaultTimeout bounds the api exchange, in seconds.
	DefaultTimeout = 10
)

// Configuration holds the options for a single run. Values come from
// defaults, PIAFWD_* environment variables, and command line flags,
// in rising order of precedence. There is no config file.
type Configuration struct {
	Interface string
	Endpoint  string
	Timeout   int
	Verbosity string
	Debug     bool
	Keyring   bool
}

// ReadConfig assembles the configuration for this run.
func ReadConfig() (Configuration, error) {
	config := Configuration{}
	viper.SetDefault("interface", DefaultInterface)
	viper.SetDefault("endpoint", DefaultEndpoint)
	viper.SetDefault("timeout", DefaultTimeout)
	viper.SetDefault("verbosity", "INFO")
	viper.SetDefault("debug", false)
	viper.SetDefault("keyring", false)
	viper.SetEnvPrefix("PIAFWD")
	viper.AutomaticEnv()
	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}
	if config.Debug {
		config.Verbosity = "DEBUG"
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	return config, nil
}

// HTTPTimeout converts the configured timeout for use by an http client.
func (c Configuration) HTTPTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
