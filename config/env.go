package config

import (
	"errors"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"
)

var (
	// AllowFlags defines processing the cli arguments
	// true by default
	// false when embedded into a host that owns the flag set
	AllowFlags = true
	// EnvPrefix defines name prefix for environment variables
	// with struct-path selector and value, for example:
	//    MEMTHOL_TIMEKIT_SKEWTOLERANCE=5ms
	EnvPrefix = "MEMTHOL_"
	// ConfigEnv defines environment variable for config file path, overrides the ConfigName
	ConfigEnv = "MEMTHOL_CONFIG"
	// ConfigName defines default filename for look in work directory if ConfigEnv is empty
	ConfigName = "memthol_config.yaml"
)

func applyFlags() {
	if !AllowFlags {
		return
	}
	/* as applyFlags (via GetConfig) may be called in tests init
	and std flag doesn't support it, using github.com/spf13/pflag instead */
	flags := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	flags.StringVar(&EnvPrefix, "env-prefix", "MEMTHOL_",
		`prefix for environment variables, "MEMTHOL_" by default`)
	flags.StringVar(&ConfigEnv, "config-env", "MEMTHOL_CONFIG",
		`environment variable for config file path, "MEMTHOL_CONFIG" by default`)
	_ = flags.Parse(os.Args[1:])

	ConfigEnv = strings.TrimPrefix(ConfigEnv, "MEMTHOL_")
	ConfigEnv = strings.TrimPrefix(ConfigEnv, EnvPrefix)
	ConfigEnv = EnvPrefix + ConfigEnv
}

func applyEnv(v ...interface{}) error {
	var ee []error
	for i := range v {
		if err := env.ParseWithOptions(v[i], env.Options{Prefix: EnvPrefix}); err != nil {
			ee = append(ee, err)
		}
	}
	if len(ee) > 0 {
		return errors.Join(ee...)
	}
	return nil
}
