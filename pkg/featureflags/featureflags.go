// Package featureflags implements the flag readers used to gate classifier
// behavior. A failed or absent flag read degrades to the empty string, which
// classifiers treat as "feature off" rather than an error.
package featureflags

import "github.com/spf13/viper"

// Static is a fixed flag set, mainly useful in tests.
type Static map[string]string

func (s Static) GetFlag(key string) string {
	return s[key]
}

// Viper reads flags from the loaded config file under the "flags" key,
// e.g. flags.ia-supported-entities in ~/.affscope.yaml.
type Viper struct{}

func (Viper) GetFlag(key string) string {
	return viper.GetString("flags." + key)
}
