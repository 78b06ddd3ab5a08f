// Package config manages persistent CLI configuration via Viper,
// backed by ~/.declget/config.yaml and DECLGET_* environment variables.
package config
