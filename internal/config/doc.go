// Package config loads termmeta.yaml with viper.
//
// Every key has a default and can be overridden from the environment with the
// TERMMETA_ prefix, dots replaced by underscores:
//
//	TERMMETA_STORAGE_DRIVER=sqlite TERMMETA_STORAGE_DSN=file:meta.db termmeta serve
package config
