// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"github.com/spf13/viper"
)

const (
	// DefaultConfigFileName default configuration filename under doclink home folder
	DefaultConfigFileName = "config"
	// DoclinkHomeDir defines the doclink home location
	DoclinkHomeDir = ".doclink"
)

// Options data structure with all the options for doclink
type Options struct {
	Source           string `mapstructure:"source"`
	Branch           string `mapstructure:"branch"`
	SymbolGraphDir   string `mapstructure:"symbol-graph-dir"`
	BundleManifest   string `mapstructure:"bundle"`
	CacheHomeDir     string `mapstructure:"cache-dir"`
	GhOAuthToken     string `mapstructure:"github-oauth-token"`
	GhHost           string `mapstructure:"github-host"`
	FailFast         bool   `mapstructure:"fail-fast"`
	ForceChildSuffix bool   `mapstructure:"force-child-disambiguation"`
}

// NewOptions creates an options object from the bound viper configuration
func NewOptions(vip *viper.Viper) (*Options, error) {
	options := &Options{}
	if err := vip.Unmarshal(options); err != nil {
		return nil, err
	}
	return options, nil
}
