// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func configureFlags(command *cobra.Command, vip *viper.Viper) {
	command.PersistentFlags().StringP("source", "s", ".",
		"Source of the bundle inputs: a local directory, a git clone URL or github://owner/repo.")
	_ = vip.BindPFlag("source", command.PersistentFlags().Lookup("source"))

	command.PersistentFlags().String("branch", "",
		"Branch or ref to read from git and GitHub sources.")
	_ = vip.BindPFlag("branch", command.PersistentFlags().Lookup("branch"))

	command.PersistentFlags().StringP("symbol-graph-dir", "g", "symbol-graphs",
		"Directory holding the *.symbols.json files, relative to the source.")
	_ = vip.BindPFlag("symbol-graph-dir", command.PersistentFlags().Lookup("symbol-graph-dir"))

	command.PersistentFlags().StringP("bundle", "b", "",
		"Path of the bundle manifest declaring articles, tutorials and technologies, relative to the source.")
	_ = vip.BindPFlag("bundle", command.PersistentFlags().Lookup("bundle"))

	command.PersistentFlags().String("cache-dir", "",
		"Directory backing the GitHub transport cache. Empty disables persistent caching.")
	_ = vip.BindPFlag("cache-dir", command.PersistentFlags().Lookup("cache-dir"))

	command.PersistentFlags().String("github-oauth-token", "",
		"GitHub personal access token used for github:// sources.")
	_ = vip.BindPFlag("github-oauth-token", command.PersistentFlags().Lookup("github-oauth-token"))

	command.PersistentFlags().String("github-host", "",
		"GitHub API host for enterprise instances. Empty means github.com.")
	_ = vip.BindPFlag("github-host", command.PersistentFlags().Lookup("github-host"))

	command.PersistentFlags().Bool("fail-fast", false,
		"Fail-fast vs fault tolerant operation.")
	_ = vip.BindPFlag("fail-fast", command.PersistentFlags().Lookup("fail-fast"))

	command.PersistentFlags().Bool("force-child-disambiguation", false,
		"Disambiguate children of disambiguated containers even when unambiguous, keeping their URLs stable across sibling edits.")
	_ = vip.BindPFlag("force-child-disambiguation", command.PersistentFlags().Lookup("force-child-disambiguation"))
}
