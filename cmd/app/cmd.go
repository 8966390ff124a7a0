// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"

	"github.com/gardener/doclink/cmd/version"
	"github.com/gardener/doclink/pkg/diagnostics"
	"github.com/gardener/doclink/pkg/reference"
)

// NewCommand creates the doclink root command and propagates the context to
// its subcommands' Run callback closures
func NewCommand(ctx context.Context) *cobra.Command {
	vip := viper.New()
	cmd := &cobra.Command{
		Use:   "doclink",
		Short: "Resolve and address documentation links over symbol graphs",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			klog.V(2).Infof("run %s", uuid.New().String())
		},
	}
	configureFlags(cmd, vip)
	configureConfigFile(vip)

	cmd.AddCommand(newResolveCmd(ctx, vip))
	cmd.AddCommand(newPathsCmd(ctx, vip))
	cmd.AddCommand(newDumpCmd(ctx, vip))
	cmd.AddCommand(version.NewVersionCmd())
	cmd.AddCommand(newCompletionCmd())

	klog.InitFlags(nil)
	return cmd
}

func configureConfigFile(vip *viper.Viper) {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	vip.AddConfigPath(filepath.Join(home, DoclinkHomeDir))
	vip.SetConfigName(DefaultConfigFileName)
	if err := vip.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			klog.Warningf("loading configuration file failed: %v", err)
		}
	}
}

func newResolveCmd(ctx context.Context, vip *viper.Viper) *cobra.Command {
	var (
		parentPath string
		symbolLink bool
	)
	cmd := &cobra.Command{
		Use:   "resolve <link>",
		Short: "Resolve a documentation link to its canonical page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			options, err := NewOptions(vip)
			if err != nil {
				return err
			}
			r, err := buildResolver(ctx, options)
			if err != nil {
				return err
			}
			var parent *reference.Identifier
			if parentPath != "" {
				if identifier, found := r.IdentifierForPath(parentPath); found {
					parent = identifier
				} else {
					klog.Warningf("parent %s does not name a known page", parentPath)
				}
			}
			identifier, err := r.Resolve(args[0], parent, symbolLink)
			if err != nil {
				report := diagnostics.Format(args[0], err)
				fmt.Fprintln(cmd.ErrOrStderr(), report.Message)
				for _, solution := range report.Solutions {
					fmt.Fprintf(cmd.ErrOrStderr(), "  fix: %s\n", solution.Summary)
				}
				return err
			}
			resolved, _ := r.ResolvedReference(identifier)
			fmt.Fprintln(cmd.OutOrStdout(), resolved.Path)
			return nil
		},
	}
	cmd.Flags().StringVar(&parentPath, "parent", "", "Canonical path of the page the link appears on.")
	cmd.Flags().BoolVar(&symbolLink, "symbol-link", false, "Treat the link as a doubled-backtick symbol link.")
	return cmd
}

func newPathsCmd(ctx context.Context, vip *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the canonical minimal path of every symbol",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			options, err := NewOptions(vip)
			if err != nil {
				return err
			}
			r, err := buildResolver(ctx, options)
			if err != nil {
				return err
			}
			paths := r.Hierarchy().DisambiguatedPaths(options.ForceChildSuffix)
			keys := make([]string, 0, len(paths))
			for precise := range paths {
				keys = append(keys, precise)
			}
			sort.Strings(keys)
			for _, precise := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", precise, paths[precise])
			}
			return nil
		},
	}
}

func newDumpCmd(ctx context.Context, vip *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Pretty-print the path hierarchy",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			options, err := NewOptions(vip)
			if err != nil {
				return err
			}
			r, err := buildResolver(ctx, options)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), r.Hierarchy().Dump())
			return nil
		},
	}
}
