// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// blkid-low probes a block device or disk image for filesystem, RAID,
// volume-manager and encrypted-container signatures and prints the tags it
// finds, one NAME=value pair per line.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aerusso/go-blkid/blkid"
)

type rootOptions struct {
	offset     int64
	size       int64
	matchTypes []string
	usages     []string
	invert     bool
	all        bool
	verbose    bool
}

var opts rootOptions

var rootCmd = &cobra.Command{
	Use:           "blkid-low <device>",
	Short:         "Low-level probing of block device signatures.",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

var usageClasses = map[string]blkid.Usage{
	"filesystem": blkid.UsageFilesystem,
	"raid":       blkid.UsageRAID,
	"crypto":     blkid.UsageCrypto,
	"other":      blkid.UsageOther,
}

func runRoot(cmd *cobra.Command, args []string) error {
	logger := zap.NewNop()

	if opts.verbose {
		var err error

		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}

		defer logger.Sync() //nolint:errcheck
	}

	f, err := os.OpenFile(args[0], os.O_RDONLY, 0)
	if err != nil {
		return err
	}

	defer f.Close() //nolint:errcheck

	pr := blkid.New()

	if err = pr.SetDevice(f, opts.offset, opts.size); err != nil {
		return err
	}

	pr.SetRequest(blkid.RequestAll)

	if len(opts.matchTypes) > 0 {
		if err = pr.FilterTypes(blkid.FilterOnlyIn, opts.matchTypes...); err != nil {
			return err
		}
	}

	if len(opts.usages) > 0 {
		var mask blkid.Usage

		for _, name := range opts.usages {
			class, ok := usageClasses[strings.ToLower(name)]
			if !ok {
				return fmt.Errorf("unknown usage class %q", name)
			}

			mask |= class
		}

		if err = pr.FilterUsage(blkid.FilterOnlyIn, mask); err != nil {
			return err
		}
	}

	if opts.invert {
		if err = pr.InvertFilter(); err != nil {
			return err
		}
	}

	logger.Info("probing", zap.String("device", args[0]),
		zap.Int64("offset", opts.offset), zap.Int64("size", pr.Size()))

	found := false

	for pr.Next() {
		found = true

		for n := 0; n < pr.NumValues(); n++ {
			name, data, ok := pr.GetValue(n)
			if !ok {
				continue
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", name, strings.TrimRight(string(data), "\x00"))
		}

		if !opts.all {
			break
		}
	}

	if !found {
		logger.Info("no signature found")
	}

	return nil
}

func main() {
	rootCmd.Flags().Int64Var(&opts.offset, "offset", 0, "byte offset of the probing window")
	rootCmd.Flags().Int64Var(&opts.size, "size", 0, "size of the probing window (0 = whole device)")
	rootCmd.Flags().StringSliceVar(&opts.matchTypes, "match-types", nil, "probe only the listed type names")
	rootCmd.Flags().StringSliceVar(&opts.usages, "usages", nil, "probe only the listed usage classes")
	rootCmd.Flags().BoolVar(&opts.invert, "invert", false, "invert the filter")
	rootCmd.Flags().BoolVar(&opts.all, "all", false, "report all co-existing signatures, not just the first")
	rootCmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "blkid-low: %v\n", err)
		os.Exit(1)
	}
}
