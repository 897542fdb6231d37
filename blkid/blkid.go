// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package blkid identifies the content of block devices and disk images:
// filesystems, RAID member superblocks, volume-manager headers and
// encrypted containers.
//
// The low-level surface is the Probe session: bind a device with
// SetDevice, select attributes with SetRequest, optionally restrict the
// format set with the filter calls, then iterate Next and read the
// collected values. ProbeFile and ProbePath wrap that loop for the common
// "tell me everything on this device" case.
package blkid

import (
	"bytes"
	"os"

	"github.com/siderolabs/go-pointer"
	"go.uber.org/zap"
)

// Result describes one detected signature.
type Result struct {
	// Name is the format type name, e.g. "ext4" or "crypto_LUKS".
	Name string

	// Usage is the textual usage class: filesystem, raid, crypto, other.
	Usage string

	Label   *string
	UUID    *string
	Version *string
}

// Info is the result of probing a device end to end.
type Info struct {
	// Size of the probed device in bytes.
	Size int64

	// SectorSize of the device in bytes.
	SectorSize uint

	// Results holds every detected signature, in registry order.
	Results []Result
}

// ProbeOptions is the options for the high-level probing front end.
type ProbeOptions struct {
	// Logger to use for logging.
	Logger *zap.Logger
}

// ProbeOption is an option for probing.
type ProbeOption func(*ProbeOptions)

// WithLogger sets the logger for the probe.
func WithLogger(logger *zap.Logger) ProbeOption {
	return func(o *ProbeOptions) {
		o.Logger = logger
	}
}

func applyProbeOptions(opts ...ProbeOption) ProbeOptions {
	o := ProbeOptions{
		Logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// ProbeFile probes the whole file for every signature the registry knows,
// collecting all attributes.
func ProbeFile(f *os.File, opts ...ProbeOption) ([]Result, error) {
	options := applyProbeOptions(opts...)

	pr := New()

	if err := pr.SetDevice(f, 0, 0); err != nil {
		return nil, err
	}

	pr.SetRequest(RequestAll)

	var results []Result

	for pr.Next() {
		res := Result{}

		if data, ok := pr.LookupValue("TYPE"); ok {
			res.Name = textValue(data)
		}

		if data, ok := pr.LookupValue("USAGE"); ok {
			res.Usage = textValue(data)
		}

		if data, ok := pr.LookupValue("LABEL"); ok {
			res.Label = pointer.To(textValue(data))
		}

		if data, ok := pr.LookupValue("UUID"); ok {
			res.UUID = pointer.To(textValue(data))
		}

		if data, ok := pr.LookupValue("VERSION"); ok {
			res.Version = pointer.To(textValue(data))
		}

		options.Logger.Debug("signature detected",
			zap.String("type", res.Name),
			zap.String("usage", res.Usage),
		)

		results = append(results, res)
	}

	return results, nil
}

// textValue converts a stored text value, dropping the terminating NUL.
func textValue(data []byte) string {
	return string(bytes.TrimRight(data, "\x00"))
}
