package cmd

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/gtank/blake2s"
	"github.com/gtank/blake2s/internal/logging"
	"github.com/multiformats/go-multihash"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const stdinName = "-"

// errMismatch is returned when --expect does not match a computed digest.
var errMismatch = errors.New("digest mismatch")

type sumOptions struct {
	size      int
	key       []byte
	multihash bool
	expect    []byte
}

func (c *command) initSumCmd() {
	c.root.Args = cobra.ArbitraryArgs
	c.root.PreRunE = func(cmd *cobra.Command, args []string) error {
		return c.config.BindPFlags(cmd.Flags())
	}
	c.root.RunE = func(cmd *cobra.Command, args []string) error {
		logger, err := logging.NewVerbosity(cmd.ErrOrStderr(), c.config.GetString(optionNameVerbosity))
		if err != nil {
			return err
		}
		if used := c.config.ConfigFileUsed(); used != "" {
			logger.Debugf("using config file %s", used)
		}

		o, err := c.sumOptions()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			args = []string{stdinName}
		}

		var failed bool
		for _, name := range args {
			if err := c.sumOne(cmd, logger, o, name); err != nil {
				if !errors.Is(err, errMismatch) {
					return err
				}
				failed = true
			}
		}
		if failed {
			return errMismatch
		}
		return nil
	}

	flags := c.root.Flags()
	flags.Int(optionNameSize, blake2s.Size, "digest size in bytes (1-32)")
	flags.String(optionNameKey, "", "hex encoded key (1-32 bytes) for keyed hashing")
	flags.Bool(optionNameMultihash, false, "print digests as base58 multihashes")
	flags.String(optionNameExpect, "", "hex encoded digest every input is expected to hash to")
}

func (c *command) sumOptions() (o sumOptions, err error) {
	o.size = c.config.GetInt(optionNameSize)
	if o.size <= 0 || o.size > blake2s.Size {
		return o, errors.Errorf("invalid %s %d: must be between 1 and %d", optionNameSize, o.size, blake2s.Size)
	}

	if k := c.config.GetString(optionNameKey); k != "" {
		o.key, err = hex.DecodeString(k)
		if err != nil {
			return o, errors.Wrapf(err, "decode %s", optionNameKey)
		}
	}

	if e := c.config.GetString(optionNameExpect); e != "" {
		o.expect, err = hex.DecodeString(e)
		if err != nil {
			return o, errors.Wrapf(err, "decode %s", optionNameExpect)
		}
	}

	o.multihash = c.config.GetBool(optionNameMultihash)
	return o, nil
}

func (c *command) sumOne(cmd *cobra.Command, logger logging.Logger, o sumOptions, name string) (err error) {
	var r io.Reader
	if name == stdinName {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	d, err := blake2s.NewDigest(o.key, o.size)
	if err != nil {
		return err
	}
	n, err := io.Copy(d, r)
	if err != nil {
		return errors.Wrapf(err, "read %s", name)
	}
	sum := d.Sum(nil)

	logger.WithFields(logrus.Fields{
		"file":  name,
		"bytes": n,
		"keyed": len(o.key) > 0,
	}).Debug("hashed")

	out, err := formatDigest(sum, o.multihash)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", out, name)

	if o.expect != nil {
		valid := bytes.Equal(sum, o.expect)
		fmt.Fprintf(cmd.OutOrStdout(), "valid: %t\n", valid)
		if !valid {
			logger.Warningf("%s: got %x, want %x", name, sum, o.expect)
			return errors.Wrap(errMismatch, name)
		}
	}
	return nil
}

// formatDigest renders sum as hex, or as a base58 multihash tagged with the
// blake2s code for its length.
func formatDigest(sum []byte, asMultihash bool) (string, error) {
	if !asMultihash {
		return hex.EncodeToString(sum), nil
	}
	code := uint64(multihash.BLAKE2S_MIN) + uint64(len(sum)) - 1
	mh, err := multihash.Encode(sum, code)
	if err != nil {
		return "", errors.Wrap(err, "encode multihash")
	}
	return multihash.Multihash(mh).B58String(), nil
}
