package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/corewire/pkg/frame"
	"github.com/rawbytedev/corewire/pkg/layout"
	"github.com/rawbytedev/corewire/pkg/royalty"
	"github.com/rawbytedev/corewire/pkg/wire"
)

var errUsage = errors.New("wrong number of arguments")

// newFlagSet returns a flag set that reports errors instead of exiting.
func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false
	return fs
}

func oneArg(fs *pflag.FlagSet, what string) (string, error) {
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%s: expected %s: %w", fs.Name(), what, errUsage)
	}
	return fs.Arg(0), nil
}

func encodeCmd(args []string, stdout io.Writer, logger *slog.Logger) error {
	fs := newFlagSet("encode")
	out := fs.StringP("out", "o", "", "write the record to this file instead of stdout")
	compressed := fs.Bool("zstd", false, "zstd-compress the record")
	framed := fs.Bool("frame", false, "wrap the record in a checksummed frame")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := oneArg(fs, "one fixture file")
	if err != nil {
		return err
	}

	f, err := loadFixture(path)
	if err != nil {
		return err
	}
	rec, err := f.Record()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	buf := make([]byte, rec.EncodedSize())
	n, err := rec.EncodeTo(buf)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	buf = buf[:n]
	logger.Info("encoded record",
		"kind", f.Kind,
		"plugins", len(f.Plugins),
		"bytes", n,
		"blake3", digest(buf),
	)

	if *compressed {
		if buf, err = compress(buf); err != nil {
			return fmt.Errorf("compressing: %w", err)
		}
		logger.Debug("compressed record", "bytes", len(buf))
	}
	if *framed {
		var flags frame.Flags
		if *compressed {
			flags |= frame.Compressed
		}
		if buf, err = frame.Append(nil, buf, flags); err != nil {
			return fmt.Errorf("framing: %w", err)
		}
	}
	if *out == "" {
		_, err = stdout.Write(buf)
		return err
	}
	return os.WriteFile(*out, buf, 0o644)
}

// readRecord loads a binary record, unwrapping a record frame and undoing
// zstd compression when the file carries them.
func readRecord(path string, logger *slog.Logger) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if frame.IsFrame(raw) {
		payload, flags, _, err := frame.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		logger.Debug("unwrapped frame", "path", path, "flags", flags)
		if flags&frame.Compressed == 0 {
			return payload, nil
		}
		raw = payload
	} else if !isCompressed(raw) {
		return raw, nil
	}
	out, err := decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", path, err)
	}
	logger.Debug("decompressed record", "path", path, "from", len(raw), "to", len(out))
	return out, nil
}

func decodeRecord(buf []byte) (wire.Encoder, error) {
	key, _, err := layout.DecodeKey(buf)
	if err != nil {
		return nil, err
	}
	switch key {
	case layout.KeyAssetV1:
		a, _, err := layout.DecodeAsset(buf)
		return a, err
	case layout.KeyCollectionV1:
		c, _, err := layout.DecodeCollection(buf)
		return c, err
	}
	return nil, fmt.Errorf("record key %s has no fixture form", key)
}

func inspectCmd(args []string, stdout io.Writer, logger *slog.Logger) error {
	fs := newFlagSet("inspect")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := oneArg(fs, "one record file")
	if err != nil {
		return err
	}
	buf, err := readRecord(path, logger)
	if err != nil {
		return err
	}
	rec, err := decodeRecord(buf)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	f, err := fixtureOf(rec)
	if err != nil {
		return err
	}
	logger.Debug("decoded record", "path", path, "kind", f.Kind, "blake3", digest(buf))

	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return err
	}
	return enc.Close()
}

func royaltiesCmd(args []string, stdout io.Writer, logger *slog.Logger) error {
	fs := newFlagSet("royalties")
	kind := fs.String("kind", "", "expected record kind: asset or collection (default: read from the record)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := oneArg(fs, "one record file")
	if err != nil {
		return err
	}
	buf, err := readRecord(path, logger)
	if err != nil {
		return err
	}

	var key layout.Key
	switch *kind {
	case "asset":
		key = layout.KeyAssetV1
	case "collection":
		key = layout.KeyCollectionV1
	case "":
		if key, _, err = layout.DecodeKey(buf); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	default:
		return fmt.Errorf("unknown kind %q, want asset or collection", *kind)
	}

	s, err := royalty.Extract(buf, key)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Fprintf(stdout, "basis_points: %d\n", s.BasisPoints)
	for _, c := range s.Creators {
		fmt.Fprintf(stdout, "%s %d%%\n", c.Address, c.Percentage)
	}
	return nil
}

func createDataCmd(args []string, stdout io.Writer, logger *slog.Logger) error {
	fs := newFlagSet("create-data")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := oneArg(fs, "one fixture file")
	if err != nil {
		return err
	}
	f, err := loadFixture(path)
	if err != nil {
		return err
	}
	data, err := f.CreateData()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	buf := make([]byte, data.EncodedSize())
	n, err := data.EncodeTo(buf)
	if err != nil {
		return err
	}
	logger.Debug("encoded instruction data", "discriminant", data.Discriminant(), "bytes", n)
	_, err = fmt.Fprintln(stdout, hex.EncodeToString(buf[:n]))
	return err
}
