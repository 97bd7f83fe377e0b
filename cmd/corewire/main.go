// corewire converts asset and collection records between YAML fixtures and
// their binary account layout.
//
// Usage:
//
//	corewire encode [flags] <fixture.yaml>
//	corewire inspect <record>
//	corewire royalties [flags] <record>
//	corewire create-data <fixture.yaml>
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	if os.Getenv("COREWIRE_DEBUG") != "" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	if err := run(os.Args[1], os.Args[2:], os.Stdout, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd string, args []string, stdout io.Writer, logger *slog.Logger) error {
	switch cmd {
	case "encode":
		return encodeCmd(args, stdout, logger)
	case "inspect":
		return inspectCmd(args, stdout, logger)
	case "royalties":
		return royaltiesCmd(args, stdout, logger)
	case "create-data":
		return createDataCmd(args, stdout, logger)
	case "help", "--help", "-h":
		printUsage()
		return nil
	}
	printUsage()
	return fmt.Errorf("unknown command %q", cmd)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: corewire <command> [flags] [args]

Commands:
  encode <fixture.yaml>       Encode a YAML fixture into a binary record
  inspect <record>            Decode a binary record back into YAML
  royalties <record>          Print the royalty schedule of a record
  create-data <fixture.yaml>  Print the create instruction payload as hex

Set COREWIRE_DEBUG=1 for debug logging.
`)
}
