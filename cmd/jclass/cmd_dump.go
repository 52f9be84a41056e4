package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhamidi/jclass/format"
	"github.com/dhamidi/jclass/jar"
	"github.com/dhamidi/jclass/java"
	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Decode a class file and print its model",
		Long: `Decode a compiled class and print the resulting model.

The file is a .class file, or an entry inside an archive addressed as
archive.jar!com/example/Foo.class.

Examples:
  jclass dump Greeter.class
  jclass dump -f json app.jar!com/example/Greeter.class`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readClassBytes(args[0])
			if err != nil {
				return err
			}

			model, err := java.ClassModelFromBytes(data)
			if err != nil {
				return fmt.Errorf("parse class file: %w", err)
			}

			enc, err := format.New(outputFormat, os.Stdout)
			if err != nil {
				return err
			}
			if err := enc.Encode(model); err != nil {
				return fmt.Errorf("encode %s: %w", outputFormat, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (json, text)")

	return cmd
}

// readClassBytes loads a compiled class either straight from a .class
// file or from inside an archive using path!entry addressing.
func readClassBytes(target string) ([]byte, error) {
	if archive, entry, ok := strings.Cut(target, "!"); ok {
		return jar.Extract(archive, entry)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("read class file: %w", err)
	}
	return data, nil
}
