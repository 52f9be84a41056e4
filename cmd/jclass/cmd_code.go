package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/jclass/classfile"
	"github.com/spf13/cobra"
)

func newCodeCmd() *cobra.Command {
	var methodName string

	cmd := &cobra.Command{
		Use:   "code <file>",
		Short: "Show the bytecode of a class's methods",
		Long: `Show the Code attribute of each method: stack and local sizes, the
exception table, line numbers and a hex dump of the bytecode.

Examples:
  jclass code Greeter.class
  jclass code -m greet app.jar!com/example/Greeter.class`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readClassBytes(args[0])
			if err != nil {
				return err
			}
			cf, err := classfile.Parse(data)
			if err != nil {
				return fmt.Errorf("parse class file: %w", err)
			}
			return writeCode(os.Stdout, cf, methodName)
		},
	}

	cmd.Flags().StringVarP(&methodName, "method", "m", "", "only show methods with this name")

	return cmd
}

func writeCode(w io.Writer, cf *classfile.ClassFile, methodName string) error {
	cp := cf.ConstantPool
	matched := false

	for i := range cf.Methods {
		m := &cf.Methods[i]
		name := m.Name(cp)
		if methodName != "" && name != methodName {
			continue
		}
		matched = true

		fmt.Fprintf(w, "%s%s\n", name, m.Descriptor(cp))

		code, err := m.Code(cp)
		if err != nil {
			return fmt.Errorf("decode Code attribute of %s: %w", name, err)
		}
		if code == nil {
			fmt.Fprintf(w, "  (no code)\n\n")
			continue
		}

		fmt.Fprintf(w, "  stack=%d locals=%d length=%d\n", code.MaxStack, code.MaxLocals, len(code.Code))

		for _, entry := range code.ExceptionTable {
			catch := "any"
			if entry.CatchType != 0 {
				catch = cp.GetClassName(entry.CatchType)
			}
			fmt.Fprintf(w, "  try [%d, %d) handler=%d catch=%s\n",
				entry.StartPC, entry.EndPC, entry.HandlerPC, catch)
		}

		if attr := code.Attributes.Get(cp, "LineNumberTable"); attr != nil {
			table, err := attr.AsLineNumberTable()
			if err != nil {
				return fmt.Errorf("decode LineNumberTable of %s: %w", name, err)
			}
			for _, e := range table.Entries {
				fmt.Fprintf(w, "  line %d: pc %d\n", e.LineNumber, e.StartPC)
			}
		}

		fmt.Fprint(w, hex.Dump(code.Code))
		fmt.Fprintln(w)
	}

	if !matched && methodName != "" {
		return fmt.Errorf("no method named %q in %s", methodName, cf.ClassName())
	}

	if cf.CodeNameIndex != 0 {
		fmt.Fprintf(w, "Code attributes share pool entry #%d, %d bytes in total.\n",
			cf.CodeNameIndex, len(cf.CodeBodies))
	}
	return nil
}
