package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dhamidi/jclass/classfile"
	"github.com/spf13/cobra"
)

func newPoolCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pool <file>",
		Short: "List the constant pool of a class file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readClassBytes(args[0])
			if err != nil {
				return err
			}
			cf, err := classfile.Parse(data)
			if err != nil {
				return fmt.Errorf("parse class file: %w", err)
			}
			return writePool(os.Stdout, cf)
		},
	}
}

func writePool(w io.Writer, cf *classfile.ClassFile) error {
	fmt.Fprintf(w, "%s (version %d.%d, %d constants)\n",
		cf.ClassName(), cf.MajorVersion, cf.MinorVersion, len(cf.ConstantPool)-1)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i := 1; i < len(cf.ConstantPool); i++ {
		entry := cf.ConstantPool[i]
		if entry == nil {
			// second slot of the preceding Long or Double
			fmt.Fprintf(tw, "#%d\t\t\n", i)
			continue
		}
		fmt.Fprintf(tw, "#%d\t%s\t%s\n", i, entry.Tag(), describePoolEntry(cf.ConstantPool, entry))
	}
	return tw.Flush()
}

func describePoolEntry(cp classfile.ConstantPool, entry classfile.ConstantPoolEntry) string {
	switch e := entry.(type) {
	case *classfile.Utf8:
		return fmt.Sprintf("%q", e.Value)
	case *classfile.Integer:
		return fmt.Sprintf("%d", e.Value)
	case *classfile.Float:
		return fmt.Sprintf("%g", e.Value)
	case *classfile.Long:
		return fmt.Sprintf("%d", e.Value)
	case *classfile.Double:
		return fmt.Sprintf("%g", e.Value)
	case *classfile.ClassRef:
		return cp.GetUtf8(e.NameIndex)
	case *classfile.StringRef:
		return fmt.Sprintf("%q", cp.GetUtf8(e.StringIndex))
	case *classfile.FieldRef:
		name, descriptor := cp.GetNameAndType(e.NameAndTypeIndex)
		return fmt.Sprintf("%s.%s:%s", cp.GetClassName(e.ClassIndex), name, descriptor)
	case *classfile.MethodRef:
		name, descriptor := cp.GetNameAndType(e.NameAndTypeIndex)
		return fmt.Sprintf("%s.%s:%s", cp.GetClassName(e.ClassIndex), name, descriptor)
	case *classfile.InterfaceMethodRef:
		name, descriptor := cp.GetNameAndType(e.NameAndTypeIndex)
		return fmt.Sprintf("%s.%s:%s", cp.GetClassName(e.ClassIndex), name, descriptor)
	case *classfile.NameAndType:
		return fmt.Sprintf("%s:%s", cp.GetUtf8(e.NameIndex), cp.GetUtf8(e.DescriptorIndex))
	case *classfile.MethodHandle:
		return fmt.Sprintf("kind=%d #%d", e.ReferenceKind, e.ReferenceIndex)
	case *classfile.MethodType:
		return cp.GetUtf8(e.DescriptorIndex)
	case *classfile.InvokeDynamic:
		name, descriptor := cp.GetNameAndType(e.NameAndTypeIndex)
		return fmt.Sprintf("bootstrap=#%d %s:%s", e.BootstrapMethodAttrIndex, name, descriptor)
	}
	return ""
}
