package classfile

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

// The encoders below exist only to check that decoding is lossless:
// re-encoding a decoded class file must reproduce the original image
// byte for byte. They cover ASCII identifiers, which is all the
// builders in this package emit.

func encodeClassFile(cf *ClassFile) []byte {
	buf := binary.BigEndian.AppendUint32(nil, Magic)
	buf = binary.BigEndian.AppendUint16(buf, cf.MinorVersion)
	buf = binary.BigEndian.AppendUint16(buf, cf.MajorVersion)
	buf = append(buf, encodeConstantPool(cf.ConstantPool)...)
	buf = binary.BigEndian.AppendUint16(buf, uint16(cf.AccessFlags))
	buf = binary.BigEndian.AppendUint16(buf, cf.ThisClass)
	buf = binary.BigEndian.AppendUint16(buf, cf.SuperClass)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(cf.Interfaces)))
	for _, idx := range cf.Interfaces {
		buf = binary.BigEndian.AppendUint16(buf, idx)
	}
	buf = append(buf, encodeMembers(cf.Fields)...)
	buf = append(buf, encodeMembers(cf.Methods)...)
	buf = append(buf, encodeAttributeTable(&cf.Attributes)...)
	return buf
}

func encodeConstantPool(cp ConstantPool) []byte {
	buf := binary.BigEndian.AppendUint16(nil, uint16(len(cp)))
	for i := 1; i < len(cp); i++ {
		if cp[i] == nil {
			continue
		}
		buf = encodeConstantPoolEntry(buf, cp[i])
	}
	return buf
}

func encodeConstantPoolEntry(buf []byte, entry ConstantPoolEntry) []byte {
	buf = append(buf, byte(entry.Tag()))
	switch e := entry.(type) {
	case *Utf8:
		buf = binary.BigEndian.AppendUint16(buf, uint16(len(e.Value)))
		buf = append(buf, e.Value...)
	case *Integer:
		buf = binary.BigEndian.AppendUint32(buf, uint32(e.Value))
	case *Float:
		buf = binary.BigEndian.AppendUint32(buf, math.Float32bits(e.Value))
	case *Long:
		buf = binary.BigEndian.AppendUint64(buf, uint64(e.Value))
	case *Double:
		buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(e.Value))
	case *ClassRef:
		buf = binary.BigEndian.AppendUint16(buf, e.NameIndex)
	case *StringRef:
		buf = binary.BigEndian.AppendUint16(buf, e.StringIndex)
	case *FieldRef:
		buf = binary.BigEndian.AppendUint16(buf, e.ClassIndex)
		buf = binary.BigEndian.AppendUint16(buf, e.NameAndTypeIndex)
	case *MethodRef:
		buf = binary.BigEndian.AppendUint16(buf, e.ClassIndex)
		buf = binary.BigEndian.AppendUint16(buf, e.NameAndTypeIndex)
	case *InterfaceMethodRef:
		buf = binary.BigEndian.AppendUint16(buf, e.ClassIndex)
		buf = binary.BigEndian.AppendUint16(buf, e.NameAndTypeIndex)
	case *NameAndType:
		buf = binary.BigEndian.AppendUint16(buf, e.NameIndex)
		buf = binary.BigEndian.AppendUint16(buf, e.DescriptorIndex)
	case *MethodHandle:
		buf = append(buf, byte(e.ReferenceKind))
		buf = binary.BigEndian.AppendUint16(buf, e.ReferenceIndex)
	case *MethodType:
		buf = binary.BigEndian.AppendUint16(buf, e.DescriptorIndex)
	case *InvokeDynamic:
		buf = binary.BigEndian.AppendUint16(buf, e.BootstrapMethodAttrIndex)
		buf = binary.BigEndian.AppendUint16(buf, e.NameAndTypeIndex)
	}
	return buf
}

func encodeMembers(members []Member) []byte {
	buf := binary.BigEndian.AppendUint16(nil, uint16(len(members)))
	for i := range members {
		m := &members[i]
		buf = binary.BigEndian.AppendUint16(buf, uint16(m.AccessFlags))
		buf = binary.BigEndian.AppendUint16(buf, m.NameIndex)
		buf = binary.BigEndian.AppendUint16(buf, m.DescriptorIndex)
		buf = append(buf, encodeAttributeTable(&m.Attributes)...)
	}
	return buf
}

func encodeAttributeTable(table *AttributeTable) []byte {
	buf := binary.BigEndian.AppendUint16(nil, uint16(len(table.Entries)))
	for i := range table.Entries {
		attr := &table.Entries[i]
		buf = binary.BigEndian.AppendUint16(buf, attr.NameIndex)
		buf = binary.BigEndian.AppendUint32(buf, attr.Length)
		buf = append(buf, attr.Info...)
	}
	return buf
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"minimal class", minimalClass()},
		{"full class", buildTestClass()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cf, err := Parse(tt.data)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			encoded := encodeClassFile(cf)
			if !bytes.Equal(encoded, tt.data) {
				t.Errorf("re-encoded image differs from original\n got %v\nwant %v", encoded, tt.data)
			}
		})
	}
}

func TestRoundTripAttributeSpan(t *testing.T) {
	cf, err := Parse(buildTestClass())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// Span plus the leading count is exactly the encoded size of the
	// table.
	for _, table := range []*AttributeTable{&cf.Attributes, &cf.Fields[0].Attributes, &cf.Methods[0].Attributes} {
		encoded := encodeAttributeTable(table)
		if int(table.Span)+2 != len(encoded) {
			t.Errorf("Span = %d, encoded size = %d", table.Span, len(encoded))
		}
	}
}
