package classfile

import (
	"fmt"
	"io"
	"math"
	"os"
)

// decoder carries the state of one Parse call. codeNameIndex is the
// pool index of the Utf8 entry "Code" once one has been decoded, and
// codeBodies accumulates the raw payload of every attribute whose name
// index matches it.
type decoder struct {
	cur           *Cursor
	codeNameIndex uint16
	codeBodies    []byte
}

func ParseFile(path string) (*ClassFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read class file: %w", err)
	}
	return Parse(data)
}

func ParseReader(rd io.Reader) (*ClassFile, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to read class file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a class file image. Structures in the result reference
// sections of data directly, so the caller must not modify it
// afterwards.
func Parse(data []byte) (*ClassFile, error) {
	d := &decoder{cur: NewCursor(data)}
	return d.decode()
}

func (d *decoder) decode() (*ClassFile, error) {
	magic, err := d.cur.U4()
	if err != nil {
		return nil, fmt.Errorf("failed to read magic: %w", err)
	}
	if magic != Magic {
		return nil, &MalformedHeader{Magic: magic}
	}

	cf := &ClassFile{}
	if cf.MinorVersion, err = d.cur.U2(); err != nil {
		return nil, fmt.Errorf("failed to read version: %w", err)
	}
	if cf.MajorVersion, err = d.cur.U2(); err != nil {
		return nil, fmt.Errorf("failed to read version: %w", err)
	}

	constantPoolCount, err := d.cur.U2()
	if err != nil {
		return nil, fmt.Errorf("failed to read constant pool count: %w", err)
	}
	if cf.ConstantPool, err = d.readConstantPool(constantPoolCount); err != nil {
		return nil, err
	}

	flags, err := d.cur.U2()
	if err != nil {
		return nil, fmt.Errorf("failed to read class info: %w", err)
	}
	cf.AccessFlags = AccessFlags(flags)
	if cf.ThisClass, err = d.cur.U2(); err != nil {
		return nil, fmt.Errorf("failed to read class info: %w", err)
	}
	if cf.SuperClass, err = d.cur.U2(); err != nil {
		return nil, fmt.Errorf("failed to read class info: %w", err)
	}

	interfacesCount, err := d.cur.U2()
	if err != nil {
		return nil, fmt.Errorf("failed to read class info: %w", err)
	}
	cf.Interfaces = make([]uint16, interfacesCount)
	for i := range cf.Interfaces {
		if cf.Interfaces[i], err = d.cur.U2(); err != nil {
			return nil, fmt.Errorf("failed to read interfaces: %w", err)
		}
	}

	fieldsCount, err := d.cur.U2()
	if err != nil {
		return nil, fmt.Errorf("failed to read fields count: %w", err)
	}
	if cf.Fields, err = d.readMembers(fieldsCount, "field"); err != nil {
		return nil, err
	}

	methodsCount, err := d.cur.U2()
	if err != nil {
		return nil, fmt.Errorf("failed to read methods count: %w", err)
	}
	if cf.Methods, err = d.readMembers(methodsCount, "method"); err != nil {
		return nil, err
	}

	attributesCount, err := d.cur.U2()
	if err != nil {
		return nil, fmt.Errorf("failed to read attributes count: %w", err)
	}
	if cf.Attributes, err = d.readAttributes(attributesCount); err != nil {
		return nil, err
	}

	cf.CodeNameIndex = d.codeNameIndex
	cf.CodeBodies = d.codeBodies
	return cf, nil
}

func (d *decoder) readConstantPool(count uint16) (ConstantPool, error) {
	pool := make(ConstantPool, count)
	for i := uint16(1); i < count; i++ {
		entry, wide, err := d.readConstantPoolEntry()
		if err != nil {
			return nil, fmt.Errorf("failed to read constant pool entry %d: %w", i, err)
		}
		pool[i] = entry
		if utf8, ok := entry.(*Utf8); ok && utf8.Value == "Code" {
			d.codeNameIndex = i
		}
		if wide {
			// A Long or Double fills two pool slots. The second slot
			// stays nil and consumes no bytes.
			i++
		}
	}
	return pool, nil
}

func (d *decoder) readConstantPoolEntry() (ConstantPoolEntry, bool, error) {
	tagOffset := d.cur.Offset()
	tag, err := d.cur.U1()
	if err != nil {
		return nil, false, err
	}

	switch ConstantTag(tag) {
	case ConstantUtf8:
		raw, err := d.cur.LengthPrefixed()
		if err != nil {
			return nil, false, err
		}
		return &Utf8{Value: decodeModifiedUtf8(raw)}, false, nil

	case ConstantInteger:
		bits, err := d.cur.U4()
		if err != nil {
			return nil, false, err
		}
		return &Integer{Value: int32(bits)}, false, nil

	case ConstantFloat:
		bits, err := d.cur.U4()
		if err != nil {
			return nil, false, err
		}
		return &Float{Value: math.Float32frombits(bits)}, false, nil

	case ConstantLong:
		bits, err := d.cur.U8()
		if err != nil {
			return nil, false, err
		}
		return &Long{Value: int64(bits)}, true, nil

	case ConstantDouble:
		bits, err := d.cur.U8()
		if err != nil {
			return nil, false, err
		}
		return &Double{Value: math.Float64frombits(bits)}, true, nil

	case ConstantClass:
		nameIndex, err := d.cur.U2()
		if err != nil {
			return nil, false, err
		}
		return &ClassRef{NameIndex: nameIndex}, false, nil

	case ConstantString:
		stringIndex, err := d.cur.U2()
		if err != nil {
			return nil, false, err
		}
		return &StringRef{StringIndex: stringIndex}, false, nil

	case ConstantFieldref:
		classIndex, err := d.cur.U2()
		if err != nil {
			return nil, false, err
		}
		nameAndTypeIndex, err := d.cur.U2()
		if err != nil {
			return nil, false, err
		}
		return &FieldRef{
			ClassIndex:       classIndex,
			NameAndTypeIndex: nameAndTypeIndex,
		}, false, nil

	case ConstantMethodref:
		classIndex, err := d.cur.U2()
		if err != nil {
			return nil, false, err
		}
		nameAndTypeIndex, err := d.cur.U2()
		if err != nil {
			return nil, false, err
		}
		return &MethodRef{
			ClassIndex:       classIndex,
			NameAndTypeIndex: nameAndTypeIndex,
		}, false, nil

	case ConstantInterfaceMethodref:
		classIndex, err := d.cur.U2()
		if err != nil {
			return nil, false, err
		}
		nameAndTypeIndex, err := d.cur.U2()
		if err != nil {
			return nil, false, err
		}
		return &InterfaceMethodRef{
			ClassIndex:       classIndex,
			NameAndTypeIndex: nameAndTypeIndex,
		}, false, nil

	case ConstantNameAndType:
		nameIndex, err := d.cur.U2()
		if err != nil {
			return nil, false, err
		}
		descriptorIndex, err := d.cur.U2()
		if err != nil {
			return nil, false, err
		}
		return &NameAndType{
			NameIndex:       nameIndex,
			DescriptorIndex: descriptorIndex,
		}, false, nil

	case ConstantMethodHandle:
		kind, err := d.cur.U1()
		if err != nil {
			return nil, false, err
		}
		referenceIndex, err := d.cur.U2()
		if err != nil {
			return nil, false, err
		}
		return &MethodHandle{
			ReferenceKind:  MethodHandleKind(kind),
			ReferenceIndex: referenceIndex,
		}, false, nil

	case ConstantMethodType:
		descriptorIndex, err := d.cur.U2()
		if err != nil {
			return nil, false, err
		}
		return &MethodType{DescriptorIndex: descriptorIndex}, false, nil

	case ConstantInvokeDynamic:
		bootstrapIndex, err := d.cur.U2()
		if err != nil {
			return nil, false, err
		}
		nameAndTypeIndex, err := d.cur.U2()
		if err != nil {
			return nil, false, err
		}
		return &InvokeDynamic{
			BootstrapMethodAttrIndex: bootstrapIndex,
			NameAndTypeIndex:         nameAndTypeIndex,
		}, false, nil

	default:
		return nil, false, &UnknownConstantTag{Tag: tag, Offset: tagOffset}
	}
}

func (d *decoder) readMembers(count uint16, what string) ([]Member, error) {
	members := make([]Member, count)
	for i := range members {
		if err := d.readMember(&members[i]); err != nil {
			return nil, fmt.Errorf("failed to read %s %d: %w", what, i, err)
		}
	}
	return members, nil
}

func (d *decoder) readMember(m *Member) error {
	flags, err := d.cur.U2()
	if err != nil {
		return err
	}
	m.AccessFlags = AccessFlags(flags)
	if m.NameIndex, err = d.cur.U2(); err != nil {
		return err
	}
	if m.DescriptorIndex, err = d.cur.U2(); err != nil {
		return err
	}
	count, err := d.cur.U2()
	if err != nil {
		return err
	}
	m.Attributes, err = d.readAttributes(count)
	return err
}

func (d *decoder) readAttributes(count uint16) (AttributeTable, error) {
	table, err := readAttributeTable(d.cur, count)
	if err != nil {
		return AttributeTable{}, err
	}
	if d.codeNameIndex != 0 {
		for i := range table.Entries {
			if table.Entries[i].NameIndex == d.codeNameIndex {
				d.codeBodies = append(d.codeBodies, table.Entries[i].Info...)
			}
		}
	}
	return table, nil
}

func decodeModifiedUtf8(bytes []byte) string {
	runes := make([]rune, 0, len(bytes))
	i := 0
	for i < len(bytes) {
		b := bytes[i]
		if b&0x80 == 0 {
			runes = append(runes, rune(b))
			i++
		} else if b&0xE0 == 0xC0 {
			if i+1 >= len(bytes) {
				break
			}
			r := rune(b&0x1F)<<6 | rune(bytes[i+1]&0x3F)
			runes = append(runes, r)
			i += 2
		} else if b&0xF0 == 0xE0 {
			if i+2 >= len(bytes) {
				break
			}
			r := rune(b&0x0F)<<12 | rune(bytes[i+1]&0x3F)<<6 | rune(bytes[i+2]&0x3F)
			if r >= 0xD800 && r <= 0xDBFF && i+5 < len(bytes) && bytes[i+3] == 0xED {
				low := rune(bytes[i+3]&0x0F)<<12 | rune(bytes[i+4]&0x3F)<<6 | rune(bytes[i+5]&0x3F)
				if low >= 0xDC00 && low <= 0xDFFF {
					runes = append(runes, 0x10000+((r-0xD800)<<10)+(low-0xDC00))
					i += 6
					continue
				}
			}
			runes = append(runes, r)
			i += 3
		} else {
			runes = append(runes, rune(b))
			i++
		}
	}
	return string(runes)
}
