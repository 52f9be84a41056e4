package classfile

type ConstantPoolEntry interface {
	Tag() ConstantTag
}

type Utf8 struct {
	Value string
}

func (c *Utf8) Tag() ConstantTag { return ConstantUtf8 }

type Integer struct {
	Value int32
}

func (c *Integer) Tag() ConstantTag { return ConstantInteger }

type Float struct {
	Value float32
}

func (c *Float) Tag() ConstantTag { return ConstantFloat }

type Long struct {
	Value int64
}

func (c *Long) Tag() ConstantTag { return ConstantLong }

type Double struct {
	Value float64
}

func (c *Double) Tag() ConstantTag { return ConstantDouble }

type ClassRef struct {
	NameIndex uint16
}

func (c *ClassRef) Tag() ConstantTag { return ConstantClass }

type StringRef struct {
	StringIndex uint16
}

func (c *StringRef) Tag() ConstantTag { return ConstantString }

type FieldRef struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *FieldRef) Tag() ConstantTag { return ConstantFieldref }

type MethodRef struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *MethodRef) Tag() ConstantTag { return ConstantMethodref }

type InterfaceMethodRef struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *InterfaceMethodRef) Tag() ConstantTag { return ConstantInterfaceMethodref }

type NameAndType struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

func (c *NameAndType) Tag() ConstantTag { return ConstantNameAndType }

type MethodHandle struct {
	ReferenceKind  MethodHandleKind
	ReferenceIndex uint16
}

func (c *MethodHandle) Tag() ConstantTag { return ConstantMethodHandle }

type MethodType struct {
	DescriptorIndex uint16
}

func (c *MethodType) Tag() ConstantTag { return ConstantMethodType }

type InvokeDynamic struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (c *InvokeDynamic) Tag() ConstantTag { return ConstantInvokeDynamic }

// ConstantPool holds the entries of a class file constant pool,
// addressed by their original one-based indices. Index 0 is a reserved
// nil slot, so len(cp) equals the declared constant pool count. The
// slot after a Long or Double entry is also nil.
type ConstantPool []ConstantPoolEntry

func (cp ConstantPool) Entry(index uint16) ConstantPoolEntry {
	if index == 0 || int(index) >= len(cp) {
		return nil
	}
	return cp[index]
}

func (cp ConstantPool) GetUtf8(index uint16) string {
	if entry, ok := cp.Entry(index).(*Utf8); ok {
		return entry.Value
	}
	return ""
}

func (cp ConstantPool) GetClassName(index uint16) string {
	if entry, ok := cp.Entry(index).(*ClassRef); ok {
		return cp.GetUtf8(entry.NameIndex)
	}
	return ""
}

func (cp ConstantPool) GetNameAndType(index uint16) (name, descriptor string) {
	if entry, ok := cp.Entry(index).(*NameAndType); ok {
		return cp.GetUtf8(entry.NameIndex), cp.GetUtf8(entry.DescriptorIndex)
	}
	return "", ""
}

func (cp ConstantPool) GetString(index uint16) string {
	if entry, ok := cp.Entry(index).(*StringRef); ok {
		return cp.GetUtf8(entry.StringIndex)
	}
	return ""
}

func (cp ConstantPool) GetInteger(index uint16) (int32, bool) {
	if entry, ok := cp.Entry(index).(*Integer); ok {
		return entry.Value, true
	}
	return 0, false
}

func (cp ConstantPool) GetLong(index uint16) (int64, bool) {
	if entry, ok := cp.Entry(index).(*Long); ok {
		return entry.Value, true
	}
	return 0, false
}

func (cp ConstantPool) GetFloat(index uint16) (float32, bool) {
	if entry, ok := cp.Entry(index).(*Float); ok {
		return entry.Value, true
	}
	return 0, false
}

func (cp ConstantPool) GetDouble(index uint16) (float64, bool) {
	if entry, ok := cp.Entry(index).(*Double); ok {
		return entry.Value, true
	}
	return 0, false
}

func (cp ConstantPool) GetFieldRef(index uint16) (className, name, descriptor string) {
	if entry, ok := cp.Entry(index).(*FieldRef); ok {
		className = cp.GetClassName(entry.ClassIndex)
		name, descriptor = cp.GetNameAndType(entry.NameAndTypeIndex)
		return
	}
	return "", "", ""
}

func (cp ConstantPool) GetMethodRef(index uint16) (className, name, descriptor string) {
	if entry, ok := cp.Entry(index).(*MethodRef); ok {
		className = cp.GetClassName(entry.ClassIndex)
		name, descriptor = cp.GetNameAndType(entry.NameAndTypeIndex)
		return
	}
	return "", "", ""
}

func (cp ConstantPool) GetInterfaceMethodRef(index uint16) (className, name, descriptor string) {
	if entry, ok := cp.Entry(index).(*InterfaceMethodRef); ok {
		className = cp.GetClassName(entry.ClassIndex)
		name, descriptor = cp.GetNameAndType(entry.NameAndTypeIndex)
		return
	}
	return "", "", ""
}

func (cp ConstantPool) GetMethodHandle(index uint16) *MethodHandle {
	if entry, ok := cp.Entry(index).(*MethodHandle); ok {
		return entry
	}
	return nil
}

func (cp ConstantPool) GetMethodType(index uint16) string {
	if entry, ok := cp.Entry(index).(*MethodType); ok {
		return cp.GetUtf8(entry.DescriptorIndex)
	}
	return ""
}

func (cp ConstantPool) GetInvokeDynamic(index uint16) *InvokeDynamic {
	if entry, ok := cp.Entry(index).(*InvokeDynamic); ok {
		return entry
	}
	return nil
}
