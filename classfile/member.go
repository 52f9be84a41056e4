package classfile

// Member is one entry of a class file's fields or methods table. Both
// tables share the same layout, so one type covers them.
type Member struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      AttributeTable
}

func (m *Member) Name(cp ConstantPool) string {
	return cp.GetUtf8(m.NameIndex)
}

func (m *Member) Descriptor(cp ConstantPool) string {
	return cp.GetUtf8(m.DescriptorIndex)
}

func (m *Member) Attribute(cp ConstantPool, name string) *AttributeInfo {
	return m.Attributes.Get(cp, name)
}

// Code decodes the member's Code attribute. It returns nil with no
// error when the member has none.
func (m *Member) Code(cp ConstantPool) (*CodeAttribute, error) {
	attr := m.Attributes.Get(cp, "Code")
	if attr == nil {
		return nil, nil
	}
	return attr.AsCode()
}

func (m *Member) IsConstructor(cp ConstantPool) bool {
	return m.Name(cp) == "<init>"
}

func (m *Member) IsStaticInitializer(cp ConstantPool) bool {
	return m.Name(cp) == "<clinit>"
}

func (m *Member) IsPublic() bool       { return m.AccessFlags.IsPublic() }
func (m *Member) IsPrivate() bool      { return m.AccessFlags.IsPrivate() }
func (m *Member) IsProtected() bool    { return m.AccessFlags.IsProtected() }
func (m *Member) IsStatic() bool       { return m.AccessFlags.IsStatic() }
func (m *Member) IsFinal() bool        { return m.AccessFlags.IsFinal() }
func (m *Member) IsSynchronized() bool { return m.AccessFlags.IsSynchronized() }
func (m *Member) IsVolatile() bool     { return m.AccessFlags.IsVolatile() }
func (m *Member) IsBridge() bool       { return m.AccessFlags.IsBridge() }
func (m *Member) IsTransient() bool    { return m.AccessFlags.IsTransient() }
func (m *Member) IsVarargs() bool      { return m.AccessFlags.IsVarargs() }
func (m *Member) IsNative() bool       { return m.AccessFlags.IsNative() }
func (m *Member) IsAbstract() bool     { return m.AccessFlags.IsAbstract() }
func (m *Member) IsStrict() bool       { return m.AccessFlags.IsStrict() }
func (m *Member) IsSynthetic() bool    { return m.AccessFlags.IsSynthetic() }
func (m *Member) IsEnum() bool         { return m.AccessFlags.IsEnum() }
