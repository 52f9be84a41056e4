package java

import (
	"io"
	"strings"

	"github.com/dhamidi/jclass/classfile"
)

func ClassModelFromFile(path string) (*ClassModel, error) {
	cf, err := classfile.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return ClassModelFromClassFile(cf), nil
}

func ClassModelFromReader(r io.Reader) (*ClassModel, error) {
	cf, err := classfile.ParseReader(r)
	if err != nil {
		return nil, err
	}
	return ClassModelFromClassFile(cf), nil
}

func ClassModelFromBytes(data []byte) (*ClassModel, error) {
	cf, err := classfile.Parse(data)
	if err != nil {
		return nil, err
	}
	return ClassModelFromClassFile(cf), nil
}

func ClassModelFromClassFile(cf *classfile.ClassFile) *ClassModel {
	cp := cf.ConstantPool
	className := classfile.InternalToSourceName(cf.ClassName())
	pkg, simpleName := splitClassName(className)

	model := &ClassModel{
		Name:         className,
		SimpleName:   simpleName,
		Package:      pkg,
		MajorVersion: cf.MajorVersion,
		MinorVersion: cf.MinorVersion,
		Visibility:   visibilityFromAccessFlags(cf.AccessFlags),
		IsFinal:      cf.AccessFlags.IsFinal(),
		IsAbstract:   cf.AccessFlags.IsAbstract(),
		IsSynthetic:  cf.AccessFlags.IsSynthetic(),
		IsDeprecated: cf.GetAttribute("Deprecated") != nil,
		Signature:    signatureOf(cf.GetAttribute("Signature"), cp),
	}

	if cf.SuperClass != 0 {
		model.SuperClass = classfile.InternalToSourceName(cf.SuperClassName())
	}
	model.Kind = classKindFromClassFile(cf, model.SuperClass)

	for _, iface := range cf.InterfaceNames() {
		model.Interfaces = append(model.Interfaces, classfile.InternalToSourceName(iface))
	}

	if attr := cf.GetAttribute("SourceFile"); attr != nil {
		if sf, err := attr.AsSourceFile(); err == nil {
			model.SourceFile = cp.GetUtf8(sf.SourceFileIndex)
		}
	}

	for i := range cf.Fields {
		field := &cf.Fields[i]
		if field.IsSynthetic() {
			continue
		}
		model.Fields = append(model.Fields, fieldModelFromMember(field, cp))
	}

	for i := range cf.Methods {
		method := &cf.Methods[i]
		if method.IsSynthetic() || method.IsBridge() {
			continue
		}
		if method.IsStaticInitializer(cp) {
			continue
		}
		model.Methods = append(model.Methods, methodModelFromMember(method, cp))
	}

	return model
}

func splitClassName(className string) (pkg string, simpleName string) {
	lastDot := strings.LastIndex(className, ".")
	if lastDot < 0 {
		return "", className
	}
	return className[:lastDot], className[lastDot+1:]
}

func visibilityFromAccessFlags(flags classfile.AccessFlags) Visibility {
	switch {
	case flags.IsPublic():
		return VisibilityPublic
	case flags.IsProtected():
		return VisibilityProtected
	case flags.IsPrivate():
		return VisibilityPrivate
	}
	return VisibilityPackage
}

func classKindFromClassFile(cf *classfile.ClassFile, superClass string) ClassKind {
	switch {
	case cf.IsModule():
		return ClassKindModule
	case cf.IsAnnotation():
		return ClassKindAnnotation
	case cf.IsEnum():
		return ClassKindEnum
	case cf.IsInterface():
		return ClassKindInterface
	case superClass == "java.lang.Record":
		return ClassKindRecord
	}
	return ClassKindClass
}

func fieldModelFromMember(f *classfile.Member, cp classfile.ConstantPool) FieldModel {
	model := FieldModel{
		Name:         f.Name(cp),
		Visibility:   visibilityFromAccessFlags(f.AccessFlags),
		IsStatic:     f.IsStatic(),
		IsFinal:      f.IsFinal(),
		IsVolatile:   f.IsVolatile(),
		IsTransient:  f.IsTransient(),
		IsEnum:       f.IsEnum(),
		IsDeprecated: f.Attribute(cp, "Deprecated") != nil,
		Signature:    signatureOf(f.Attribute(cp, "Signature"), cp),
	}

	if ft := classfile.ParseFieldDescriptor(f.Descriptor(cp)); ft != nil {
		model.Type = typeModelFromFieldType(ft)
	}

	if attr := f.Attribute(cp, "ConstantValue"); attr != nil {
		if cv, err := attr.AsConstantValue(); err == nil {
			model.ConstantValue = constantValueFromPool(cp, cv.ConstantValueIndex)
		}
	}

	return model
}

func methodModelFromMember(m *classfile.Member, cp classfile.ConstantPool) MethodModel {
	model := MethodModel{
		Name:           m.Name(cp),
		Visibility:     visibilityFromAccessFlags(m.AccessFlags),
		IsStatic:       m.IsStatic(),
		IsFinal:        m.IsFinal(),
		IsAbstract:     m.IsAbstract(),
		IsSynchronized: m.IsSynchronized(),
		IsNative:       m.IsNative(),
		IsVarargs:      m.IsVarargs(),
		IsDeprecated:   m.Attribute(cp, "Deprecated") != nil,
		Signature:      signatureOf(m.Attribute(cp, "Signature"), cp),
	}

	if desc := classfile.ParseMethodDescriptor(m.Descriptor(cp)); desc != nil {
		if desc.ReturnType != nil {
			model.ReturnType = typeModelFromFieldType(desc.ReturnType)
		} else {
			model.ReturnType = TypeModel{Name: "void"}
		}
		for i := range desc.Parameters {
			model.Parameters = append(model.Parameters, ParameterModel{
				Type: typeModelFromFieldType(&desc.Parameters[i]),
			})
		}
	}

	if attr := m.Attribute(cp, "Exceptions"); attr != nil {
		if ex, err := attr.AsExceptions(); err == nil {
			for _, index := range ex.ExceptionIndexTable {
				name := classfile.InternalToSourceName(cp.GetClassName(index))
				model.Exceptions = append(model.Exceptions, name)
			}
		}
	}

	if code, err := m.Code(cp); err == nil && code != nil {
		if attr := code.Attributes.Get(cp, "LineNumberTable"); attr != nil {
			if lnt, err := attr.AsLineNumberTable(); err == nil && len(lnt.Entries) > 0 {
				model.LineNumber = lnt.Entries[0].LineNumber
			}
		}
	}

	return model
}

func typeModelFromFieldType(ft *classfile.FieldType) TypeModel {
	base := *ft
	base.ArrayDepth = 0
	return TypeModel{Name: base.String(), ArrayDepth: ft.ArrayDepth}
}

func signatureOf(attr *classfile.AttributeInfo, cp classfile.ConstantPool) string {
	if attr == nil {
		return ""
	}
	sig, err := attr.AsSignature()
	if err != nil {
		return ""
	}
	return cp.GetUtf8(sig.SignatureIndex)
}

func constantValueFromPool(cp classfile.ConstantPool, index uint16) interface{} {
	switch entry := cp.Entry(index).(type) {
	case *classfile.Integer:
		return entry.Value
	case *classfile.Long:
		return entry.Value
	case *classfile.Float:
		return entry.Value
	case *classfile.Double:
		return entry.Value
	case *classfile.StringRef:
		return cp.GetUtf8(entry.StringIndex)
	}
	return nil
}
