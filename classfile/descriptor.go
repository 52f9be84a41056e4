package classfile

import "strings"

type FieldType struct {
	BaseType   string
	ClassName  string
	ArrayDepth int
}

func (ft *FieldType) String() string {
	var sb strings.Builder
	if ft.BaseType != "" {
		sb.WriteString(ft.BaseType)
	} else {
		sb.WriteString(InternalToSourceName(ft.ClassName))
	}
	for i := 0; i < ft.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

func (ft *FieldType) IsArray() bool {
	return ft.ArrayDepth > 0
}

func (ft *FieldType) IsPrimitive() bool {
	return ft.BaseType != "" && ft.ClassName == ""
}

func (ft *FieldType) IsReference() bool {
	return ft.ClassName != "" || ft.ArrayDepth > 0
}

type MethodDescriptor struct {
	Parameters []FieldType
	ReturnType *FieldType
}

func (md *MethodDescriptor) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, p := range md.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(")")
	if md.ReturnType != nil {
		sb.WriteString(" ")
		sb.WriteString(md.ReturnType.String())
	} else {
		sb.WriteString(" void")
	}
	return sb.String()
}

var primitiveNames = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
}

// ParseFieldDescriptor decodes a field descriptor such as
// "Ljava/lang/String;" or "[[I". It returns nil when desc is not a
// single valid descriptor.
func ParseFieldDescriptor(desc string) *FieldType {
	ft, rest := consumeFieldType(desc)
	if ft == nil || rest != "" {
		return nil
	}
	return ft
}

// ParseMethodDescriptor decodes a method descriptor such as
// "(ILjava/lang/String;)V". A void return is represented by a nil
// ReturnType.
func ParseMethodDescriptor(desc string) *MethodDescriptor {
	rest, ok := strings.CutPrefix(desc, "(")
	if !ok {
		return nil
	}

	md := &MethodDescriptor{}
	for rest != "" && rest[0] != ')' {
		ft, tail := consumeFieldType(rest)
		if ft == nil {
			return nil
		}
		md.Parameters = append(md.Parameters, *ft)
		rest = tail
	}

	rest, ok = strings.CutPrefix(rest, ")")
	if !ok {
		return nil
	}
	if rest == "V" {
		return md
	}
	ft, tail := consumeFieldType(rest)
	if ft == nil || tail != "" {
		return nil
	}
	md.ReturnType = ft
	return md
}

func consumeFieldType(desc string) (*FieldType, string) {
	depth := 0
	for len(desc) > 0 && desc[0] == '[' {
		depth++
		desc = desc[1:]
	}
	if desc == "" {
		return nil, ""
	}
	if name, ok := primitiveNames[desc[0]]; ok {
		return &FieldType{BaseType: name, ArrayDepth: depth}, desc[1:]
	}
	if desc[0] == 'L' {
		end := strings.IndexByte(desc, ';')
		if end < 0 {
			return nil, ""
		}
		return &FieldType{ClassName: desc[1:end], ArrayDepth: depth}, desc[end+1:]
	}
	return nil, ""
}

func InternalToSourceName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

func SourceToInternalName(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}
