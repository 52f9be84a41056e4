package java

import "strings"

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
	VisibilityPackage   Visibility = "package"
)

type ClassKind string

const (
	ClassKindClass      ClassKind = "class"
	ClassKindInterface  ClassKind = "interface"
	ClassKindEnum       ClassKind = "enum"
	ClassKindAnnotation ClassKind = "annotation"
	ClassKindRecord     ClassKind = "record"
	ClassKindModule     ClassKind = "module"
)

// ClassModel is the compiled view of one class, built from a decoded
// class file. It carries only what the class file format records, so
// parameter names and javadoc are absent.
type ClassModel struct {
	Name         string
	SimpleName   string
	Package      string
	SuperClass   string
	Interfaces   []string
	Visibility   Visibility
	Kind         ClassKind
	IsFinal      bool
	IsAbstract   bool
	IsSynthetic  bool
	IsDeprecated bool
	MajorVersion uint16
	MinorVersion uint16
	SourceFile   string
	Signature    string
	Fields       []FieldModel
	Methods      []MethodModel
}

type FieldModel struct {
	Name          string
	Type          TypeModel
	Visibility    Visibility
	IsStatic      bool
	IsFinal       bool
	IsVolatile    bool
	IsTransient   bool
	IsEnum        bool
	IsDeprecated  bool
	Signature     string
	ConstantValue interface{}
}

type MethodModel struct {
	Name           string
	ReturnType     TypeModel
	Parameters     []ParameterModel
	Visibility     Visibility
	IsStatic       bool
	IsFinal        bool
	IsAbstract     bool
	IsSynchronized bool
	IsNative       bool
	IsVarargs      bool
	IsDeprecated   bool
	Signature      string
	Exceptions     []string

	// LineNumber is the source line of the method's first instruction,
	// taken from the LineNumberTable when the class was compiled with
	// debug information. Zero means unknown.
	LineNumber uint16
}

func (m MethodModel) IsConstructor() bool {
	return m.Name == "<init>"
}

type ParameterModel struct {
	Name string
	Type TypeModel
}

type TypeModel struct {
	Name       string
	ArrayDepth int
}

func (t TypeModel) String() string {
	var sb strings.Builder
	sb.WriteString(t.Name)
	for i := 0; i < t.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

func (t TypeModel) IsPrimitive() bool {
	if t.ArrayDepth > 0 {
		return false
	}
	switch t.Name {
	case "boolean", "byte", "char", "short", "int", "long", "float", "double":
		return true
	}
	return false
}

func (t TypeModel) IsArray() bool {
	return t.ArrayDepth > 0
}

func (t TypeModel) IsVoid() bool {
	return t.Name == "void" && t.ArrayDepth == 0
}
