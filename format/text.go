package format

import (
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/jclass/java"
)

// TextEncoder renders a class model as Java declarations, close to
// what javap prints: members only, empty bodies, no code.
type TextEncoder struct {
	w     io.Writer
	model *java.ClassModel
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(model *java.ClassModel) error {
	e.model = model
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	m := e.model

	if m.SourceFile != "" {
		sb.WriteString("// compiled from ")
		sb.WriteString(m.SourceFile)
		sb.WriteString("\n")
	}
	if m.Package != "" {
		sb.WriteString("package ")
		sb.WriteString(m.Package)
		sb.WriteString(";\n\n")
	}

	e.writeClassDeclaration(&sb)
	sb.WriteString(" {\n")

	e.writeFields(&sb)
	e.writeMethods(&sb)

	sb.WriteString("}\n")
	return []byte(sb.String()), nil
}

func (e *TextEncoder) writeClassDeclaration(sb *strings.Builder) {
	m := e.model

	if m.IsDeprecated {
		sb.WriteString("@Deprecated\n")
	}
	if m.Visibility == java.VisibilityPublic {
		sb.WriteString("public ")
	}
	if m.IsAbstract && m.Kind == java.ClassKindClass {
		sb.WriteString("abstract ")
	}
	if m.IsFinal && m.Kind == java.ClassKindClass {
		sb.WriteString("final ")
	}

	switch m.Kind {
	case java.ClassKindAnnotation:
		sb.WriteString("@interface ")
	case java.ClassKindEnum:
		sb.WriteString("enum ")
	case java.ClassKindRecord:
		sb.WriteString("record ")
	case java.ClassKindInterface:
		sb.WriteString("interface ")
	case java.ClassKindModule:
		sb.WriteString("module ")
	default:
		sb.WriteString("class ")
	}

	sb.WriteString(m.SimpleName)

	super := m.SuperClass
	if super != "" && super != "java.lang.Object" && super != "java.lang.Record" &&
		m.Kind != java.ClassKindEnum {
		sb.WriteString(" extends ")
		sb.WriteString(super)
	}

	if len(m.Interfaces) > 0 {
		if m.Kind == java.ClassKindInterface || m.Kind == java.ClassKindAnnotation {
			sb.WriteString(" extends ")
		} else {
			sb.WriteString(" implements ")
		}
		sb.WriteString(strings.Join(m.Interfaces, ", "))
	}
}

func (e *TextEncoder) writeFields(sb *strings.Builder) {
	for _, f := range e.model.Fields {
		sb.WriteString("    ")
		writeFieldDeclaration(sb, f)
		sb.WriteString(";\n")
	}
	if len(e.model.Fields) > 0 {
		sb.WriteString("\n")
	}
}

func writeFieldDeclaration(sb *strings.Builder, f java.FieldModel) {
	if f.IsDeprecated {
		sb.WriteString("@Deprecated ")
	}
	switch f.Visibility {
	case java.VisibilityPublic:
		sb.WriteString("public ")
	case java.VisibilityPrivate:
		sb.WriteString("private ")
	case java.VisibilityProtected:
		sb.WriteString("protected ")
	}
	if f.IsStatic {
		sb.WriteString("static ")
	}
	if f.IsFinal {
		sb.WriteString("final ")
	}
	if f.IsVolatile {
		sb.WriteString("volatile ")
	}
	if f.IsTransient {
		sb.WriteString("transient ")
	}
	sb.WriteString(f.Type.String())
	sb.WriteString(" ")
	sb.WriteString(f.Name)
	if f.ConstantValue != nil {
		sb.WriteString(" = ")
		sb.WriteString(javaLiteral(f.ConstantValue))
	}
}

func (e *TextEncoder) writeMethods(sb *strings.Builder) {
	for i, m := range e.model.Methods {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("    ")
		e.writeMethodDeclaration(sb, m)
		if m.IsAbstract || m.IsNative || e.model.Kind == java.ClassKindInterface {
			sb.WriteString(";\n")
		} else {
			sb.WriteString(" { }\n")
		}
	}
}

func (e *TextEncoder) writeMethodDeclaration(sb *strings.Builder, m java.MethodModel) {
	if m.IsDeprecated {
		sb.WriteString("@Deprecated ")
	}
	switch m.Visibility {
	case java.VisibilityPublic:
		sb.WriteString("public ")
	case java.VisibilityPrivate:
		sb.WriteString("private ")
	case java.VisibilityProtected:
		sb.WriteString("protected ")
	}
	if m.IsStatic {
		sb.WriteString("static ")
	}
	if m.IsFinal {
		sb.WriteString("final ")
	}
	if m.IsAbstract && e.model.Kind != java.ClassKindInterface {
		sb.WriteString("abstract ")
	}
	if m.IsSynchronized {
		sb.WriteString("synchronized ")
	}
	if m.IsNative {
		sb.WriteString("native ")
	}

	if m.IsConstructor() {
		sb.WriteString(e.model.SimpleName)
	} else {
		sb.WriteString(m.ReturnType.String())
		sb.WriteString(" ")
		sb.WriteString(m.Name)
	}

	sb.WriteString("(")
	for i, p := range m.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(parameterType(m, i, p))
		if p.Name != "" {
			sb.WriteString(" ")
			sb.WriteString(p.Name)
		}
	}
	sb.WriteString(")")

	if len(m.Exceptions) > 0 {
		sb.WriteString(" throws ")
		sb.WriteString(strings.Join(m.Exceptions, ", "))
	}
}

// parameterType renders the last parameter of a varargs method with
// "..." in place of its outermost array dimension.
func parameterType(m java.MethodModel, i int, p java.ParameterModel) string {
	if m.IsVarargs && i == len(m.Parameters)-1 && p.Type.IsArray() {
		inner := java.TypeModel{Name: p.Type.Name, ArrayDepth: p.Type.ArrayDepth - 1}
		return inner.String() + "..."
	}
	return p.Type.String()
}

func javaLiteral(v interface{}) string {
	switch val := v.(type) {
	case string:
		return strconv.Quote(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10) + "L"
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32) + "f"
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	}
	return "?"
}
