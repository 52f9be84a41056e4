package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/jclass/java"
)

type JSONEncoder struct {
	w     io.Writer
	model *java.ClassModel
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(model *java.ClassModel) error {
	e.model = model
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data := e.buildClassData()
	return json.MarshalIndent(data, "", "  ")
}

type jsonClass struct {
	Name       string       `json:"name"`
	SimpleName string       `json:"simpleName"`
	Package    string       `json:"package"`
	SuperClass string       `json:"superClass,omitempty"`
	Interfaces []string     `json:"interfaces,omitempty"`
	Visibility string       `json:"visibility"`
	Kind       string       `json:"kind"`
	Modifiers  []string     `json:"modifiers,omitempty"`
	Deprecated bool         `json:"deprecated,omitempty"`
	Version    jsonVersion  `json:"version"`
	SourceFile string       `json:"sourceFile,omitempty"`
	Signature  string       `json:"signature,omitempty"`
	Fields     []jsonField  `json:"fields,omitempty"`
	Methods    []jsonMethod `json:"methods,omitempty"`
}

type jsonVersion struct {
	Major uint16 `json:"major"`
	Minor uint16 `json:"minor"`
}

type jsonField struct {
	Name          string      `json:"name"`
	Type          jsonType    `json:"type"`
	Visibility    string      `json:"visibility"`
	Modifiers     []string    `json:"modifiers,omitempty"`
	Deprecated    bool        `json:"deprecated,omitempty"`
	Signature     string      `json:"signature,omitempty"`
	ConstantValue interface{} `json:"constantValue,omitempty"`
}

type jsonMethod struct {
	Name       string          `json:"name"`
	ReturnType jsonType        `json:"returnType"`
	Parameters []jsonParameter `json:"parameters,omitempty"`
	Visibility string          `json:"visibility"`
	Modifiers  []string        `json:"modifiers,omitempty"`
	Deprecated bool            `json:"deprecated,omitempty"`
	Signature  string          `json:"signature,omitempty"`
	Exceptions []string        `json:"exceptions,omitempty"`
	LineNumber uint16          `json:"lineNumber,omitempty"`
}

type jsonParameter struct {
	Name string   `json:"name,omitempty"`
	Type jsonType `json:"type"`
}

type jsonType struct {
	Name       string `json:"name"`
	ArrayDepth int    `json:"arrayDepth,omitempty"`
}

func (e *JSONEncoder) buildClassData() jsonClass {
	m := e.model
	return jsonClass{
		Name:       m.Name,
		SimpleName: m.SimpleName,
		Package:    m.Package,
		SuperClass: m.SuperClass,
		Interfaces: m.Interfaces,
		Visibility: string(m.Visibility),
		Kind:       string(m.Kind),
		Modifiers:  classModifiers(m),
		Deprecated: m.IsDeprecated,
		Version: jsonVersion{
			Major: m.MajorVersion,
			Minor: m.MinorVersion,
		},
		SourceFile: m.SourceFile,
		Signature:  m.Signature,
		Fields:     buildFields(m.Fields),
		Methods:    buildMethods(m.Methods),
	}
}

func classModifiers(m *java.ClassModel) []string {
	var mods []string
	if m.IsAbstract {
		mods = append(mods, "abstract")
	}
	if m.IsFinal {
		mods = append(mods, "final")
	}
	if m.IsSynthetic {
		mods = append(mods, "synthetic")
	}
	return mods
}

func buildFields(fields []java.FieldModel) []jsonField {
	result := make([]jsonField, len(fields))
	for i, f := range fields {
		result[i] = jsonField{
			Name: f.Name,
			Type: jsonType{
				Name:       f.Type.Name,
				ArrayDepth: f.Type.ArrayDepth,
			},
			Visibility:    string(f.Visibility),
			Modifiers:     fieldModifiers(f),
			Deprecated:    f.IsDeprecated,
			Signature:     f.Signature,
			ConstantValue: f.ConstantValue,
		}
	}
	return result
}

func fieldModifiers(f java.FieldModel) []string {
	var mods []string
	if f.IsStatic {
		mods = append(mods, "static")
	}
	if f.IsFinal {
		mods = append(mods, "final")
	}
	if f.IsVolatile {
		mods = append(mods, "volatile")
	}
	if f.IsTransient {
		mods = append(mods, "transient")
	}
	if f.IsEnum {
		mods = append(mods, "enum")
	}
	return mods
}

func buildMethods(methods []java.MethodModel) []jsonMethod {
	result := make([]jsonMethod, len(methods))
	for i, m := range methods {
		result[i] = jsonMethod{
			Name: m.Name,
			ReturnType: jsonType{
				Name:       m.ReturnType.Name,
				ArrayDepth: m.ReturnType.ArrayDepth,
			},
			Parameters: buildParameters(m.Parameters),
			Visibility: string(m.Visibility),
			Modifiers:  methodModifiers(m),
			Deprecated: m.IsDeprecated,
			Signature:  m.Signature,
			Exceptions: m.Exceptions,
			LineNumber: m.LineNumber,
		}
	}
	return result
}

func buildParameters(params []java.ParameterModel) []jsonParameter {
	result := make([]jsonParameter, len(params))
	for i, p := range params {
		result[i] = jsonParameter{
			Name: p.Name,
			Type: jsonType{
				Name:       p.Type.Name,
				ArrayDepth: p.Type.ArrayDepth,
			},
		}
	}
	return result
}

func methodModifiers(m java.MethodModel) []string {
	var mods []string
	if m.IsStatic {
		mods = append(mods, "static")
	}
	if m.IsFinal {
		mods = append(mods, "final")
	}
	if m.IsAbstract {
		mods = append(mods, "abstract")
	}
	if m.IsSynchronized {
		mods = append(mods, "synchronized")
	}
	if m.IsNative {
		mods = append(mods, "native")
	}
	if m.IsVarargs {
		mods = append(mods, "varargs")
	}
	return mods
}
