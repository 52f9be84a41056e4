package classfile

import "testing"

func TestParseFieldDescriptor(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{"B", "byte"},
		{"C", "char"},
		{"D", "double"},
		{"F", "float"},
		{"I", "int"},
		{"J", "long"},
		{"S", "short"},
		{"Z", "boolean"},
		{"Ljava/lang/String;", "java.lang.String"},
		{"[I", "int[]"},
		{"[[J", "long[][]"},
		{"[Ljava/lang/Object;", "java.lang.Object[]"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			ft := ParseFieldDescriptor(tt.desc)
			if ft == nil {
				t.Fatalf("ParseFieldDescriptor(%q) = nil", tt.desc)
			}
			if got := ft.String(); got != tt.want {
				t.Errorf("ParseFieldDescriptor(%q).String() = %q, want %q", tt.desc, got, tt.want)
			}
		})
	}
}

func TestParseFieldDescriptorInvalid(t *testing.T) {
	for _, desc := range []string{"", "V", "X", "[", "Ljava/lang/String", "II"} {
		if ft := ParseFieldDescriptor(desc); ft != nil {
			t.Errorf("ParseFieldDescriptor(%q) = %+v, want nil", desc, ft)
		}
	}
}

func TestFieldTypePredicates(t *testing.T) {
	primitive := ParseFieldDescriptor("I")
	if !primitive.IsPrimitive() || primitive.IsArray() || primitive.IsReference() {
		t.Errorf("predicates for int = %v %v %v", primitive.IsPrimitive(), primitive.IsArray(), primitive.IsReference())
	}

	array := ParseFieldDescriptor("[I")
	if !array.IsArray() || !array.IsReference() {
		t.Error("int[] should be an array reference")
	}

	object := ParseFieldDescriptor("Ljava/lang/Object;")
	if object.IsPrimitive() || !object.IsReference() {
		t.Error("java.lang.Object should be a reference")
	}
}

func TestParseMethodDescriptor(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{"()V", "() void"},
		{"(I)I", "(int) int"},
		{"(ILjava/lang/String;)V", "(int, java.lang.String) void"},
		{"([Ljava/lang/String;)V", "(java.lang.String[]) void"},
		{"()Ljava/lang/Object;", "() java.lang.Object"},
		{"(JD)[B", "(long, double) byte[]"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			md := ParseMethodDescriptor(tt.desc)
			if md == nil {
				t.Fatalf("ParseMethodDescriptor(%q) = nil", tt.desc)
			}
			if got := md.String(); got != tt.want {
				t.Errorf("ParseMethodDescriptor(%q).String() = %q, want %q", tt.desc, got, tt.want)
			}
		})
	}
}

func TestParseMethodDescriptorInvalid(t *testing.T) {
	for _, desc := range []string{"", "I", "(", "()", "(X)V", "()VV", "(I"} {
		if md := ParseMethodDescriptor(desc); md != nil {
			t.Errorf("ParseMethodDescriptor(%q) = %+v, want nil", desc, md)
		}
	}
}

func TestParseMethodDescriptorVoidReturn(t *testing.T) {
	md := ParseMethodDescriptor("(I)V")
	if md == nil {
		t.Fatal("ParseMethodDescriptor returned nil")
	}
	if md.ReturnType != nil {
		t.Errorf("ReturnType = %+v, want nil for void", md.ReturnType)
	}
	if len(md.Parameters) != 1 || md.Parameters[0].BaseType != "int" {
		t.Errorf("Parameters = %+v", md.Parameters)
	}
}

func TestInternalSourceNameConversion(t *testing.T) {
	if got := InternalToSourceName("java/util/Map$Entry"); got != "java.util.Map$Entry" {
		t.Errorf("InternalToSourceName = %q", got)
	}
	if got := SourceToInternalName("java.lang.String"); got != "java/lang/String" {
		t.Errorf("SourceToInternalName = %q", got)
	}
}
