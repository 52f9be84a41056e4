package classfile

import "testing"

func FuzzParse(f *testing.F) {
	f.Add(minimalClass())
	f.Add(buildTestClass())
	f.Add([]byte{})
	f.Add([]byte{0xCA, 0xFE, 0xBA, 0xBE})
	f.Add([]byte{0xCA, 0xFE, 0xBA, 0xBE, 0, 0, 0, 65, 0, 3, 5})

	f.Fuzz(func(t *testing.T, data []byte) {
		cf, err := Parse(data)
		if err != nil {
			return
		}
		if cf == nil {
			t.Fatal("Parse returned no class file and no error")
		}
		if len(cf.ConstantPool) > 0 && cf.ConstantPool[0] != nil {
			t.Error("constant pool slot 0 is not reserved")
		}
		checkAttributeTable(t, &cf.Attributes)
		for i := range cf.Fields {
			checkAttributeTable(t, &cf.Fields[i].Attributes)
		}
		for i := range cf.Methods {
			checkAttributeTable(t, &cf.Methods[i].Attributes)
		}
	})
}

func checkAttributeTable(t *testing.T, table *AttributeTable) {
	t.Helper()
	var span uint32
	for i := range table.Entries {
		attr := &table.Entries[i]
		if len(attr.Info) != int(attr.Length) {
			t.Errorf("attribute %d payload holds %d bytes, declared %d", i, len(attr.Info), attr.Length)
		}
		span += attributeHeaderSize + attr.Length
	}
	if span != table.Span {
		t.Errorf("table span = %d, sum of entries = %d", table.Span, span)
	}
}
