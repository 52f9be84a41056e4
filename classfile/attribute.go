package classfile

import "fmt"

// AttributeInfo is one attribute as it appears on a class, a field, a
// method, or inside a Code attribute: a name index into the constant
// pool, the declared payload length, and the raw payload. Info always
// holds exactly Length bytes.
type AttributeInfo struct {
	NameIndex uint16
	Length    uint32
	Info      []byte
}

func (a *AttributeInfo) Name(cp ConstantPool) string {
	return cp.GetUtf8(a.NameIndex)
}

// AttributeTable is a decoded attribute list. Span is the number of
// bytes the entries occupied in the image, six header bytes plus the
// payload for each entry, not counting the leading entry count.
type AttributeTable struct {
	Entries []AttributeInfo
	Span    uint32
}

func (t *AttributeTable) Len() int {
	return len(t.Entries)
}

func (t *AttributeTable) Get(cp ConstantPool, name string) *AttributeInfo {
	for i := range t.Entries {
		if t.Entries[i].Name(cp) == name {
			return &t.Entries[i]
		}
	}
	return nil
}

const attributeHeaderSize = 6

func readAttributeTable(cur *Cursor, count uint16) (AttributeTable, error) {
	table := AttributeTable{Entries: make([]AttributeInfo, count)}
	for i := range table.Entries {
		if err := readAttributeInfo(cur, &table.Entries[i]); err != nil {
			return AttributeTable{}, fmt.Errorf("failed to read attribute %d: %w", i, err)
		}
		table.Span += attributeHeaderSize + table.Entries[i].Length
	}
	return table, nil
}

func readAttributeInfo(cur *Cursor, attr *AttributeInfo) error {
	var err error
	if attr.NameIndex, err = cur.U2(); err != nil {
		return err
	}
	if attr.Length, err = cur.U4(); err != nil {
		return err
	}
	attr.Info, err = cur.Bytes(int(attr.Length))
	return err
}

type CodeAttribute struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           []byte
	ExceptionTable []ExceptionTableEntry
	Attributes     AttributeTable
}

type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16
}

type SourceFileAttribute struct {
	SourceFileIndex uint16
}

type ConstantValueAttribute struct {
	ConstantValueIndex uint16
}

type ExceptionsAttribute struct {
	ExceptionIndexTable []uint16
}

type SignatureAttribute struct {
	SignatureIndex uint16
}

type LineNumberTableAttribute struct {
	Entries []LineNumberEntry
}

type LineNumberEntry struct {
	StartPC    uint16
	LineNumber uint16
}

type LocalVariableTableAttribute struct {
	Entries []LocalVariableEntry
}

type LocalVariableEntry struct {
	StartPC         uint16
	Length          uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Index           uint16
}

// AsCode decodes the raw payload as a Code attribute. It does not
// check the attribute's name; callers pick the attribute by name
// first.
func (a *AttributeInfo) AsCode() (*CodeAttribute, error) {
	cur := NewCursor(a.Info)
	code := &CodeAttribute{}
	var err error
	if code.MaxStack, err = cur.U2(); err != nil {
		return nil, err
	}
	if code.MaxLocals, err = cur.U2(); err != nil {
		return nil, err
	}
	codeLength, err := cur.U4()
	if err != nil {
		return nil, err
	}
	if code.Code, err = cur.Bytes(int(codeLength)); err != nil {
		return nil, err
	}
	exceptionCount, err := cur.U2()
	if err != nil {
		return nil, err
	}
	code.ExceptionTable = make([]ExceptionTableEntry, exceptionCount)
	for i := range code.ExceptionTable {
		entry := &code.ExceptionTable[i]
		if entry.StartPC, err = cur.U2(); err != nil {
			return nil, err
		}
		if entry.EndPC, err = cur.U2(); err != nil {
			return nil, err
		}
		if entry.HandlerPC, err = cur.U2(); err != nil {
			return nil, err
		}
		if entry.CatchType, err = cur.U2(); err != nil {
			return nil, err
		}
	}
	attributesCount, err := cur.U2()
	if err != nil {
		return nil, err
	}
	if code.Attributes, err = readAttributeTable(cur, attributesCount); err != nil {
		return nil, err
	}
	return code, nil
}

func (a *AttributeInfo) AsSourceFile() (*SourceFileAttribute, error) {
	index, err := NewCursor(a.Info).U2()
	if err != nil {
		return nil, err
	}
	return &SourceFileAttribute{SourceFileIndex: index}, nil
}

func (a *AttributeInfo) AsConstantValue() (*ConstantValueAttribute, error) {
	index, err := NewCursor(a.Info).U2()
	if err != nil {
		return nil, err
	}
	return &ConstantValueAttribute{ConstantValueIndex: index}, nil
}

func (a *AttributeInfo) AsSignature() (*SignatureAttribute, error) {
	index, err := NewCursor(a.Info).U2()
	if err != nil {
		return nil, err
	}
	return &SignatureAttribute{SignatureIndex: index}, nil
}

func (a *AttributeInfo) AsExceptions() (*ExceptionsAttribute, error) {
	cur := NewCursor(a.Info)
	count, err := cur.U2()
	if err != nil {
		return nil, err
	}
	ex := &ExceptionsAttribute{ExceptionIndexTable: make([]uint16, count)}
	for i := range ex.ExceptionIndexTable {
		if ex.ExceptionIndexTable[i], err = cur.U2(); err != nil {
			return nil, err
		}
	}
	return ex, nil
}

func (a *AttributeInfo) AsLineNumberTable() (*LineNumberTableAttribute, error) {
	cur := NewCursor(a.Info)
	count, err := cur.U2()
	if err != nil {
		return nil, err
	}
	lnt := &LineNumberTableAttribute{Entries: make([]LineNumberEntry, count)}
	for i := range lnt.Entries {
		entry := &lnt.Entries[i]
		if entry.StartPC, err = cur.U2(); err != nil {
			return nil, err
		}
		if entry.LineNumber, err = cur.U2(); err != nil {
			return nil, err
		}
	}
	return lnt, nil
}

func (a *AttributeInfo) AsLocalVariableTable() (*LocalVariableTableAttribute, error) {
	cur := NewCursor(a.Info)
	count, err := cur.U2()
	if err != nil {
		return nil, err
	}
	lvt := &LocalVariableTableAttribute{Entries: make([]LocalVariableEntry, count)}
	for i := range lvt.Entries {
		entry := &lvt.Entries[i]
		if entry.StartPC, err = cur.U2(); err != nil {
			return nil, err
		}
		if entry.Length, err = cur.U2(); err != nil {
			return nil, err
		}
		if entry.NameIndex, err = cur.U2(); err != nil {
			return nil, err
		}
		if entry.DescriptorIndex, err = cur.U2(); err != nil {
			return nil, err
		}
		if entry.Index, err = cur.U2(); err != nil {
			return nil, err
		}
	}
	return lvt, nil
}
