package classfile

import "fmt"

// UnexpectedEndOfInput reports a read that would run past the end of
// the class file image. Offset is where the failed read started.
type UnexpectedEndOfInput struct {
	Offset int
	Want   int
	Have   int
}

func (e *UnexpectedEndOfInput) Error() string {
	return fmt.Sprintf("unexpected end of input at offset %d: need %d bytes, have %d", e.Offset, e.Want, e.Have)
}

// UnknownConstantTag reports a constant pool entry whose tag byte is
// not one of the recognized constant kinds. Offset is where the tag
// byte was read.
type UnknownConstantTag struct {
	Tag    uint8
	Offset int
}

func (e *UnknownConstantTag) Error() string {
	return fmt.Sprintf("unknown constant pool tag %d at offset %d", e.Tag, e.Offset)
}

// MalformedHeader reports an image that does not start with the
// 0xCAFEBABE magic number.
type MalformedHeader struct {
	Magic uint32
}

func (e *MalformedHeader) Error() string {
	return fmt.Sprintf("invalid magic number: 0x%X (expected 0x%X)", e.Magic, uint32(Magic))
}
