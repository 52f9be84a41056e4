package classfile

import "encoding/binary"

// Cursor reads big-endian values from an in-memory class file image.
// Every successful read advances the offset by exactly the bytes
// consumed; a read past the end of the buffer fails with
// *UnexpectedEndOfInput and leaves the offset unchanged.
type Cursor struct {
	data   []byte
	offset int
}

func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

func (c *Cursor) Offset() int {
	return c.offset
}

func (c *Cursor) Remaining() int {
	return len(c.data) - c.offset
}

func (c *Cursor) take(n int) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, &UnexpectedEndOfInput{Offset: c.offset, Want: n, Have: c.Remaining()}
	}
	b := c.data[c.offset : c.offset+n]
	c.offset += n
	return b, nil
}

func (c *Cursor) U1() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Cursor) U2() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (c *Cursor) U4() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (c *Cursor) U8() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// Bytes returns the next n bytes. The slice aliases the cursor's
// buffer and must be treated as read-only.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	return c.take(n)
}

// LengthPrefixed reads a big-endian u2 length followed by that many
// bytes.
func (c *Cursor) LengthPrefixed() ([]byte, error) {
	n, err := c.U2()
	if err != nil {
		return nil, err
	}
	return c.take(int(n))
}
