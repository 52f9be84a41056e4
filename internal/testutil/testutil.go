// Package testutil builds minimal class file payloads for tests that
// need parseable input without fixtures on disk.
package testutil

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"sort"
)

// MethodSpec names one public method to include in a generated class.
type MethodSpec struct {
	Name       string
	Descriptor string
}

// ClassBytes returns the binary form of a public class with the given
// internal name (slash separated), extending java/lang/Object, holding
// one public method per MethodSpec and nothing else.
func ClassBytes(internalName string, methods ...MethodSpec) []byte {
	var buf bytes.Buffer
	w := func(v any) { _ = binary.Write(&buf, binary.BigEndian, v) }
	utf8 := func(s string) {
		buf.WriteByte(1)
		w(uint16(len(s)))
		buf.WriteString(s)
	}
	classRef := func(nameIndex uint16) {
		buf.WriteByte(7)
		w(nameIndex)
	}

	w(uint32(0xCAFEBABE))
	w(uint16(0))
	w(uint16(52))

	w(uint16(5 + 2*len(methods)))
	utf8(internalName)       // 1
	classRef(1)              // 2
	utf8("java/lang/Object") // 3
	classRef(3)              // 4
	for _, m := range methods {
		utf8(m.Name)
		utf8(m.Descriptor)
	}

	w(uint16(0x0021)) // public super
	w(uint16(2))      // this_class
	w(uint16(4))      // super_class
	w(uint16(0))      // interfaces
	w(uint16(0))      // fields

	w(uint16(len(methods)))
	for i := range methods {
		w(uint16(0x0001)) // public
		w(uint16(5 + 2*i))
		w(uint16(6 + 2*i))
		w(uint16(0))
	}

	w(uint16(0)) // class attributes
	return buf.Bytes()
}

// JarBytes assembles a jar archive from entry names to payloads.
// Entries are written in sorted name order so output is deterministic.
func JarBytes(entries map[string][]byte) []byte {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			panic(err)
		}
		if _, err := w.Write(entries[name]); err != nil {
			panic(err)
		}
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
