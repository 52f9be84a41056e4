package jar

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Entry is one class file found in an archive. Jar is the name of the
// nested jar that held the entry, empty for top-level entries.
type Entry struct {
	Name string
	Jar  string
	Data []byte
}

// FullName returns the entry name, prefixed with "<jar>!" when the
// entry came from a nested jar.
func (e Entry) FullName() string {
	if e.Jar == "" {
		return e.Name
	}
	return e.Jar + "!" + e.Name
}

// EntryInfo describes a class entry without its payload.
type EntryInfo struct {
	Name             string
	Jar              string
	UncompressedSize uint64
}

func (e EntryInfo) FullName() string {
	if e.Jar == "" {
		return e.Name
	}
	return e.Jar + "!" + e.Name
}

// ScanFunc receives each class entry during a scan. Returning an error
// stops the scan and Scan returns that error.
type ScanFunc func(entry Entry) error

// Scan opens the jar or zip archive at path and calls fn for every
// .class entry, descending one level into nested .jar entries the way
// fat jars and JDK source bundles nest them.
func Scan(path string, fn ScanFunc) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer r.Close()
	return scanReader(&r.Reader, "", fn)
}

// ScanBytes scans an archive already held in memory.
func ScanBytes(data []byte, fn ScanFunc) error {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	return scanReader(r, "", fn)
}

func scanReader(r *zip.Reader, jarName string, fn ScanFunc) error {
	var nested []*zip.File
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		switch filepath.Ext(f.Name) {
		case ".class":
			data, err := readZipFile(f)
			if err != nil {
				return fmt.Errorf("read %s: %w", f.Name, err)
			}
			if err := fn(Entry{Name: f.Name, Jar: jarName, Data: data}); err != nil {
				return err
			}
		case ".jar":
			if jarName == "" {
				nested = append(nested, f)
			}
		}
	}

	for _, f := range nested {
		data, err := readZipFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f.Name, err)
		}
		nr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return fmt.Errorf("open nested jar %s: %w", f.Name, err)
		}
		if err := scanReader(nr, f.Name, fn); err != nil {
			return err
		}
	}
	return nil
}

// List enumerates the class entries in the archive at path without
// decompressing top-level class payloads.
func List(path string) ([]EntryInfo, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer r.Close()

	var entries []EntryInfo
	var nested []*zip.File
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		switch filepath.Ext(f.Name) {
		case ".class":
			entries = append(entries, EntryInfo{
				Name:             f.Name,
				UncompressedSize: f.UncompressedSize64,
			})
		case ".jar":
			nested = append(nested, f)
		}
	}

	for _, f := range nested {
		data, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		nr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("open nested jar %s: %w", f.Name, err)
		}
		for _, nf := range nr.File {
			if nf.FileInfo().IsDir() || filepath.Ext(nf.Name) != ".class" {
				continue
			}
			entries = append(entries, EntryInfo{
				Name:             nf.Name,
				Jar:              f.Name,
				UncompressedSize: nf.UncompressedSize64,
			})
		}
	}
	return entries, nil
}

var errFound = errors.New("entry found")

// Extract returns the bytes of a single class entry. The name is
// either an entry path ("com/example/Foo.class") or a nested form
// ("lib/util.jar!com/example/Foo.class").
func Extract(path, name string) ([]byte, error) {
	jarName, entryName, nested := strings.Cut(name, "!")
	if !nested {
		jarName, entryName = "", name
	}

	var data []byte
	err := Scan(path, func(e Entry) error {
		if e.Name == entryName && e.Jar == jarName {
			data = e.Data
			return errFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, errFound) {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("no class entry %q in %s", name, path)
	}
	return data, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
