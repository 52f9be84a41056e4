package codebase

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dhamidi/jclass/jar"
	"github.com/dhamidi/jclass/java"
)

type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*FileInfo
	classes []*java.ClassModel
	origins map[string]string
}

type FileInfo struct {
	Path     string
	Classes  []*java.ClassModel
	ParseErr error
}

func New(rootDir string) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		files:   make(map[string]*FileInfo),
		origins: make(map[string]string),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

func (c *Codebase) ScanAll() error {
	return filepath.Walk(c.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".class", ".jar", ".zip":
			c.ScanFile(path)
		}
		return nil
	})
}

func (c *Codebase) ScanFile(path string) error {
	switch filepath.Ext(path) {
	case ".class":
		return c.scanClassFile(path)
	case ".jar", ".zip":
		return c.scanArchive(path)
	default:
		return fmt.Errorf("unsupported file type: %s", path)
	}
}

func (c *Codebase) scanClassFile(path string) error {
	var classes []*java.ClassModel
	class, err := java.ClassModelFromFile(path)
	if err == nil {
		classes = append(classes, class)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = &FileInfo{
		Path:     path,
		Classes:  classes,
		ParseErr: err,
	}
	c.rebuildClassesLocked()
	return nil
}

func (c *Codebase) scanArchive(path string) error {
	var classes []*java.ClassModel
	var errs []error
	err := jar.Scan(path, func(e jar.Entry) error {
		class, err := java.ClassModelFromBytes(e.Data)
		if err != nil {
			errs = append(errs, fmt.Errorf("parse %s: %w", e.FullName(), err))
			return nil
		}
		classes = append(classes, class)
		return nil
	})
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = &FileInfo{
		Path:     path,
		Classes:  classes,
		ParseErr: errors.Join(errs...),
	}
	c.rebuildClassesLocked()
	return nil
}

func (c *Codebase) rebuildClassesLocked() {
	paths := make([]string, 0, len(c.files))
	for path := range c.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var all []*java.ClassModel
	origins := make(map[string]string)
	for _, path := range paths {
		for _, cls := range c.files[path].Classes {
			all = append(all, cls)
			if _, ok := origins[cls.Name]; !ok {
				origins[cls.Name] = path
			}
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})
	c.classes = all
	c.origins = origins
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
	c.rebuildClassesLocked()
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

func (c *Codebase) AllClasses() []*java.ClassModel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.classes
}

func (c *Codebase) FindClass(name string) *java.ClassModel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, cls := range c.classes {
		if cls.Name == name {
			return cls
		}
	}
	return nil
}

// Origin reports which indexed file a class came from.
func (c *Codebase) Origin(name string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.origins[name]
}

// Search returns classes whose qualified name contains the query,
// ignoring case. An empty query matches everything.
func (c *Codebase) Search(query string) []*java.ClassModel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if query == "" {
		return c.classes
	}
	q := strings.ToLower(query)
	var matches []*java.ClassModel
	for _, cls := range c.classes {
		if strings.Contains(strings.ToLower(cls.Name), q) {
			matches = append(matches, cls)
		}
	}
	return matches
}
