package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/jclass/jar"
	"github.com/dhamidi/jclass/java"
)

var log = commonlog.GetLogger("jclass.scanner")

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Request describes one scan to perform. Exactly one of Path,
// ClassFiles, or Archive should be set.
type Request struct {
	ID         string
	Path       string
	ClassFiles []string
	Archive    string
	CreatedAt  time.Time
}

type Result struct {
	ID        string
	Status    Status
	Request   Request
	Classes   []*java.ClassModel
	Error     string
	Errors    []string
	StartedAt time.Time
	EndedAt   time.Time
	Progress  int
	Total     int
}

func (s *Result) ProgressPercent() int {
	if s.Total == 0 {
		return 0
	}
	return (s.Progress * 100) / s.Total
}

// Scanner decodes class files and archives in the background. Submit
// queues a request and returns immediately; poll Get for completion.
type Scanner struct {
	mu       sync.RWMutex
	scans    map[string]*Result
	requests chan Request
	nextID   int
}

func New() *Scanner {
	s := &Scanner{
		scans:    make(map[string]*Result),
		requests: make(chan Request, 100),
	}
	go s.run()
	return s
}

func (s *Scanner) run() {
	for req := range s.requests {
		s.processScan(req)
	}
}

type scanResult struct {
	classes []*java.ClassModel
	errors  []string
}

func (s *Scanner) processScan(req Request) {
	s.mu.Lock()
	result := s.scans[req.ID]
	result.Status = StatusInProgress
	result.StartedAt = time.Now()
	s.mu.Unlock()

	var sr scanResult

	if req.Path != "" {
		sr = s.scanDirectory(req.ID, req.Path)
	} else if len(req.ClassFiles) > 0 {
		sr = s.scanFiles(req.ID, req.ClassFiles)
	} else if req.Archive != "" {
		sr = s.scanArchiveFile(req.ID, req.Archive)
	} else {
		sr.errors = append(sr.errors, "no path, class files, or archive provided")
	}

	log.Infof("scan %s: %d classes, %d errors", req.ID, len(sr.classes), len(sr.errors))

	s.mu.Lock()
	defer s.mu.Unlock()
	result.EndedAt = time.Now()
	result.Classes = sr.classes
	result.Errors = sr.errors
	if len(sr.errors) > 0 && len(sr.classes) == 0 {
		result.Status = StatusFailed
		result.Error = sr.errors[0]
	} else {
		result.Status = StatusCompleted
	}
}

func (s *Scanner) scanDirectory(id, path string) scanResult {
	var files []string
	var errors []string
	err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			errors = append(errors, fmt.Sprintf("walk %s: %v", p, err))
			return nil
		}
		if !info.IsDir() {
			ext := filepath.Ext(p)
			if ext == ".class" || ext == ".jar" || ext == ".zip" {
				files = append(files, p)
			}
		}
		return nil
	})
	if err != nil {
		errors = append(errors, fmt.Sprintf("walk %s: %v", path, err))
	}
	sr := s.scanFiles(id, files)
	sr.errors = append(errors, sr.errors...)
	return sr
}

func (s *Scanner) scanFiles(id string, files []string) scanResult {
	var classFiles, archives []string
	for _, file := range files {
		switch filepath.Ext(file) {
		case ".class":
			classFiles = append(classFiles, file)
		case ".jar", ".zip":
			archives = append(archives, file)
		}
	}

	total := len(classFiles)
	for _, archive := range archives {
		// errors surface again when the archive is scanned
		if entries, err := jar.List(archive); err == nil {
			total += len(entries)
		}
	}

	s.mu.Lock()
	s.scans[id].Total = total
	s.mu.Unlock()

	progress := 0
	onProgress := func() {
		progress++
		s.mu.Lock()
		s.scans[id].Progress = progress
		s.mu.Unlock()
	}

	var sr scanResult
	for _, file := range classFiles {
		class, err := java.ClassModelFromFile(file)
		if err != nil {
			sr.errors = append(sr.errors, fmt.Sprintf("parse %s: %v", file, err))
		} else {
			sr.classes = append(sr.classes, class)
		}
		onProgress()
	}

	for _, archive := range archives {
		ar := s.scanArchive(archive, onProgress)
		sr.classes = append(sr.classes, ar.classes...)
		sr.errors = append(sr.errors, ar.errors...)
	}
	return sr
}

func (s *Scanner) scanArchiveFile(id, path string) scanResult {
	entries, err := jar.List(path)
	if err != nil {
		return scanResult{errors: []string{fmt.Sprintf("open %s: %v", path, err)}}
	}

	s.mu.Lock()
	s.scans[id].Total = len(entries)
	s.mu.Unlock()

	progress := 0
	return s.scanArchive(path, func() {
		progress++
		s.mu.Lock()
		s.scans[id].Progress = progress
		s.mu.Unlock()
	})
}

func (s *Scanner) scanArchive(path string, onProgress func()) scanResult {
	var sr scanResult
	err := jar.Scan(path, func(e jar.Entry) error {
		log.Debugf("parsing %s in %s", e.FullName(), path)
		class, err := java.ClassModelFromBytes(e.Data)
		if err != nil {
			sr.errors = append(sr.errors, fmt.Sprintf("parse %s in %s: %v", e.FullName(), path, err))
		} else {
			sr.classes = append(sr.classes, class)
		}
		onProgress()
		return nil
	})
	if err != nil {
		sr.errors = append(sr.errors, fmt.Sprintf("scan %s: %v", path, err))
	}
	return sr
}

func (s *Scanner) Submit(req Request) string {
	s.mu.Lock()
	s.nextID++
	req.ID = fmt.Sprintf("%d", s.nextID)
	req.CreatedAt = time.Now()

	s.scans[req.ID] = &Result{
		ID:      req.ID,
		Status:  StatusPending,
		Request: req,
	}
	s.mu.Unlock()

	// the worker takes the lock while draining, so send unlocked
	s.requests <- req
	return req.ID
}

// Get returns a snapshot of the scan with the given id. Callers may
// read it freely while the scan is still running.
func (s *Scanner) Get(id string) (*Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.scans[id]
	if !ok {
		return nil, false
	}
	snapshot := *result
	return &snapshot, true
}

func (s *Scanner) List() []*Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results := make([]*Result, 0, len(s.scans))
	for _, r := range s.scans {
		snapshot := *r
		results = append(results, &snapshot)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Request.CreatedAt.Before(results[j].Request.CreatedAt)
	})
	return results
}

func (s *Scanner) AllClasses() []*java.ClassModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var all []*java.ClassModel
	for _, scan := range s.scans {
		if scan.Status == StatusCompleted {
			all = append(all, scan.Classes...)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})
	return all
}

func (s *Scanner) FindClass(name string) *java.ClassModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, scan := range s.scans {
		if scan.Status == StatusCompleted {
			for _, c := range scan.Classes {
				if c.Name == name {
					return c
				}
			}
		}
	}
	return nil
}
