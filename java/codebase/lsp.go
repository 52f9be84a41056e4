package codebase

import (
	"bytes"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/jclass/format"
	"github.com/dhamidi/jclass/java"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "jclass"

// maxSymbolResults caps workspace/symbol responses so a query over a
// large jar index stays manageable for the client.
const maxSymbolResults = 200

var log = commonlog.GetLogger("jclass.lsp")

type LSPServer struct {
	codebase *Codebase
	watcher  *FileWatcher
	handler  protocol.Handler
	server   *server.Server
	version  string
}

func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{
		version: version,
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
		TextDocumentHover:          ls.textDocumentHover,
		WorkspaceSymbol:            ls.workspaceSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.codebase = New(rootDir)

	capabilities := ls.handler.CreateServerCapabilities()
	capabilities.DocumentSymbolProvider = true
	capabilities.HoverProvider = true
	capabilities.WorkspaceSymbolProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.codebase.ScanAll()
	log.Infof("indexed %d classes under %s", len(ls.codebase.AllClasses()), ls.codebase.RootDir())

	if javaSrc := os.Getenv("JAVA_SRC"); javaSrc != "" {
		if err := ls.codebase.ScanFile(javaSrc); err != nil {
			log.Errorf("scan %s: %v", javaSrc, err)
		}
	}

	ls.watcher = NewFileWatcher(ls.codebase)
	ls.watcher.Start()
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
	}
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}

	classes := ls.classesForPath(path)
	if len(classes) == 0 {
		return nil, nil
	}

	var symbols []protocol.DocumentSymbol
	for _, cls := range classes {
		symbols = append(symbols, classSymbol(cls))
	}
	return symbols, nil
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}

	classes := ls.classesForPath(path)
	if len(classes) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := format.NewTextEncoder(&buf).Encode(classes[0]); err != nil {
		return nil, nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: "```java\n" + buf.String() + "```",
		},
	}, nil
}

func (ls *LSPServer) workspaceSymbol(ctx *glsp.Context, params *protocol.WorkspaceSymbolParams) ([]protocol.SymbolInformation, error) {
	matches := ls.codebase.Search(params.Query)
	if len(matches) > maxSymbolResults {
		matches = matches[:maxSymbolResults]
	}

	var symbols []protocol.SymbolInformation
	for _, cls := range matches {
		info := protocol.SymbolInformation{
			Name: cls.SimpleName,
			Kind: classSymbolKind(cls),
			Location: protocol.Location{
				URI: pathToURI(ls.codebase.Origin(cls.Name)),
			},
		}
		if cls.Package != "" {
			pkg := cls.Package
			info.ContainerName = &pkg
		}
		symbols = append(symbols, info)
	}
	return symbols, nil
}

// classesForPath returns the indexed classes for a document, indexing
// the file on demand when the client asks about something outside the
// workspace root.
func (ls *LSPServer) classesForPath(path string) []*java.ClassModel {
	if file := ls.codebase.GetFile(path); file != nil {
		return file.Classes
	}
	if err := ls.codebase.ScanFile(path); err != nil {
		return nil
	}
	if file := ls.codebase.GetFile(path); file != nil {
		return file.Classes
	}
	return nil
}

func classSymbol(cls *java.ClassModel) protocol.DocumentSymbol {
	var children []protocol.DocumentSymbol
	var maxLine protocol.UInteger

	for _, f := range cls.Fields {
		kind := protocol.SymbolKindField
		if f.IsStatic && f.IsFinal {
			kind = protocol.SymbolKindConstant
		}
		detail := f.Type.String()
		children = append(children, protocol.DocumentSymbol{
			Name:   f.Name,
			Detail: &detail,
			Kind:   kind,
		})
	}

	for _, m := range cls.Methods {
		name := m.Name
		kind := protocol.SymbolKindMethod
		if m.IsConstructor() {
			name = cls.SimpleName
			kind = protocol.SymbolKindConstructor
		}
		r := methodRange(m)
		if r.Start.Line > maxLine {
			maxLine = r.Start.Line
		}
		detail := methodDetail(name, m)
		children = append(children, protocol.DocumentSymbol{
			Name:           name,
			Detail:         &detail,
			Kind:           kind,
			Range:          r,
			SelectionRange: r,
		})
	}

	qualified := cls.Name
	return protocol.DocumentSymbol{
		Name:     cls.SimpleName,
		Detail:   &qualified,
		Kind:     classSymbolKind(cls),
		Range:    protocol.Range{End: protocol.Position{Line: maxLine}},
		Children: children,
	}
}

func classSymbolKind(cls *java.ClassModel) protocol.SymbolKind {
	switch cls.Kind {
	case java.ClassKindInterface, java.ClassKindAnnotation:
		return protocol.SymbolKindInterface
	case java.ClassKindEnum:
		return protocol.SymbolKindEnum
	default:
		return protocol.SymbolKindClass
	}
}

// methodRange places a method at the line recorded in its line number
// table. Class files carry no column information.
func methodRange(m java.MethodModel) protocol.Range {
	var line protocol.UInteger
	if m.LineNumber > 0 {
		line = protocol.UInteger(m.LineNumber - 1)
	}
	pos := protocol.Position{Line: line}
	return protocol.Range{Start: pos, End: pos}
}

func methodDetail(name string, m java.MethodModel) string {
	params := make([]string, 0, len(m.Parameters))
	for _, p := range m.Parameters {
		params = append(params, p.Type.String())
	}
	return m.ReturnType.String() + " " + name + "(" + strings.Join(params, ", ") + ")"
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return "file://" + filepath.ToSlash(abs)
}
