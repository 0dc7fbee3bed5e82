package converter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	docsysSvc "yogablocks/internal/domain/services/docsystem"
)

// ConverterRegistry manages content converters and routes input by file
// extension (imports) or by format name (editor saves).
//
// Thread-safe for concurrent access.
type ConverterRegistry struct {
	mu         sync.RWMutex
	converters map[string]docsysSvc.ContentConverter // key: file extension (e.g., ".html")
	byName     map[string]docsysSvc.ContentConverter // key: format name (e.g., "html")
}

// NewConverterRegistry creates a registry with standard converters pre-registered.
func NewConverterRegistry() *ConverterRegistry {
	registry := &ConverterRegistry{
		converters: make(map[string]docsysSvc.ContentConverter),
		byName:     make(map[string]docsysSvc.ContentConverter),
	}

	registry.Register(NewMarkdownConverter())
	registry.Register(NewTextConverter())
	registry.Register(NewHTMLConverter())

	return registry
}

// Register adds a converter and associates it with its name and supported extensions.
// Extensions are normalized to lowercase with leading dot.
func (r *ConverterRegistry) Register(converter docsysSvc.ContentConverter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byName[strings.ToLower(converter.Name())] = converter
	for _, ext := range converter.SupportedExtensions() {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		r.converters[ext] = converter
	}
}

// GetConverter retrieves a converter for the given file extension, or nil.
// Extension lookup is case-insensitive.
func (r *ConverterRegistry) GetConverter(fileExt string) docsysSvc.ContentConverter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.converters[strings.ToLower(fileExt)]
}

// GetByName retrieves a converter by format name, or nil.
func (r *ConverterRegistry) GetByName(name string) docsysSvc.ContentConverter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName[strings.ToLower(name)]
}

// Convert selects a converter by file extension and performs the conversion.
func (r *ConverterRegistry) Convert(ctx context.Context, filename string, content []byte) (string, error) {
	ext := filepath.Ext(filename)
	converter := r.GetConverter(ext)

	if converter == nil {
		return "", fmt.Errorf("unsupported file type: %q", ext)
	}

	return converter.Convert(ctx, content)
}

// ConvertFormat selects a converter by format name and performs the conversion.
func (r *ConverterRegistry) ConvertFormat(ctx context.Context, format string, content []byte) (string, error) {
	converter := r.GetByName(format)
	if converter == nil {
		return "", fmt.Errorf("unsupported format: %q", format)
	}
	return converter.Convert(ctx, content)
}

// SupportedExtensions returns all registered file extensions.
func (r *ConverterRegistry) SupportedExtensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.converters))
	for ext := range r.converters {
		exts = append(exts, ext)
	}
	return exts
}
