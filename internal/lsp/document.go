package lsp

import "sync"

// DocumentStore tracks the buffers the client has open, keyed by URI. Lint
// runs read these buffers instead of the files on disk, so unsaved edits are
// checked too.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

type document struct {
	version int
	content string
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*document)}
}

// Open records a newly opened buffer. Reopening a URI replaces it.
func (ds *DocumentStore) Open(uri string, version int, content string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[uri] = &document{version: version, content: content}
}

// Update replaces the buffer for an open document. Changes carrying a version
// older than the stored one arrived out of order and are discarded, as are
// updates for URIs that were never opened.
func (ds *DocumentStore) Update(uri string, version int, content string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	doc, ok := ds.docs[uri]
	if !ok || version < doc.version {
		return
	}
	doc.version = version
	doc.content = content
}

// Close forgets a buffer.
func (ds *DocumentStore) Close(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

// Get returns the current buffer for an open document.
func (ds *DocumentStore) Get(uri string) (string, bool) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	doc, ok := ds.docs[uri]
	if !ok {
		return "", false
	}
	return doc.content, true
}
