package service

import (
	"fmt"
	"sync"

	"github.com/ocrlab/pdf-ocr-be/types"
)

// RegistryService holds the set of uploaded files for the session, in
// insertion order. Processing only ever reads a snapshot taken via List,
// so uploads and removals never interleave with a running extraction.
type RegistryService struct {
	mu    sync.Mutex
	files []types.UploadedFile
}

func NewRegistryService() *RegistryService {
	return &RegistryService{
		files: make([]types.UploadedFile, 0),
	}
}

// Add appends a file unless its name is already registered
func (s *RegistryService) Add(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.files {
		if f.Name == name {
			return fmt.Errorf("file already registered: %s", name)
		}
	}
	s.files = append(s.files, types.UploadedFile{Name: name, Data: data})
	return nil
}

// Remove deletes a file by name
func (s *RegistryService) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.files {
		if f.Name == name {
			s.files = append(s.files[:i], s.files[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("file not registered: %s", name)
}

// List returns a snapshot of the registered files in insertion order
func (s *RegistryService) List() []types.UploadedFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.UploadedFile, len(s.files))
	copy(out, s.files)
	return out
}

// Infos returns the listing entries sent to clients
func (s *RegistryService) Infos() []types.DocumentInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	infos := make([]types.DocumentInfo, 0, len(s.files))
	for _, f := range s.files {
		infos = append(infos, types.DocumentInfo{Name: f.Name, Size: int64(len(f.Data))})
	}
	return infos
}
