package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ocrlab/pdf-ocr-be/types"
	"github.com/ocrlab/pdf-ocr-be/utils"
)

// OutputService persists accumulated Markdown documents to the output
// directory, one file per source PDF, overwriting unconditionally.
type OutputService struct {
	outputDir string
}

func NewOutputService(outputDir string) *OutputService {
	return &OutputService{outputDir: outputDir}
}

func (s *OutputService) Dir() string {
	return s.outputDir
}

// EnsureDir creates the output directory if it does not exist
func (s *OutputService) EnsureDir() error {
	return os.MkdirAll(s.outputDir, 0755)
}

// Write stores the document as <outputDir>/<basename>.md and returns the
// written path. An existing file of the same name is replaced.
func (s *OutputService) Write(doc types.OutputDocument) (string, error) {
	if err := s.EnsureDir(); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	name := utils.SanitizeFileName(utils.BaseNameWithoutExt(doc.SourceName)) + ".md"
	path := filepath.Join(s.outputDir, name)
	if err := os.WriteFile(path, []byte(doc.Markdown), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// List returns the Markdown files currently in the output directory
func (s *OutputService) List() ([]types.OutputInfo, error) {
	entries, err := os.ReadDir(s.outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []types.OutputInfo{}, nil
		}
		return nil, err
	}

	infos := make([]types.OutputInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		infos = append(infos, types.OutputInfo{
			Name:       entry.Name(),
			Size:       fi.Size(),
			ModifiedAt: fi.ModTime(),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}
