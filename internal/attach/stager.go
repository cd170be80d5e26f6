package attach

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/quangdm/stmail/params"
)

// UploadedFile is one file received from a form submission. Content lives in
// memory only; the document store keeps just name and size.
type UploadedFile struct {
	Name    string
	Size    int64
	Content []byte
}

// StagedAttachment is a staged copy of an upload. Path points at the temp
// file, Name keeps the user-facing filename the upload had.
type StagedAttachment struct {
	Path string
	Name string
}

// Stager copies uploads into uniquely named temp files so they can be read
// back during message assembly. Cleanup of staged files is the caller's job.
type Stager struct {
	Dir string // temp directory, empty means the OS default
}

// Stage writes each upload to its own temp file, preserving the original
// extension. Files over the size cap and files that fail to write are skipped
// with a warning; the rest of the batch still goes through. Returns the
// staged subset in input order plus the user-visible warnings.
func (s *Stager) Stage(files []UploadedFile) ([]StagedAttachment, []string) {
	var staged []StagedAttachment
	var warnings []string
	for _, file := range files {
		if file.Size > params.MaxAttachmentSize {
			warnings = append(warnings, fmt.Sprintf("File '%s' exceeds 10MB and will be skipped.", file.Name))
			continue
		}
		path, err := s.stageOne(file)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("File '%s' could not be staged and will be skipped.", file.Name))
			continue
		}
		staged = append(staged, StagedAttachment{Path: path, Name: file.Name})
	}
	return staged, warnings
}

func (s *Stager) stageOne(file UploadedFile) (string, error) {
	pattern := params.TempFilePrefix + "*" + filepath.Ext(file.Name)
	tmp, err := os.CreateTemp(s.Dir, pattern)
	if err != nil {
		return "", err
	}
	defer tmp.Close()
	if _, err := tmp.Write(file.Content); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

// Cleanup removes every staged file. Best effort: missing files and removal
// failures are ignored.
func Cleanup(staged []StagedAttachment) {
	for _, att := range staged {
		os.Remove(att.Path)
	}
}
