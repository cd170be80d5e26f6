package attach

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageOversizedSkipped(t *testing.T) {
	stager := &Stager{Dir: t.TempDir()}
	files := []UploadedFile{
		{Name: "a.txt", Size: 3, Content: []byte("aaa")},
		{Name: "big.bin", Size: 11 * 1024 * 1024, Content: []byte("stub")},
		{Name: "c.txt", Size: 3, Content: []byte("ccc")},
	}

	staged, warnings := stager.Stage(files)

	require.Len(t, staged, 2)
	assert.Equal(t, "a.txt", staged[0].Name)
	assert.Equal(t, "c.txt", staged[1].Name)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "big.bin")
	assert.Contains(t, warnings[0], "10MB")
}

func TestStageWritesContent(t *testing.T) {
	stager := &Stager{Dir: t.TempDir()}
	staged, warnings := stager.Stage([]UploadedFile{
		{Name: "doc.pdf", Size: 8, Content: []byte("pdfbytes")},
	})

	require.Empty(t, warnings)
	require.Len(t, staged, 1)

	base := filepath.Base(staged[0].Path)
	assert.True(t, strings.HasPrefix(base, "stmail_"), "temp name %q should carry the prefix", base)
	assert.True(t, strings.HasSuffix(base, ".pdf"), "temp name %q should keep the extension", base)

	content, err := os.ReadFile(staged[0].Path)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdfbytes"), content)
}

func TestStageUnwritableDirIsolated(t *testing.T) {
	stager := &Stager{Dir: filepath.Join(t.TempDir(), "missing")}
	staged, warnings := stager.Stage([]UploadedFile{
		{Name: "a.txt", Size: 1, Content: []byte("a")},
	})

	assert.Empty(t, staged)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "a.txt")
}

func TestCleanup(t *testing.T) {
	stager := &Stager{Dir: t.TempDir()}
	staged, _ := stager.Stage([]UploadedFile{
		{Name: "a.txt", Size: 1, Content: []byte("a")},
		{Name: "b.txt", Size: 1, Content: []byte("b")},
	})
	require.Len(t, staged, 2)

	// one file already gone, Cleanup must not care
	require.NoError(t, os.Remove(staged[0].Path))
	Cleanup(staged)

	for _, att := range staged {
		_, err := os.Stat(att.Path)
		assert.True(t, os.IsNotExist(err), "expected %s to be removed", att.Path)
	}
}
