package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirevision/interview-api/internal/apperr"
)

func TestSaveResumeWritesUniqueFile(t *testing.T) {
	dir := t.TempDir()
	svc := NewStorageService(dir)

	path, err := svc.SaveResume("My Resume.PDF", []byte("%PDF-1.4 fake"))
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "resume_"))
	assert.True(t, strings.HasSuffix(path, ".pdf"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), data)

	// A second upload of the same name must not collide.
	other, err := svc.SaveResume("My Resume.PDF", []byte("other"))
	require.NoError(t, err)
	assert.NotEqual(t, path, other)
}

func TestSaveResumeRejectsNonPDF(t *testing.T) {
	svc := NewStorageService(t.TempDir())

	for _, name := range []string{"resume.docx", "resume.txt", "resume"} {
		_, err := svc.SaveResume(name, []byte("data"))
		assert.ErrorIs(t, err, apperr.ErrValidation, name)
	}
}

func TestEnsureUploadDirCreatesPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads", "resumes")
	svc := NewStorageService(dir)

	require.NoError(t, svc.EnsureUploadDir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
