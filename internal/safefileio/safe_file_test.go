package safefileio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/isseis/go-digit-cipher/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		maxSize int64
		want    string
		errType error
	}{
		{
			name: "regular file",
			setup: func(t *testing.T) string {
				path := filepath.Join(testhelpers.SafeTempDir(t), "plain.txt")
				require.NoError(t, os.WriteFile(path, []byte("HELLO"), 0o600))
				return path
			},
			want: "HELLO",
		},
		{
			name: "default limit when size is zero",
			setup: func(t *testing.T) string {
				path := filepath.Join(testhelpers.SafeTempDir(t), "plain.txt")
				require.NoError(t, os.WriteFile(path, []byte("3251232353"), 0o600))
				return path
			},
			maxSize: 0,
			want:    "3251232353",
		},
		{
			name: "missing file",
			setup: func(t *testing.T) string {
				return filepath.Join(testhelpers.SafeTempDir(t), "missing.txt")
			},
			errType: os.ErrNotExist,
		},
		{
			name: "file larger than limit",
			setup: func(t *testing.T) string {
				path := filepath.Join(testhelpers.SafeTempDir(t), "big.txt")
				require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("A", 11)), 0o600))
				return path
			},
			maxSize: 10,
			errType: ErrFileTooLarge,
		},
		{
			name: "symlink",
			setup: func(t *testing.T) string {
				dir := testhelpers.SafeTempDir(t)
				target := filepath.Join(dir, "target.txt")
				require.NoError(t, os.WriteFile(target, []byte("HELLO"), 0o600))
				link := filepath.Join(dir, "link.txt")
				require.NoError(t, os.Symlink(target, link))
				return link
			},
			errType: ErrIsSymlink,
		},
		{
			name: "symlinked parent directory",
			setup: func(t *testing.T) string {
				dir := testhelpers.SafeTempDir(t)
				realDir := filepath.Join(dir, "real")
				require.NoError(t, os.Mkdir(realDir, 0o700))
				require.NoError(t, os.WriteFile(filepath.Join(realDir, "plain.txt"), []byte("HELLO"), 0o600))
				linkDir := filepath.Join(dir, "linked")
				require.NoError(t, os.Symlink(realDir, linkDir))
				return filepath.Join(linkDir, "plain.txt")
			},
			errType: ErrIsSymlink,
		},
		{
			name: "directory",
			setup: func(t *testing.T) string {
				return testhelpers.SafeTempDir(t)
			},
			errType: ErrInvalidFilePath,
		},
		{
			name: "empty path",
			setup: func(_ *testing.T) string {
				return ""
			},
			errType: ErrInvalidFilePath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t)
			content, err := ReadFile(path, tt.maxSize)
			if tt.errType != nil {
				assert.ErrorIs(t, err, tt.errType)
				assert.Nil(t, content)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(content))
		})
	}
}

func TestWriteFile(t *testing.T) {
	t.Run("new file", func(t *testing.T) {
		path := filepath.Join(testhelpers.SafeTempDir(t), "out.txt")
		require.NoError(t, WriteFile(path, []byte("3251232353"), 0o600, false))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "3251232353", string(content))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("existing file without overwrite", func(t *testing.T) {
		path := filepath.Join(testhelpers.SafeTempDir(t), "out.txt")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

		err := WriteFile(path, []byte("new"), 0o600, false)
		assert.ErrorIs(t, err, ErrFileExists)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "old", string(content), "existing file must be left untouched")
	})

	t.Run("existing file with overwrite", func(t *testing.T) {
		path := filepath.Join(testhelpers.SafeTempDir(t), "out.txt")
		require.NoError(t, os.WriteFile(path, []byte("old content"), 0o600))

		require.NoError(t, WriteFile(path, []byte("new"), 0o600, true))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(content))
	})

	t.Run("symlink with overwrite", func(t *testing.T) {
		dir := testhelpers.SafeTempDir(t)
		target := filepath.Join(dir, "target.txt")
		require.NoError(t, os.WriteFile(target, []byte("keep"), 0o600))
		link := filepath.Join(dir, "link.txt")
		require.NoError(t, os.Symlink(target, link))

		err := WriteFile(link, []byte("new"), 0o600, true)
		assert.ErrorIs(t, err, ErrIsSymlink)

		content, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "keep", string(content))
	})

	t.Run("symlinked parent directory with overwrite", func(t *testing.T) {
		dir := testhelpers.SafeTempDir(t)
		realDir := filepath.Join(dir, "real")
		require.NoError(t, os.Mkdir(realDir, 0o700))
		target := filepath.Join(realDir, "out.txt")
		require.NoError(t, os.WriteFile(target, []byte("keep"), 0o600))
		linkDir := filepath.Join(dir, "linked")
		require.NoError(t, os.Symlink(realDir, linkDir))

		err := WriteFile(filepath.Join(linkDir, "out.txt"), []byte("new"), 0o600, true)
		assert.ErrorIs(t, err, ErrIsSymlink)

		content, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "keep", string(content), "existing file must not be truncated")
	})

	t.Run("symlinked parent directory leaves no file", func(t *testing.T) {
		dir := testhelpers.SafeTempDir(t)
		realDir := filepath.Join(dir, "real")
		require.NoError(t, os.Mkdir(realDir, 0o700))
		linkDir := filepath.Join(dir, "linked")
		require.NoError(t, os.Symlink(realDir, linkDir))

		err := WriteFile(filepath.Join(linkDir, "out.txt"), []byte("new"), 0o600, false)
		assert.ErrorIs(t, err, ErrIsSymlink)

		_, err = os.Stat(filepath.Join(realDir, "out.txt"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("missing directory", func(t *testing.T) {
		path := filepath.Join(testhelpers.SafeTempDir(t), "nope", "out.txt")
		err := WriteFile(path, []byte("x"), 0o600, false)
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

type fakeFileInfo struct {
	mode os.FileMode
	size int64
}

func (f fakeFileInfo) Name() string       { return "fake" }
func (f fakeFileInfo) Size() int64        { return f.size }
func (f fakeFileInfo) Mode() os.FileMode  { return f.mode }
func (f fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (f fakeFileInfo) IsDir() bool        { return f.mode.IsDir() }
func (f fakeFileInfo) Sys() any           { return nil }

type fakeFile struct {
	bytes.Buffer
	mode      os.FileMode
	closeErr  error
	writeErr  error
	truncated bool
}

func (f *fakeFile) Truncate(size int64) error {
	f.truncated = true
	f.Buffer.Truncate(int(size))
	return nil
}

func (f *fakeFile) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return f.Buffer.Write(p)
}

func (f *fakeFile) Close() error { return f.closeErr }

func (f *fakeFile) Stat() (os.FileInfo, error) {
	return fakeFileInfo{mode: f.mode, size: int64(f.Len())}, nil
}

type fakeFS struct {
	file    *fakeFile
	removed *[]string
}

func (fs fakeFS) OpenFile(_ string, _ int, _ os.FileMode) (File, error) {
	return fs.file, nil
}

func (fs fakeFS) Remove(name string) error {
	if fs.removed != nil {
		*fs.removed = append(*fs.removed, name)
	}
	return nil
}

func TestWriteFile_CloseError(t *testing.T) {
	errClose := errors.New("close failed")
	fs := fakeFS{file: &fakeFile{closeErr: errClose}}

	err := writeFileWithFS(filepath.Join(testhelpers.SafeTempDir(t), "out.txt"), []byte("11"), 0o600, false, fs)
	assert.ErrorIs(t, err, errClose)
	assert.Equal(t, "11", fs.file.String())
}

func TestWriteFile_WriteError(t *testing.T) {
	errWrite := errors.New("disk full")
	fs := fakeFS{file: &fakeFile{writeErr: errWrite}}

	err := writeFileWithFS(filepath.Join(testhelpers.SafeTempDir(t), "out.txt"), []byte("11"), 0o600, false, fs)
	assert.ErrorIs(t, err, errWrite)
}

func TestWriteFile_RemovesRejectedNewFile(t *testing.T) {
	var removed []string
	fs := fakeFS{file: &fakeFile{mode: os.ModeNamedPipe}, removed: &removed}
	path := filepath.Join(testhelpers.SafeTempDir(t), "out.txt")

	err := writeFileWithFS(path, []byte("11"), 0o600, false, fs)
	assert.ErrorIs(t, err, ErrInvalidFilePath)
	assert.Equal(t, []string{path}, removed)
	assert.Zero(t, fs.file.Len(), "nothing may be written to a rejected file")
}

func TestWriteFile_TruncatesOnlyExistingFiles(t *testing.T) {
	fs := fakeFS{file: &fakeFile{}}
	require.NoError(t, writeFileWithFS(filepath.Join(testhelpers.SafeTempDir(t), "out.txt"), []byte("11"), 0o600, true, fs))
	assert.False(t, fs.file.truncated, "a freshly created file needs no truncation")
}

func TestReadFile_LimitAppliesToContent(t *testing.T) {
	// Stat reports a small size but the stream is longer.
	file := &fakeFile{}
	file.WriteString(strings.Repeat("1", 20))
	fs := fakeFSWithSize{fakeFS: fakeFS{file: file}, size: 2}

	_, err := readFileWithFS(filepath.Join(testhelpers.SafeTempDir(t), "in.txt"), 10, fs)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

type fakeFSWithSize struct {
	fakeFS
	size int64
}

func (fs fakeFSWithSize) OpenFile(_ string, _ int, _ os.FileMode) (File, error) {
	return sizedFile{fakeFile: fs.file, size: fs.size}, nil
}

type sizedFile struct {
	*fakeFile
	size int64
}

func (f sizedFile) Stat() (os.FileInfo, error) {
	return fakeFileInfo{size: f.size}, nil
}

func TestCreateFile(t *testing.T) {
	dir := testhelpers.SafeTempDir(t)
	path := filepath.Join(dir, "run.json")

	file, err := CreateFile(path, 0o600)
	require.NoError(t, err)
	_, err = file.WriteString("{}\n")
	require.NoError(t, err)
	require.NoError(t, file.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(content))

	_, err = CreateFile(path, 0o600)
	assert.ErrorIs(t, err, ErrFileExists)
}

func TestCreateFile_SymlinkedParent(t *testing.T) {
	dir := testhelpers.SafeTempDir(t)
	realDir := filepath.Join(dir, "real")
	require.NoError(t, os.Mkdir(realDir, 0o700))
	linkDir := filepath.Join(dir, "linked")
	require.NoError(t, os.Symlink(realDir, linkDir))

	file, err := CreateFile(filepath.Join(linkDir, "run.json"), 0o600)
	assert.Nil(t, file)
	assert.ErrorIs(t, err, ErrIsSymlink)

	_, err = os.Stat(filepath.Join(realDir, "run.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
