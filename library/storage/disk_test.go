package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiskSave(t *testing.T) {
	dir := t.TempDir()
	disk, err := NewDisk(filepath.Join(dir, "uploads"), "/uploads/")
	require.NoError(t, err)

	publicPath, err := disk.Save("avatar.png", strings.NewReader("fake-png-bytes"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(publicPath, "/uploads/"))
	require.True(t, strings.HasSuffix(publicPath, "-avatar.png"))

	onDisk := filepath.Join(disk.Root(), strings.TrimPrefix(publicPath, "/uploads/"))
	content, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	require.Equal(t, "fake-png-bytes", string(content))
}

func TestDiskSaveStripsDirectories(t *testing.T) {
	disk, err := NewDisk(t.TempDir(), "/uploads")
	require.NoError(t, err)

	publicPath, err := disk.Save("../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)
	require.NotContains(t, publicPath, "..")
	require.True(t, strings.HasSuffix(publicPath, "-passwd"))
}

func TestDiskSaveUniqueNames(t *testing.T) {
	disk, err := NewDisk(t.TempDir(), "/uploads")
	require.NoError(t, err)

	first, err := disk.Save("pic.jpg", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := disk.Save("pic.jpg", strings.NewReader("b"))
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}
