package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPhotoRef_URLPassedThrough(t *testing.T) {
	ref, err := photoRef("https://cdn.example.com/sunset.jpg")
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/sunset.jpg", ref)
}

func TestPhotoRef_LocalFileBecomesDataURI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.png")
	require.NoError(t, os.WriteFile(path, []byte{0x89, 0x50, 0x4e, 0x47}, 0o600))

	ref, err := photoRef(path)

	require.NoError(t, err)
	require.True(t, strings.HasPrefix(ref, "data:image/png;base64,"), ref)
}

func TestPhotoRef_MissingFile(t *testing.T) {
	_, err := photoRef(filepath.Join(t.TempDir(), "nope.jpg"))
	require.Error(t, err)
}

func TestSummarizeRef(t *testing.T) {
	require.Equal(t, "https://x/y.jpg", summarizeRef("https://x/y.jpg"))
	require.Equal(t, "[image/png, 3 bytes]", summarizeRef("data:image/png;base64,QUJD"))
}
