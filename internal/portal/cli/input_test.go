package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("  alex@cruisytravel.com  \n"))

	got, err := GetSimpleText(r, "Enter email", &out)

	require.NoError(t, err)
	require.Equal(t, "alex@cruisytravel.com", got)
	require.Contains(t, out.String(), "Enter email")
}

func TestGetSimpleText_PartialLineAtEOF(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("no-newline"))

	got, err := GetSimpleText(r, "Enter email", &out)

	require.NoError(t, err)
	require.Equal(t, "no-newline", got)
}

func TestGetMultiline(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("first line\nsecond line\n\nignored\n"))

	got, err := GetMultiline(r, "Enter bio", &out)

	require.NoError(t, err)
	require.Equal(t, "first line\nsecond line", got)
}

func TestGetMultiline_EmptyInputClears(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("\n"))

	got, err := GetMultiline(r, "Enter bio", &out)

	require.NoError(t, err)
	require.Empty(t, got)
}

func TestGetPassword_UsesStub(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("hunter2"), nil }
	t.Cleanup(func() { readPassword = orig })

	var out bytes.Buffer
	pw, err := GetPassword(&out)

	require.NoError(t, err)
	require.Equal(t, []byte("hunter2"), pw)
	require.Contains(t, out.String(), "Enter password")
}
