package storage

import (
	"bytes"
	"encoding/binary"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mp4Bytes is an ftyp box followed by an empty mdat box.
func mp4Bytes() []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint32(24))
	buf.WriteString("ftypisom")
	binary.Write(&buf, binary.BigEndian, uint32(0x200))
	buf.WriteString("isommp41")
	binary.Write(&buf, binary.BigEndian, uint32(8))
	buf.WriteString("mdat")
	buf.Write(make([]byte, 32))
	return buf.Bytes()
}

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("video", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["video"][0]
}

func newStore(t *testing.T, maxBytes int64) (*LocalVideoStore, string) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalVideoStore(dir, maxBytes, zap.NewNop())
	require.NoError(t, err)
	store.now = func() time.Time { return time.UnixMilli(1717236000000) }
	return store, dir
}

func listDir(t *testing.T, dir string) []string {
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestSaveStoresVideo(t *testing.T) {
	store, dir := newStore(t, 1<<20)
	content := mp4Bytes()

	name, err := store.Save(fileHeader(t, "My Holiday Clip!.MP4", content))
	require.NoError(t, err)
	assert.Equal(t, "1717236000000-my-holiday-clip.mp4", name)

	stored, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, content, stored)
}

func TestSaveUsesDetectedExtension(t *testing.T) {
	store, _ := newStore(t, 1<<20)

	name, err := store.Save(fileHeader(t, "../../recording", mp4Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "1717236000000-recording.mp4", name)
}

func TestSaveRejectsNonVideo(t *testing.T) {
	store, dir := newStore(t, 1<<20)

	_, err := store.Save(fileHeader(t, "notes.mp4", []byte("just some plain text, not a movie")))
	assert.ErrorIs(t, err, ErrNotVideo)
	assert.Empty(t, listDir(t, dir))
}

func TestSaveRejectsOversized(t *testing.T) {
	store, dir := newStore(t, 16)

	_, err := store.Save(fileHeader(t, "clip.mp4", mp4Bytes()))
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Empty(t, listDir(t, dir))
}

func TestRemove(t *testing.T) {
	store, dir := newStore(t, 1<<20)

	name, err := store.Save(fileHeader(t, "clip.mp4", mp4Bytes()))
	require.NoError(t, err)

	require.NoError(t, store.Remove(name))
	assert.Empty(t, listDir(t, dir))

	assert.NoError(t, store.Remove(name), "removing a missing file is not an error")
}
