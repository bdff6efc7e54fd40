package usecase

import (
	"bytes"
	"encoding/binary"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"appointment-booking/internal/dto/request"
	"appointment-booking/pkg/storage"
	"appointment-booking/pkg/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testBooking = utils.BookingConfig{
	OnlineCapacity:   5,
	PhysicalCapacity: 20,
	StrictCapacity:   true,
}

func submitRequest(date, appointmentType string) *request.SubmitAppointmentRequest {
	return &request.SubmitAppointmentRequest{
		Date:            date,
		AppointmentType: appointmentType,
		FullName:        "Ada Lovelace",
		StreetAddress:   "12 Analytical Row",
		Area:            "Marylebone",
		Phone:           "555-0100",
		Email:           "ada@example.com",
		MeetingPurpose:  "Consultation",
	}
}

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

func newVideoStore(t *testing.T) (*storage.LocalVideoStore, string) {
	dir := filepath.Join(t.TempDir(), "uploads")
	videos, err := storage.NewLocalVideoStore(dir, 1<<20, zap.NewNop())
	require.NoError(t, err)
	return videos, dir
}

func dirEntries(t *testing.T, dir string) []os.DirEntry {
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return entries
}
