package api

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/HonzaMatousek/libdivecomputer/internal/logbook"
	"github.com/HonzaMatousek/libdivecomputer/pkg/divecomputer"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	store, err := logbook.Open(filepath.Join(t.TempDir(), "logbook"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewServer(store, log, NewMetrics(prometheus.NewRegistry())).Router()
}

// dumpHex builds a hex-encoded dive record with a footer.
func dumpHex(timestamp uint32, interval, threshold uint16, records [][2]uint16) string {
	buf := make([]byte, 0, 16+len(records)*4+4)
	buf = append(buf, 0x00, 0x00, 0x00, 0x00)
	buf = binary.LittleEndian.AppendUint32(buf, timestamp)
	buf = binary.LittleEndian.AppendUint16(buf, interval)
	buf = binary.LittleEndian.AppendUint16(buf, threshold)
	buf = append(buf, 0x00, 0x00, 0x00, 0x00)
	for _, r := range records {
		buf = binary.LittleEndian.AppendUint16(buf, r[0])
		buf = binary.LittleEndian.AppendUint16(buf, r[1])
	}
	buf = append(buf, 0xFF, 0xFF, 0xFF, 0xFF)
	return hex.EncodeToString(buf)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func do(t *testing.T, h http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func importDive(t *testing.T, h http.Handler) string {
	t.Helper()
	req := ImportRequest{
		Hex:         dumpHex(900, 10, 0, [][2]uint16{{29315, 1400}, {27415, 1500}}),
		DevTime:     1000,
		SysTime:     time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		Atmospheric: 100000,
		Hydrostatic: 10000,
	}
	blob, err := json.Marshal(req)
	require.NoError(t, err)

	rec := do(t, h, http.MethodPost, "/api/v1/dives", bytes.NewReader(blob))
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	require.True(t, env.Success)

	var data map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data["id"])
	return data["id"]
}

func TestHealth(t *testing.T) {
	h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	require.True(t, env.Success)
	require.Contains(t, string(env.Data), "healthy")
}

func TestFamilies(t *testing.T) {
	h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/api/v1/families", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var families []string
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &families))
	require.Contains(t, families, "reefnet_sensusultra")
}

func TestImportListGetDelete(t *testing.T) {
	h := newTestServer(t)
	id := importDive(t, h)

	rec := do(t, h, http.MethodGet, "/api/v1/dives", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summaries []DiveSummary
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &summaries))
	require.Len(t, summaries, 1)
	require.Equal(t, id, summaries[0].ID)
	require.Equal(t, 2, summaries[0].SampleCount)
	require.InDelta(t, 5.0, summaries[0].MaxDepth, 1e-9)
	require.InDelta(t, 20.0, summaries[0].DiveTime, 1e-9)

	rec = do(t, h, http.MethodGet, "/api/v1/dives/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var dive logbook.Dive
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &dive))
	require.Equal(t, "reefnet_sensusultra", dive.Family)
	require.Len(t, dive.Samples, 2)
	require.True(t, dive.StartTime.Equal(time.Date(2024, 3, 1, 7, 58, 20, 0, time.UTC)))

	rec = do(t, h, http.MethodGet, "/api/v1/dives/"+id+"/samples", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var samples []divecomputer.Sample
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &samples))
	require.Len(t, samples, 2)
	require.InDelta(t, 1.0, samples[1].Temperature, 1e-9)

	rec = do(t, h, http.MethodDelete, "/api/v1/dives/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/dives/"+id, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.False(t, decode(t, rec).Success)
}

func TestImportInvalidBody(t *testing.T) {
	h := newTestServer(t)
	rec := do(t, h, http.MethodPost, "/api/v1/dives", strings.NewReader("{"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportMissingHex(t *testing.T) {
	h := newTestServer(t)
	rec := do(t, h, http.MethodPost, "/api/v1/dives", strings.NewReader("{}"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, decode(t, rec).Error, "hex dump is required")
}

func TestImportRejectedDump(t *testing.T) {
	h := newTestServer(t)
	rec := do(t, h, http.MethodPost, "/api/v1/dives", strings.NewReader(`{"hex":"1234"}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, decode(t, rec).Error, "decode dump")
}

func TestGetMissingDive(t *testing.T) {
	h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/api/v1/dives/nope", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteMissingDive(t *testing.T) {
	h := newTestServer(t)
	rec := do(t, h, http.MethodDelete, "/api/v1/dives/nope", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEmptyListIsArray(t *testing.T) {
	h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/api/v1/dives", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t)
	do(t, h, http.MethodGet, "/api/v1/health", nil)

	// The endpoint must expose the registry the handlers record into.
	rec := do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "divelog_http_requests_total")
}
