package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// Envelope mengikuti bentuk response helper.Json*
type Envelope struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message"`
	ErrorCode  string              `json:"error_code"`
	Errors     map[string][]string `json:"errors"`
	Data       json.RawMessage     `json:"data"`
	Pagination json.RawMessage     `json:"pagination"`
}

// DecodeData unmarshal field data ke out
func (e Envelope) DecodeData(t testing.TB, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(e.Data, out), "data: %s", string(e.Data))
}

// DoJSON mengirim request JSON (body nil = tanpa body) lewat app.Test.
func DoJSON(t testing.TB, app *fiber.App, method, path string, body any, headers map[string]string) (int, Envelope) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rdr = bytes.NewBufferString(b)
		case []byte:
			rdr = bytes.NewReader(b)
		default:
			raw, err := json.Marshal(body)
			require.NoError(t, err)
			rdr = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return Do(t, app, req)
}

// Do menjalankan request apa adanya dan decode envelope-nya (kalau JSON).
func Do(t testing.TB, app *fiber.App, req *http.Request) (int, Envelope) {
	t.Helper()

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env Envelope
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &env), "body: %s", string(raw))
	}
	return resp.StatusCode, env
}

// Bearer header helper
func Bearer(token string) map[string]string {
	return map[string]string{fiber.HeaderAuthorization: "Bearer " + token}
}
