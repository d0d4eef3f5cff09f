package route

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helperOSS "preschool_backend/internals/helpers/oss"
	"preschool_backend/internals/testutil"
)

var tinyPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

func TestUploadImageLocalFallback(t *testing.T) {
	uid := uuid.New()
	blob := helperOSS.NewLocalBlobService(t.TempDir(), "/uploads")

	app := fiber.New()
	UploadRoutes(app.Group("/api/a", testutil.FakeAuth(uid, "teacher")), blob)

	req := testutil.MultipartRequest(t, http.MethodPost, "/api/a/uploads/image", "image", "Bé vui.png", tinyPNG,
		map[string]string{"slot": "Class Photos"})
	status, env := testutil.Do(t, app, req)
	require.Equal(t, fiber.StatusCreated, status, env.Message)

	var out map[string]string
	env.DecodeData(t, &out)
	assert.True(t, strings.HasPrefix(out["url"], "/uploads/images/class-photos/"+uid.String()+"/"), out["url"])

	req = testutil.MultipartRequest(t, http.MethodPost, "/api/a/uploads/image", "", "", nil, map[string]string{"slot": "x"})
	status, _ = testutil.Do(t, app, req)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = testutil.DoJSON(t, app, http.MethodPost, "/api/a/uploads/image", map[string]string{}, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
