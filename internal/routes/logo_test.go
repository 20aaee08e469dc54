package routes

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *testServer) upload(t *testing.T, fileName string, content []byte, clientID string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/logos", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	req.Header.Set("X-Client-ID", clientID)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestLogoLifecycle(t *testing.T) {
	srv := newTestServer(t)
	client := map[string]string{"X-Client-ID": "browser-1"}

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 2, 2))))

	rec, env := srv.upload(t, "logo.png", img.Bytes(), "browser-1")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var logo struct {
		URL      string `json:"url"`
		FullPath string `json:"full_path"`
	}
	require.NoError(t, json.Unmarshal(env.Body, &logo))
	assert.Regexp(t, `^/uploads/logos/.+\.png$`, logo.URL)

	rec, _ = srv.upload(t, "notes.png", []byte("plain text, not an image"), "browser-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	_, env = srv.do(t, http.MethodGet, "/api/preferences", "", client)
	var prefs struct {
		LastLogo *struct {
			URL      string `json:"url"`
			FileName string `json:"file_name"`
		} `json:"last_logo"`
	}
	require.NoError(t, json.Unmarshal(env.Body, &prefs))
	require.NotNil(t, prefs.LastLogo)
	assert.Equal(t, logo.URL, prefs.LastLogo.URL)
	assert.Equal(t, "logo.png", prefs.LastLogo.FileName)

	_, env = srv.do(t, http.MethodGet, "/api/logos", "", nil)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Body, &list))
	assert.Len(t, list, 1)

	rec, _ = srv.do(t, http.MethodDelete, "/api/logos?path=/uploads/other/x.png", "", client)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = srv.do(t, http.MethodDelete, "/api/logos?path="+url.QueryEscape(logo.URL), "", client)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	_, env = srv.do(t, http.MethodGet, "/api/logos", "", nil)
	require.NoError(t, json.Unmarshal(env.Body, &list))
	assert.Empty(t, list)

	_, env = srv.do(t, http.MethodGet, "/api/preferences", "", client)
	prefs.LastLogo = nil
	require.NoError(t, json.Unmarshal(env.Body, &prefs))
	assert.Nil(t, prefs.LastLogo)
}
