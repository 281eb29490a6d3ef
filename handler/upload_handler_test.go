package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	services "github.com/ocrlab/pdf-ocr-be/service"
	"github.com/ocrlab/pdf-ocr-be/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUploadRouter(t *testing.T) (*gin.Engine, *services.RegistryService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	registry := services.NewRegistryService()
	h := NewUploadHandler(registry, 1<<20)

	router := gin.New()
	router.POST("/api/v1/documents", h.UploadDocumentHandler)
	router.GET("/api/v1/documents", h.ListDocumentsHandler)
	router.DELETE("/api/v1/documents/:name", h.RemoveDocumentHandler)
	return router, registry
}

func multipartBody(t *testing.T, names map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, data := range names {
		part, err := writer.CreateFormFile("file", name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadDocument(t *testing.T) {
	router, registry := newUploadRouter(t)

	body, contentType := multipartBody(t, map[string][]byte{"report.pdf": []byte("%PDF-1.4 fake")})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	files := registry.List()
	require.Len(t, files, 1)
	assert.Equal(t, "report.pdf", files[0].Name)
	assert.Equal(t, []byte("%PDF-1.4 fake"), files[0].Data)
}

func TestUploadRejectsNonPDF(t *testing.T) {
	router, registry := newUploadRouter(t)

	body, contentType := multipartBody(t, map[string][]byte{"notes.txt": []byte("hi")})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, registry.List())
}

func TestUploadRejectsEmptyFile(t *testing.T) {
	router, registry := newUploadRouter(t)

	body, contentType := multipartBody(t, map[string][]byte{"empty.pdf": {}})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, registry.List())
}

func TestUploadDuplicateName(t *testing.T) {
	router, _ := newUploadRouter(t)

	for i, wantCode := range []int{http.StatusOK, http.StatusConflict} {
		body, contentType := multipartBody(t, map[string][]byte{"report.pdf": []byte("data")})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, wantCode, w.Code, "attempt %d", i+1)
	}
}

func TestListAndRemoveDocuments(t *testing.T) {
	router, registry := newUploadRouter(t)
	require.NoError(t, registry.Add("a.pdf", []byte("aa")))
	require.NoError(t, registry.Add("b.pdf", []byte("b")))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Status bool                 `json:"status"`
		Data   []types.DocumentInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Data, 2)
	assert.Equal(t, "a.pdf", res.Data[0].Name)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/documents/a.pdf", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, registry.List(), 1)

	// Removing again is a 404
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/documents/a.pdf", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
