package validator_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sportsassist/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uploadRequest struct {
	DocumentType string `json:"document_type"`
	ChildID      string `json:"child_id"`
}

func TestDecode_JSON(t *testing.T) {
	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"document_type":"waiver"}`))
	request.Header.Set("Content-Type", "application/json")

	var req uploadRequest
	require.NoError(t, validator.Decode(request, &req))
	assert.Equal(t, "waiver", req.DocumentType)

	file, header := validator.FormFile(request, "file")
	assert.Nil(t, file)
	assert.Nil(t, header)
}

func TestDecode_InvalidJSON(t *testing.T) {
	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"document_type":`))

	var req uploadRequest
	assert.Error(t, validator.Decode(request, &req))
}

func TestDecode_Multipart(t *testing.T) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	require.NoError(t, writer.WriteField("data", `{"document_type":"medical_form","child_id":"c1"}`))

	part, err := writer.CreateFormFile("file", "form.pdf")
	require.NoError(t, err)

	_, err = part.Write([]byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, "/", body)
	request.Header.Set("Content-Type", writer.FormDataContentType())

	var req uploadRequest
	require.NoError(t, validator.Decode(request, &req))
	assert.Equal(t, "medical_form", req.DocumentType)
	assert.Equal(t, "c1", req.ChildID)

	file, header := validator.FormFile(request, "file")
	require.NotNil(t, file)
	assert.Equal(t, "form.pdf", header.Filename)

	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(content))

	missing, _ := validator.FormFile(request, "image")
	assert.Nil(t, missing)
}
