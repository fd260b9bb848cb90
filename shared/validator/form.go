package validator

import (
	"encoding/json"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"

	"sportsassist/shared/constant"
	"sportsassist/shared/failure"
)

// FormData is the multipart field carrying the JSON part of a form upload.
const FormData = "data"

// Decode reads a JSON body, or the "data" field of a multipart form, into
// data without validating it. Callers attach uploaded files and then call
// ValidateStruct.
func Decode[T any](request *http.Request, data *T) error {
	mediaType, _, _ := mime.ParseMediaType(request.Header.Get(constant.RequestHeaderContentType))
	if mediaType != constant.ContentTypeMultipartFormData {
		if err := json.NewDecoder(request.Body).Decode(data); err != nil {
			return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
		}

		return nil
	}

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to parse multipart form: %w", err)) //nolint:wrapcheck
	}

	raw := request.FormValue(FormData)
	if raw == constant.Empty {
		return nil
	}

	if err := json.Unmarshal([]byte(raw), data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode %s field: %w", FormData, err)) //nolint:wrapcheck
	}

	return nil
}

// FormFile returns the named upload of an already parsed multipart request.
// A missing file is not an error.
func FormFile(request *http.Request, name string) (multipart.File, *multipart.FileHeader) {
	if request.MultipartForm == nil {
		return nil, nil
	}

	file, header, err := request.FormFile(name)
	if err != nil {
		return nil, nil
	}

	return file, header
}
