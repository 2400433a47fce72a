package httpclient

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"sort"
)

// MethodOverrideField tells the remote API which verb a multipart POST stands for.
const MethodOverrideField = "_method"

type FileUpload struct {
	FieldName string
	FileName  string
	Content   []byte
}

// BuildMultipartBody encodes fields and files as multipart/form-data and
// returns the body with its Content-Type header value.
func BuildMultipartBody(fields map[string]string, files []FileUpload) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := writer.WriteField(key, fields[key]); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", key, err)
		}
	}

	for _, file := range files {
		part, err := writer.CreateFormFile(file.FieldName, file.FileName)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form file %s: %w", file.FileName, err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, "", fmt.Errorf("failed to write form file %s: %w", file.FileName, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}

// MultipartRequest builds a POST carrying fields and files. A non-empty
// overrideMethod is sent as the method override field, since browsers and some
// servers only parse multipart bodies on POST.
func MultipartRequest(path, overrideMethod string, fields map[string]string, files []FileUpload) (HttpRequest, error) {
	if overrideMethod != "" && overrideMethod != http.MethodPost {
		copied := make(map[string]string, len(fields)+1)
		for k, v := range fields {
			copied[k] = v
		}
		copied[MethodOverrideField] = overrideMethod
		fields = copied
	}

	body, contentType, err := BuildMultipartBody(fields, files)
	if err != nil {
		return HttpRequest{}, err
	}

	return HttpRequest{
		Path:   path,
		Method: http.MethodPost,
		Body:   body,
		Headers: map[string]string{
			"Content-Type": contentType,
			"Accept":       "application/json",
		},
	}, nil
}
