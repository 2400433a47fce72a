package controller

import (
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/alimikegami/perfume-store/internal/dto"
	"github.com/alimikegami/perfume-store/pkg/errs"
	"github.com/alimikegami/perfume-store/pkg/response"
	"github.com/labstack/echo/v4"
)

func writeError(e echo.Context, err error) error {
	return response.WriteErrorResponse(e, err, response.ValidationErrors(err))
}

// validationSummary renders field errors as one line, e.g.
// "Validation failed: email (email), subject (required)".
func validationSummary(err error) string {
	fields := response.ValidationErrors(err)
	if len(fields) == 0 {
		return errs.ErrValidation.Error()
	}

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", f.Field, f.Tag))
	}

	return errs.ErrValidation.Error() + ": " + strings.Join(parts, ", ")
}

func paramID(e echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(e.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s", errs.ErrClient, name)
	}
	return id, nil
}

func isMultipart(e echo.Context) bool {
	return strings.HasPrefix(e.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// formFiles reads every upload under the given field names.
func formFiles(e echo.Context, fields ...string) ([]dto.ImageFile, error) {
	if !isMultipart(e) {
		return nil, nil
	}

	form, err := e.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrClient, err)
	}

	var files []dto.ImageFile
	for _, field := range fields {
		for _, header := range form.File[field] {
			file, err := readFile(header)
			if err != nil {
				return nil, err
			}
			files = append(files, file)
		}
	}

	return files, nil
}

func readFile(header *multipart.FileHeader) (dto.ImageFile, error) {
	f, err := header.Open()
	if err != nil {
		return dto.ImageFile{}, fmt.Errorf("%w: %v", errs.ErrClient, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return dto.ImageFile{}, fmt.Errorf("%w: %v", errs.ErrClient, err)
	}

	return dto.ImageFile{FileName: header.Filename, Content: content}, nil
}
