package web

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/quangdm/stmail/internal/attach"
)

// formUploads reads every file uploaded under the given multipart field into
// memory. A form without that field yields an empty slice.
func formUploads(ctx *fiber.Ctx, field string) ([]attach.UploadedFile, error) {
	form, err := ctx.MultipartForm()
	if err != nil {
		return nil, err
	}

	var uploads []attach.UploadedFile
	for _, header := range form.File[field] {
		f, err := header.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, attach.UploadedFile{
			Name:    header.Filename,
			Size:    header.Size,
			Content: content,
		})
	}
	return uploads, nil
}
