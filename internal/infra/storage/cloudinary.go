package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const uploadFolder = "slots_ads"

// CloudinaryUploader pushes creatives into a fixed Cloudinary folder.
type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryUploader(cloudName, apiKey, apiSecret string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryUploader{cld: cld}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, image []byte) (string, error) {
	resp, err := u.cld.Upload.Upload(ctx, bytes.NewReader(image), uploader.UploadParams{
		Folder: uploadFolder,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.SecureURL == "" {
		return "", errors.New("cloudinary upload: empty secure_url")
	}
	return resp.SecureURL, nil
}
