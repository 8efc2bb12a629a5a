package media

import (
	"context"
	"errors"
	"io"

	"freshcart-be/internal/logger"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

const uploadFolder = "freshcart"

// UploadResult carries what the store needs to serve and later delete
// an uploaded image.
type UploadResult struct {
	URL      string
	PublicID string
}

// Uploader abstracts image storage so handlers can be tested without
// a Cloudinary account.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}

type cloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(cloudURL string) (Uploader, error) {
	if cloudURL == "" {
		return nil, errors.New("CLOUDINARY_URL is not set")
	}

	cld, err := cloudinary.NewFromURL(cloudURL)
	if err != nil {
		return nil, err
	}
	return &cloudinaryUploader{cld: cld}, nil
}

func (u *cloudinaryUploader) Upload(ctx context.Context, file io.Reader) (*UploadResult, error) {
	log := logger.FromCtx(ctx)

	res, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder: uploadFolder,
	})
	if err != nil {
		log.Error("cloudinary upload failed", zap.Error(err))
		return nil, err
	}

	log.Info("image uploaded", zap.String("public_id", res.PublicID))
	return &UploadResult{
		URL:      res.SecureURL,
		PublicID: res.PublicID,
	}, nil
}

func (u *cloudinaryUploader) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}

	_, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		logger.FromCtx(ctx).Error("cloudinary delete failed",
			zap.String("public_id", publicID),
			zap.Error(err),
		)
	}
	return err
}
