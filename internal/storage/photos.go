package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/BruksfildServices01/agenda-saas/internal/config"
)

const maxPhotoDim = 512

// PhotoStorage guarda a foto do profissional e devolve a URL pública.
type PhotoStorage interface {
	UploadProfessionalPhoto(
		ctx context.Context,
		companyID uint,
		professionalID uint,
		img image.Image,
	) (string, error)
}

type S3PhotoStorage struct {
	client    *s3.Client
	bucket    string
	region    string
	publicURL string
}

// NewS3PhotoStorage retorna nil quando o bucket não está configurado;
// o handler trata storage ausente como recurso desligado.
func NewS3PhotoStorage(cfg *config.Config) *S3PhotoStorage {
	if cfg.S3Bucket == "" {
		return nil
	}

	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}

	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	return &S3PhotoStorage{
		client:    s3.New(opts),
		bucket:    cfg.S3Bucket,
		region:    cfg.S3Region,
		publicURL: strings.TrimRight(cfg.S3PublicURL, "/"),
	}
}

func (s *S3PhotoStorage) UploadProfessionalPhoto(
	ctx context.Context,
	companyID uint,
	professionalID uint,
	img image.Image,
) (string, error) {

	img = downscale(img)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 80}); err != nil {
		return "", err
	}

	key := fmt.Sprintf(
		"companies/%d/professionals/%d/%s.webp",
		companyID, professionalID, uuid.NewString(),
	)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", err
	}

	if s.publicURL != "" {
		return s.publicURL + "/" + key, nil
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

// downscale limita o maior lado a maxPhotoDim mantendo proporção.
func downscale(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if w <= maxPhotoDim && h <= maxPhotoDim {
		return img
	}

	nw, nh := maxPhotoDim, maxPhotoDim
	if w > h {
		nh = h * maxPhotoDim / w
	} else {
		nw = w * maxPhotoDim / h
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

var _ PhotoStorage = (*S3PhotoStorage)(nil)
