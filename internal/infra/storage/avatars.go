package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/estudiobarber/turnos-api/internal/config"
)

const avatarSize = 256

// AvatarStore keeps barber avatars in S3 as fixed-size webp objects.
type AvatarStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewAvatarStore(cfg *config.Config) *AvatarStore {
	client := s3.New(s3.Options{
		Region: cfg.S3Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				cfg.S3AccessKey,
				cfg.S3SecretKey,
				"",
			),
		),
	})

	baseURL := cfg.S3BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &AvatarStore{
		client:  client,
		bucket:  cfg.S3Bucket,
		baseURL: baseURL,
	}
}

// Upload decodes src (jpeg or png), scales it to a square avatar, re-encodes
// it as webp and stores it under a stable per-barber key. Returns the public
// object URL for Barber.AvatarURL.
func (s *AvatarStore) Upload(ctx context.Context, barberID uint, src io.Reader) (string, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return "", fmt.Errorf("decode avatar: %w", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, avatarSize, avatarSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	key := fmt.Sprintf("barbers/%d.webp", barberID)

	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	}); err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.baseURL, key), nil
}
