package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// ImageService stores recipe card images in an S3-compatible bucket. Image
// generation is a best-effort sub-step of recipe synthesis: callers swallow
// failures and fall back to an empty image URL.
type ImageService interface {
	UploadRecipeCard(ctx context.Context, recipeID, title string) (string, error)
}

type imageService struct {
	s3Client *s3.Client
	bucket   string
	baseURL  string
	logger   zerolog.Logger
}

// NewImageService creates an ImageService writing to the given bucket.
func NewImageService(s3Client *s3.Client, bucket, baseURL string, logger zerolog.Logger) ImageService {
	return &imageService{
		s3Client: s3Client,
		bucket:   bucket,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		logger:   logger.With().Str("service", "ImageService").Logger(),
	}
}

func (s *imageService) UploadRecipeCard(ctx context.Context, recipeID, title string) (string, error) {
	key := fmt.Sprintf("recipes/%s.svg", recipeID)
	card := renderRecipeCard(title)

	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(card),
		ContentType: aws.String("image/svg+xml"),
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("recipe_id", recipeID).Msg("Failed to upload recipe card image")
		return "", fmt.Errorf("upload recipe card for %s: %w", recipeID, err)
	}
	return fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, key), nil
}

// renderRecipeCard produces a simple SVG title card. Deterministic for a
// given title.
func renderRecipeCard(title string) []byte {
	escaped := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(title)
	return []byte(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="640" height="360"><rect width="640" height="360" fill="#f4ede4"/><text x="320" y="190" text-anchor="middle" font-family="Georgia, serif" font-size="28" fill="#3d2f24">%s</text></svg>`,
		escaped,
	))
}
