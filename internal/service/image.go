package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/Pohioki/foodgram-project-react/config"
)

// ImageService stores decoded recipe images and hands back retrievable URLs.
// With an S3 bucket configured uploads go there; otherwise files land in the
// local media directory served by the API.
type ImageService struct {
	s3Config *config.S3Config
	mediaDir string
	mediaURL string
}

func NewImageService(s3Config *config.S3Config, mediaDir, mediaURL string) *ImageService {
	return &ImageService{
		s3Config: s3Config,
		mediaDir: mediaDir,
		mediaURL: mediaURL,
	}
}

// StoreBase64 decodes a `data:<mime>;base64,<payload>` (or bare base64)
// string and stores the bytes under recipes/. Returns the stored image URL.
func (s *ImageService) StoreBase64(ctx context.Context, encoded string) (string, error) {
	ext := ".png"
	payload := encoded

	if strings.HasPrefix(encoded, "data:") {
		sep := strings.Index(encoded, ";base64,")
		if sep < 0 {
			return "", ErrInvalidImage
		}
		switch encoded[len("data:"):sep] {
		case "image/jpeg", "image/jpg":
			ext = ".jpg"
		case "image/gif":
			ext = ".gif"
		case "image/webp":
			ext = ".webp"
		}
		payload = encoded[sep+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return "", ErrInvalidImage
	}

	fileName := fmt.Sprintf("recipes/%s%s", uuid.New().String(), ext)

	if s.s3Config != nil {
		return s.uploadToS3(ctx, data, fileName, ext)
	}
	return s.writeLocal(data, fileName)
}

func (s *ImageService) uploadToS3(ctx context.Context, data []byte, fileName, ext string) (string, error) {
	contentType := "image/png"
	switch ext {
	case ".jpg":
		contentType = "image/jpeg"
	case ".gif":
		contentType = "image/gif"
	case ".webp":
		contentType = "image/webp"
	}

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName)
	log.Printf("[ImageService] Uploaded recipe image to S3: %s", publicURL)
	return publicURL, nil
}

func (s *ImageService) writeLocal(data []byte, fileName string) (string, error) {
	path := filepath.Join(s.mediaDir, filepath.FromSlash(fileName))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return s.mediaURL + "/" + fileName, nil
}
