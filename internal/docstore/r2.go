// Package docstore archives CV text in Cloudflare R2 through the S3 API.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/muhammadolammi/opportunitymatch/internal/domain"
)

// MaxCVBytes bounds a stored CV. Load rejects larger objects.
const MaxCVBytes = 1 << 20

// Archive stores CV text per user.
type Archive interface {
	Save(ctx context.Context, userID int64, text string) (key string, err error)
	Load(ctx context.Context, userID int64, key string) (string, error)
}

type R2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
}

type R2Archive struct {
	client *s3.Client
	bucket string
}

func NewR2Archive(ctx context.Context, cfg R2Config) (*R2Archive, error) {
	awsConfig, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating aws config: %w", err)
	}
	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID))
	})
	return &R2Archive{client: client, bucket: cfg.Bucket}, nil
}

func userPrefix(userID int64) string {
	return "cv/" + strconv.FormatInt(userID, 10) + "/"
}

// ObjectKey returns a fresh key under the user's prefix.
func ObjectKey(userID int64) string {
	return userPrefix(userID) + uuid.NewString() + ".txt"
}

// OwnsKey reports whether key was issued for userID.
func OwnsKey(userID int64, key string) bool {
	rest, ok := strings.CutPrefix(key, userPrefix(userID))
	return ok && rest != "" && !strings.Contains(rest, "/")
}

func (a *R2Archive) Save(ctx context.Context, userID int64, text string) (string, error) {
	key := ObjectKey(userID)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(text),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object: %w", err)
	}
	return key, nil
}

func (a *R2Archive) Load(ctx context.Context, userID int64, key string) (string, error) {
	if !OwnsKey(userID, key) {
		return "", domain.NotFound("CV not found")
	}
	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var missing *types.NoSuchKey
		if errors.As(err, &missing) {
			return "", domain.NotFound("CV not found")
		}
		return "", fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	return readCV(out.Body)
}

// readCV reads at most MaxCVBytes and rejects anything longer rather than
// cutting it off.
func readCV(r io.Reader) (string, error) {
	body, err := io.ReadAll(io.LimitReader(r, MaxCVBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read object body: %w", err)
	}
	if len(body) > MaxCVBytes {
		return "", domain.Validation("CV text is too long")
	}
	return string(body), nil
}
