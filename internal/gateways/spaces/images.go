package spaces

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

type Config struct {
	Key       string
	Secret    string
	Region    string
	Bucket    string
	Endpoint  string
	Root      string
	PublicURL string
}

// Enabled reports whether enough settings are present to talk to a bucket.
func (c Config) Enabled() bool {
	return c.Key != "" && c.Secret != "" && c.Bucket != "" && c.Region != ""
}

func (c Config) endpoint() string {
	if c.Endpoint != "" {
		return strings.TrimSuffix(c.Endpoint, "/")
	}
	return fmt.Sprintf("https://%s.digitaloceanspaces.com", c.Region)
}

func (c Config) publicURL() string {
	if c.PublicURL != "" {
		return strings.TrimSuffix(c.PublicURL, "/")
	}
	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com", c.Bucket, c.Region)
}

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageStore uploads skin images to an S3-compatible bucket.
type ImageStore struct {
	client    putObjectAPI
	bucket    string
	root      string
	publicURL string
}

func NewImageStore(ctx context.Context, cfg Config) (*ImageStore, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: cfg.endpoint(),
		}, nil
	})

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithEndpointResolverWithOptions(resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.Key, cfg.Secret, "")),
		config.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load spaces config: %w", err)
	}

	return newImageStore(s3.NewFromConfig(awsCfg), cfg), nil
}

func newImageStore(client putObjectAPI, cfg Config) *ImageStore {
	return &ImageStore{
		client:    client,
		bucket:    cfg.Bucket,
		root:      strings.Trim(cfg.Root, "/"),
		publicURL: cfg.publicURL(),
	}
}

// Upload stores data under <root>/skins/<uuid><ext> with public-read ACL and
// returns the public URL of the object.
func (s *ImageStore) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if contentType == "" || contentType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			contentType = byExt
		}
	}

	key := path.Join(s.root, "skins", uuid.NewString()+ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("public, max-age=31536000"),
		ACL:           types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s: %w", key, err)
	}

	return s.publicURL + "/" + key, nil
}
