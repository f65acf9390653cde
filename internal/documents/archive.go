// Package documents keeps encrypted copies of the passport images customers
// upload, in S3-compatible object storage.
package documents

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/cargobot/internal/cryptox"
	"github.com/dmitrijs2005/cargobot/internal/logging"
	"github.com/dmitrijs2005/cargobot/internal/models"
	"github.com/google/uuid"
)

type objectStore interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectStore {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// Downloader fetches a chat file by id into dst.
type Downloader interface {
	DownloadFile(ctx context.Context, fileID, dst string) error
}

type Options struct {
	Bucket       string
	Region       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string
	TempDir      string
}

type Archive struct {
	client  objectStore
	bucket  string
	tempDir string
	sealer  *cryptox.Sealer
	logger  logging.Logger
	now     func() time.Time
}

// New connects to the bucket described by opts. It returns nil when no
// bucket is configured; archiving is then skipped.
func New(ctx context.Context, opts Options, sealer *cryptox.Sealer, logger logging.Logger) (*Archive, error) {
	if opts.Bucket == "" {
		return nil, nil
	}

	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &Archive{
		client:  client,
		bucket:  opts.Bucket,
		tempDir: opts.TempDir,
		sealer:  sealer,
		logger:  logger.With("module", "documents"),
		now:     func() time.Time { return time.Now().UTC() },
	}, nil
}

// StorageKey names the object holding one side of a customer's document.
func StorageKey(clientCode, side string, t time.Time) string {
	return fmt.Sprintf("documents/%d/%02d/%02d/%s/%s-%v",
		t.Year(), t.Month(), t.Day(), strings.ToUpper(clientCode), side, uuid.New())
}

// Store seals data and uploads it, returning the object key.
func (a *Archive) Store(ctx context.Context, clientCode, side string, data []byte) (string, error) {
	sealed, err := a.sealer.Seal(data)
	if err != nil {
		return "", fmt.Errorf("seal %s: %w", side, err)
	}

	key := StorageKey(clientCode, side, a.now())
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(sealed),
		ContentLength: aws.Int64(int64(len(sealed))),
		ContentType:   aws.String("application/octet-stream"),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return key, nil
}

// Fetch downloads and opens the object stored under key.
func (a *Archive) Fetch(ctx context.Context, key string) ([]byte, error) {
	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	defer out.Body.Close()

	sealed, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", key, err)
	}
	return a.sealer.Open(sealed)
}

// ArchiveCustomer copies the customer's document images from the chat
// platform into the archive and returns the keys of the front and back
// copies. Booklet passports have a single image, stored once.
func (a *Archive) ArchiveCustomer(ctx context.Context, d Downloader, c *models.Customer) (string, string, error) {
	front, err := a.archiveFile(ctx, d, c.ClientCode, "front", c.FrontImageID)
	if err != nil {
		return "", "", err
	}
	if c.BackImageID == "" || c.BackImageID == c.FrontImageID {
		return front, front, nil
	}
	back, err := a.archiveFile(ctx, d, c.ClientCode, "back", c.BackImageID)
	if err != nil {
		return "", "", err
	}
	return front, back, nil
}

func (a *Archive) archiveFile(ctx context.Context, d Downloader, clientCode, side, fileID string) (string, error) {
	if err := os.MkdirAll(a.tempDir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", a.tempDir, err)
	}
	tmp := filepath.Join(a.tempDir, fmt.Sprintf("doc-%v", uuid.New()))
	defer os.Remove(tmp)

	if err := d.DownloadFile(ctx, fileID, tmp); err != nil {
		return "", fmt.Errorf("download %s: %w", side, err)
	}
	data, err := os.ReadFile(tmp)
	if err != nil {
		return "", err
	}

	key, err := a.Store(ctx, clientCode, side, data)
	if err != nil {
		return "", err
	}
	a.logger.Debug(ctx, "document archived", "client_code", clientCode, "side", side, "key", key)
	return key, nil
}
