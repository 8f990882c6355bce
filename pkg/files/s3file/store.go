// Package s3file browses an S3 (or S3-compatible) bucket as a directory tree,
// treating "/" in object keys as the path separator.
package s3file

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/datatug/filechooser/pkg/files"
)

const schema = "s3"

// Config holds S3 connection settings. Empty credentials fall back to the
// default AWS credential chain.
type Config struct {
	Endpoint  string
	Bucket    string
	Prefix    string
	Region    string
	AccessKey string
	SecretKey string
}

var _ files.Store = (*Store)(nil)

type Store struct {
	client s3.ListObjectsV2APIClient
	bucket string
	prefix string
}

// NewStore creates a store backed by a real S3 client.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	options := []func(*config.LoadOptions) error{}
	if cfg.Region != "" {
		options = append(options, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" {
		options = append(options, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewStoreWithClient(client, cfg.Bucket, cfg.Prefix), nil
}

func NewStoreWithClient(client s3.ListObjectsV2APIClient, bucket, prefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

func (s *Store) RootURL() url.URL {
	return url.URL{
		Scheme: schema,
		Host:   s.bucket,
		Path:   "/" + s.prefix,
	}
}

func (s *Store) RootTitle() string {
	return schema + "://" + s.bucket
}

// keyPrefix returns the object key prefix listing the children of name.
func (s *Store) keyPrefix(name string) string {
	p := strings.Trim(path.Join(s.prefix, path.Clean("/"+name)), "/")
	if p == "" {
		return ""
	}
	return p + "/"
}

func (s *Store) ReadDir(ctx context.Context, name string) ([]os.DirEntry, error) {
	prefix := s.keyPrefix(name)
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})

	var entries []os.DirEntry
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects %q: %w", prefix, err)
		}
		for _, p := range page.CommonPrefixes {
			dirName := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(p.Prefix), prefix), "/")
			if dirName == "" {
				continue
			}
			entries = append(entries, files.NewDirEntry(dirName, true))
		}
		for _, obj := range page.Contents {
			fileName := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			if fileName == "" || strings.Contains(fileName, "/") {
				// directory marker object
				continue
			}
			entries = append(entries, &objectEntry{
				name:    fileName,
				size:    aws.ToInt64(obj.Size),
				modTime: aws.ToTime(obj.LastModified),
			})
		}
	}
	return entries, nil
}

type objectEntry struct {
	name    string
	size    int64
	modTime time.Time
}

func (e *objectEntry) Name() string               { return e.name }
func (e *objectEntry) IsDir() bool                { return false }
func (e *objectEntry) Type() os.FileMode          { return 0 }
func (e *objectEntry) Info() (os.FileInfo, error) { return e, nil }
func (e *objectEntry) Size() int64                { return e.size }
func (e *objectEntry) Mode() os.FileMode          { return 0 }
func (e *objectEntry) ModTime() time.Time         { return e.modTime }
func (e *objectEntry) Sys() any                   { return nil }
