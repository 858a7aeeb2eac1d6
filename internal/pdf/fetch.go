package pdf

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// Resolve turns a document reference into a local path. Supported
// forms:
//   - file://path or a plain filesystem path
//   - http(s):// URLs, downloaded to a temp file
//   - s3://bucket/key, downloaded to a temp file via the AWS SDK
//
// cleanup removes any temp file and is always safe to call.
func Resolve(ctx context.Context, ref string) (path string, cleanup func(), err error) {
	cleanup = func() {}

	switch {
	case strings.HasPrefix(ref, "s3://"):
		path, err = downloadS3(ctx, ref)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		path, err = downloadHTTP(ctx, ref)
	case strings.HasPrefix(ref, "file://"):
		path = strings.TrimPrefix(ref, "file://")
		return path, cleanup, nil
	default:
		if _, statErr := os.Stat(ref); statErr != nil {
			return "", cleanup, fmt.Errorf("%w: %s", ErrNotFound, ref)
		}
		return ref, cleanup, nil
	}

	if err != nil {
		return "", cleanup, err
	}
	tmp := path
	return path, func() { os.Remove(tmp) }, nil
}

func downloadHTTP(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download %s: http %d", url, resp.StatusCode)
	}

	return writeTemp(resp.Body)
}

func downloadS3(ctx context.Context, ref string) (string, error) {
	bucket, key, err := splitS3(ref)
	if err != nil {
		return "", err
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load AWS config: %w", err)
	}

	result, err := s3.NewFromConfig(cfg).GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("failed to download from S3: %w", err)
	}
	defer result.Body.Close()

	path, err := writeTemp(result.Body)
	if err != nil {
		return "", err
	}
	log.Debug().Str("bucket", bucket).Str("key", key).Str("path", path).Msg("downloaded S3 object")
	return path, nil
}

func splitS3(ref string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(ref, "s3://")
	slash := strings.Index(rest, "/")
	if slash <= 0 || slash == len(rest)-1 {
		return "", "", fmt.Errorf("invalid s3 url: %s", ref)
	}
	return rest[:slash], rest[slash+1:], nil
}

func writeTemp(r io.Reader) (string, error) {
	f, err := os.CreateTemp("", "layoutmd-*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	return f.Name(), nil
}
