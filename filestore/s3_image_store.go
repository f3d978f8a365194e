package filestore

import (
	"bytes"
	"encoding/base64"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
	"github.com/unlinked-app/unlinked/utils"
)

const (
	TestS3Bucket      = "unlinked-dev-bucket"
	ProdS3ImageBucket = "unlinked-user-image-upload"
	CloudFrontPrefix  = "https://d3b1k2uqpq7fhr.cloudfront.net/"
)

// mime subtypes we accept from data uris, mapped to their file extension.
var imageExtByMime = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type S3ImageStore struct {
	bucket                   string
	uploader                 *s3manager.Uploader
	svc                      *s3.S3
	customizeUploadedUrlFunc CustomizeUploadedUrlType
}

func NewS3ImageStore(bucket string) (*S3ImageStore, error) {
	// AWS client session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String("us-west-1"),
	})
	if err != nil {
		return nil, err
	}

	return &S3ImageStore{
		bucket:                   bucket,
		uploader:                 s3manager.NewUploader(sess),
		svc:                      s3.New(sess),
		customizeUploadedUrlFunc: nil,
	}, nil
}

func (s *S3ImageStore) SetCustomizeUploadedUrlFunc(f CustomizeUploadedUrlType) {
	s.customizeUploadedUrlFunc = f
}

// decodeDataUri splits a "data:image/png;base64,..." payload into raw bytes
// and its content type.
func decodeDataUri(dataUri string) (data []byte, mime string, err error) {
	if !strings.HasPrefix(dataUri, "data:") {
		return nil, "", errors.New("not a data uri")
	}
	head, payload, found := strings.Cut(dataUri[len("data:"):], ",")
	if !found {
		return nil, "", errors.New("malformed data uri")
	}
	mime = strings.TrimSuffix(head, ";base64")
	if _, ok := imageExtByMime[mime]; !ok {
		return nil, "", errors.Errorf("unsupported image type %q", mime)
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", errors.Wrap(err, "decode image payload")
	}
	return data, mime, nil
}

// StoreEncoded decodes a base64 data uri and uploads it to S3. The key is
// derived from the content digest, re-uploading identical bytes is a no-op
// from the caller's point of view.
func (s *S3ImageStore) StoreEncoded(dataUri string) (key string, err error) {
	data, mime, err := decodeDataUri(dataUri)
	if err != nil {
		return "", err
	}

	digest, err := utils.TextToMd5Hash(string(data))
	if err != nil {
		return "", err
	}
	key = digest + imageExtByMime[mime]

	_, err = s.uploader.Upload(&s3manager.UploadInput{
		ACL:         aws.String("public-read"),
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(mime),
		Body:        bytes.NewReader(data),
	})
	if err != nil {
		return "", errors.Wrap(err, "upload image")
	}
	return key, nil
}

func (s *S3ImageStore) Delete(key string) error {
	_, err := s.svc.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3ImageStore) GetUrlFromKey(key string) string {
	if s.customizeUploadedUrlFunc == nil {
		return CloudFrontPrefix + key
	}
	return s.customizeUploadedUrlFunc(key)
}

func (s *S3ImageStore) CleanUp() {
	// do nothing for s3
}

// KeyFromUrl recovers the storage key from a previously returned image url,
// i.e. its last path segment.
func KeyFromUrl(imageUrl string) string {
	u, err := url.Parse(imageUrl)
	if err != nil {
		return ""
	}
	return path.Base(u.Path)
}
