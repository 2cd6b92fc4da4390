package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/msomdec/careerforge/internal/domain"
)

type memoryBucket struct {
	objects map[string][]byte
}

func (m *memoryBucket) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (m *memoryBucket) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (m *memoryBucket) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(m.objects, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestFileStore(t *testing.T) {
	bucket := &memoryBucket{objects: map[string][]byte{}}
	store := &FileStore{client: bucket, bucket: "resumes"}
	ctx := context.Background()

	if err := store.Save(ctx, "users/1/cv.pdf", []byte("pdf bytes")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, ok := bucket.objects["resumes/users/1/cv.pdf"]; !ok {
		t.Fatal("expected object to be written under the configured bucket")
	}

	got, err := store.Get(ctx, "users/1/cv.pdf")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "pdf bytes" {
		t.Fatalf("expected %q, got %q", "pdf bytes", got)
	}

	if err := store.Delete(ctx, "users/1/cv.pdf"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "users/1/cv.pdf"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
