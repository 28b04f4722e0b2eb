package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGetter struct {
	objects map[string][]byte
	err     error
}

func (f *fakeGetter) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.objects[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestFetchObject(t *testing.T) {
	getter := &fakeGetter{objects: map[string][]byte{
		"catalogs/catalog.yaml": []byte("entries: []\n"),
		"catalogs/huge.yaml":    bytes.Repeat([]byte("a"), maxObjectSize+1),
	}}
	ctx := context.Background()

	data, err := FetchObject(ctx, getter, "catalogs", "catalog.yaml")
	require.NoError(t, err)
	assert.Equal(t, "entries: []\n", string(data))

	_, err = FetchObject(ctx, getter, "catalogs", "missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://catalogs/missing.yaml")

	_, err = FetchObject(ctx, getter, "catalogs", "huge.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestFetchObjectPropagatesClientError(t *testing.T) {
	boom := errors.New("access denied")
	_, err := FetchObject(context.Background(), &fakeGetter{err: boom}, "b", "k")
	assert.ErrorIs(t, err, boom)
}
