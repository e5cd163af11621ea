package spaces

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"
)

type fakePut struct {
	input *s3.PutObjectInput
	err   error
}

func (f *fakePut) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestImageStore_Upload(t *testing.T) {
	fake := &fakePut{}
	store := newImageStore(fake, Config{Bucket: "market", Region: "ams3", Root: "/media/"})

	url, err := store.Upload(context.Background(), "Redline.PNG", "", []byte("png"))
	require.NoError(t, err)

	key := aws.ToString(fake.input.Key)
	require.True(t, strings.HasPrefix(key, "media/skins/"), key)
	require.True(t, strings.HasSuffix(key, ".png"), key)
	require.Equal(t, "image/png", aws.ToString(fake.input.ContentType))
	require.Equal(t, "market", aws.ToString(fake.input.Bucket))
	require.Equal(t, "https://market.ams3.digitaloceanspaces.com/"+key, url)
}

func TestImageStore_UploadError(t *testing.T) {
	store := newImageStore(&fakePut{err: errors.New("access denied")}, Config{Bucket: "b", Region: "r", PublicURL: "https://cdn.example.com/"})

	_, err := store.Upload(context.Background(), "a.jpg", "image/jpeg", []byte("x"))
	require.ErrorContains(t, err, "access denied")
}

func TestConfig_Enabled(t *testing.T) {
	require.False(t, Config{}.Enabled())
	require.True(t, Config{Key: "k", Secret: "s", Bucket: "b", Region: "r"}.Enabled())
}
