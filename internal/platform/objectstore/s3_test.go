package objectstore

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeS3 answers path-style GetObject requests from a map keyed by "bucket/key".
type fakeS3 struct{ objects map[string]string }

func (f fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	path := strings.TrimPrefix(req.URL.Path, "/")
	body, ok := f.objects[path]
	if req.Method != http.MethodGet || !ok {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Header:     http.Header{"Content-Type": {"application/xml"}},
			Body:       io.NopCloser(strings.NewReader(`<?xml version="1.0"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`)),
			Request:    req,
		}, nil
	}
	return &http.Response{
		StatusCode:    http.StatusOK,
		Header:        http.Header{"Content-Type": {"application/json"}},
		Body:          io.NopCloser(bytes.NewReader([]byte(body))),
		ContentLength: int64(len(body)),
		Request:       req,
	}, nil
}

func newTestReader(t *testing.T, objects map[string]string) *Reader {
	t.Helper()
	reader, err := New(context.Background(), Config{
		Endpoint:        "https://fixtures.s3.local",
		PathStyle:       true,
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
		HTTPClient:      &http.Client{Transport: fakeS3{objects: objects}},
	})
	require.NoError(t, err)
	return reader
}

func TestReader_Open(t *testing.T) {
	reader := newTestReader(t, map[string]string{"shelter/fixtures/dogs.json": `[]`})

	body, err := reader.Open(context.Background(), "s3://shelter/fixtures/dogs.json")
	require.NoError(t, err)
	defer body.Close()
	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	require.Equal(t, "[]", string(raw))
}

func TestReader_OpenMissingObject(t *testing.T) {
	reader := newTestReader(t, nil)

	_, err := reader.Open(context.Background(), "s3://shelter/absent.json")
	require.ErrorContains(t, err, "s3://shelter/absent.json")
}

func TestParseURI(t *testing.T) {
	bucket, key, err := ParseURI("s3://shelter/fixtures/dogs.json")
	require.NoError(t, err)
	require.Equal(t, "shelter", bucket)
	require.Equal(t, "fixtures/dogs.json", key)

	for _, bad := range []string{"s3://shelter", "s3:///dogs.json", "https://shelter/dogs.json", "dogs.json"} {
		_, _, err := ParseURI(bad)
		require.ErrorIs(t, err, ErrInvalidURI, bad)
	}
	require.True(t, IsURI("s3://a/b"))
	require.False(t, IsURI("testdata/dogs.json"))
}
