package blob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURL(t *testing.T) {
	s, err := NewStore(Config{
		Endpoint:      "minio.local:9000",
		AccessKey:     "test",
		SecretKey:     "test",
		Bucket:        "resumes",
		Prefix:        "/resumes/",
		PublicBaseURL: "https://cdn.example.com/",
	})
	require.NoError(t, err)

	url := s.PublicURL("abc123")
	assert.Equal(t, "https://cdn.example.com/resumes/abc123.pdf", url)
	// Same address, same URL, every time.
	assert.Equal(t, url, s.PublicURL("abc123"))
}

func TestObjectKey_NoPrefix(t *testing.T) {
	s, err := NewStore(Config{Endpoint: "minio.local:9000", Bucket: "resumes"})
	require.NoError(t, err)
	assert.Equal(t, "abc123.pdf", s.objectKey("abc123"))
}
