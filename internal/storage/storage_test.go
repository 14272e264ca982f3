package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sitecms/internal/config"
)

func TestPublicObjectURL(t *testing.T) {
	assert.Equal(t,
		"https://cdn.example.com/gallery/a%20b.png",
		PublicObjectURL("https://cdn.example.com/", "gallery/a b.png"),
	)
	assert.Equal(t,
		"http://localhost:9000/site/uploads/x.jpg",
		PublicObjectURL("http://localhost:9000/site", "uploads/x.jpg"),
	)
}

func TestNewMinIO_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MinIOConfig
		msg  string
	}{
		{name: "missing endpoint", cfg: config.MinIOConfig{}, msg: "endpoint is required"},
		{name: "missing credentials", cfg: config.MinIOConfig{Endpoint: "localhost:9000"}, msg: "credentials are required"},
		{name: "missing bucket", cfg: config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"}, msg: "bucket is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewMinIO(tt.cfg)
			assert.Nil(t, s)
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}
