package adapters

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ap-content-web/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testImagePrompt = "A bright minimalist workspace with a laptop and coffee"

func TestImageClient_Generate(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images/generations", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Write([]byte(`{"data": [{"url": "https://images.example/tmp/1.png"}]}`))
	}))
	defer server.Close()

	client := NewImageClient(server.Client(), server.URL, "test-key", "dall-e-3")
	res, err := client.Generate(context.Background(), domain.ImageGenerationRequest{
		Prompt:      testImagePrompt,
		Style:       domain.StyleMinimalist,
		AspectRatio: domain.AspectLandscape,
		Quality:     domain.QualityHD,
	})
	require.NoError(t, err)

	assert.Equal(t, "https://images.example/tmp/1.png", res.URL)
	assert.True(t, strings.HasPrefix(res.ID, "img_"))
	// プロンプトはスタイル修飾を付けて送信し、応答には元のプロンプトを保持します。
	assert.Equal(t, testImagePrompt, res.Prompt)
	assert.Contains(t, captured["prompt"], testImagePrompt)
	assert.NotEqual(t, testImagePrompt, captured["prompt"])

	assert.Equal(t, "dall-e-3", captured["model"])
	assert.Equal(t, float64(1), captured["n"])
	assert.Equal(t, "1792x1024", captured["size"])
	assert.Equal(t, "hd", captured["quality"])
	assert.Equal(t, "vivid", captured["style"])
}

func TestImageClient_RealisticStyleMapsToNatural(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"data": [{"url": "https://images.example/tmp/2.png"}]}`))
	}))
	defer server.Close()

	client := NewImageClient(server.Client(), server.URL, "test-key", "dall-e-3")
	_, err := client.Generate(context.Background(), domain.ImageGenerationRequest{
		Prompt: testImagePrompt,
		Style:  domain.StyleRealistic,
	})
	require.NoError(t, err)

	assert.Equal(t, "natural", captured["style"])
	// 縦横比未指定は正方形にフォールバックします。
	assert.Equal(t, "1024x1024", captured["size"])
}

func TestImageClient_PromptValidationFailsBeforeNetwork(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewImageClient(server.Client(), server.URL, "test-key", "dall-e-3")
	_, err := client.Generate(context.Background(), domain.ImageGenerationRequest{Prompt: "short"})

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.False(t, called)
}

func TestImageClient_MissingURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	client := NewImageClient(server.Client(), server.URL, "test-key", "dall-e-3")
	_, err := client.Generate(context.Background(), domain.ImageGenerationRequest{Prompt: testImagePrompt})

	var malformed *domain.MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

// fakeWriter は objectWriter の記録付きフェイクです。
type fakeWriter struct {
	path        string
	contentType string
	data        []byte
}

func (f *fakeWriter) Write(_ context.Context, path string, r io.Reader, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.path = path
	f.contentType = contentType
	f.data = data
	return nil
}

func TestImageArchiver_Archive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	}))
	defer server.Close()

	writer := &fakeWriter{}
	archiver := NewImageArchiver(server.Client(), writer)

	destination := "gs://bucket/output/c1/images/slide-01.png"
	got, err := archiver.Archive(context.Background(), server.URL+"/tmp.png", destination)
	require.NoError(t, err)

	assert.Equal(t, destination, got)
	assert.Equal(t, destination, writer.path)
	assert.Equal(t, "image/png", writer.contentType)
	assert.Equal(t, []byte("png-bytes"), writer.data)
}

func TestImageArchiver_NoWriterKeepsOriginalURL(t *testing.T) {
	archiver := NewImageArchiver(http.DefaultClient, nil)

	got, err := archiver.Archive(context.Background(), "https://images.example/tmp.png", "gs://bucket/x.png")
	require.NoError(t, err)
	assert.Equal(t, "https://images.example/tmp.png", got)
}

func TestImageArchiver_DownloadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	archiver := NewImageArchiver(server.Client(), &fakeWriter{})
	_, err := archiver.Archive(context.Background(), server.URL+"/gone.png", "gs://bucket/x.png")

	assert.Error(t, err)
}
