package compositor

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biglittlethings/paperwork/internal/compose"
)

func testImageJPEG(t *testing.T) []byte {
	t.Helper()
	img := imaging.New(640, 480, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
	// Some structure so JPEG compression has something to chew on.
	for x := 0; x < 640; x += 8 {
		for y := 0; y < 480; y++ {
			img.Set(x, y, color.NRGBA{R: 20, G: 20, B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.JPEG))
	return buf.Bytes()
}

func imageServer(t *testing.T, body []byte, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestComposeFullPage(t *testing.T) {
	srv := imageServer(t, testImageJPEG(t), http.StatusOK)
	c := New(Config{FetchTimeout: 5 * time.Second})

	for _, orientation := range []compose.Orientation{compose.Portrait, compose.Landscape} {
		pdf, err := c.ComposeFullPage(context.Background(), srv.URL, orientation)
		require.NoError(t, err, "orientation %s", orientation)
		assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "output is a PDF")
		assert.Greater(t, len(pdf), compose.MinArtifactBytes)
	}
}

func TestComposeFullPageDecodeFailure(t *testing.T) {
	srv := imageServer(t, []byte("not an image"), http.StatusOK)
	c := New(Config{})

	_, err := c.ComposeFullPage(context.Background(), srv.URL, compose.Portrait)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrComposition))
}

func TestComposeFullPageFetchFailure(t *testing.T) {
	srv := imageServer(t, nil, http.StatusNotFound)
	c := New(Config{})

	_, err := c.ComposeFullPage(context.Background(), srv.URL, compose.Portrait)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrComposition))
}

func TestComposeFullPageUnreachableHost(t *testing.T) {
	c := New(Config{FetchTimeout: time.Second})
	_, err := c.ComposeFullPage(context.Background(), "http://127.0.0.1:1/card.jpg", compose.Portrait)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrComposition))
}

func TestComposePNGInput(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 300, 300))
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	srv := imageServer(t, buf.Bytes(), http.StatusOK)

	c := New(Config{})
	pdf, err := c.ComposeFullPage(context.Background(), srv.URL, compose.Portrait)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}
