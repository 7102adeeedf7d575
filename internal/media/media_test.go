package media

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicIDFromURL(t *testing.T) {
	cases := map[string]string{
		"https://res.cloudinary.com/demo/image/upload/v1712345/reviews/abc.jpg":  "reviews/abc",
		"https://res.cloudinary.com/demo/image/upload/restaurants/r_1_img_2.png": "restaurants/r_1_img_2",
		"https://res.cloudinary.com/demo/image/upload/v99/avatar":                "avatar",
	}
	for in, want := range cases {
		got, err := PublicIDFromURL(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := PublicIDFromURL("https://example.com/pictures/abc.jpg")
	assert.ErrorIs(t, err, ErrBadAssetURL)
}

// smallest valid PNG signature plus IHDR chunk header
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func TestCheckImageReplaysSniffedBytes(t *testing.T) {
	body := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{1}, 5000)...)

	r, err := CheckImage(bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestCheckImageRejects(t *testing.T) {
	_, err := CheckImage(strings.NewReader("just some text"), 14)
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = CheckImage(bytes.NewReader(pngHeader), MaxImageBytes+1)
	assert.ErrorIs(t, err, ErrTooLarge)
}
