package validation

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"ann@x.com", "first.last@sub.domain.org", "admin@gmail.com"}
	for _, email := range valid {
		assert.NoError(t, ValidateEmail(email), email)
	}

	invalid := []string{"", "ann", "ann@x", "@x.com", "ann@.", "a b@x.com", "ann@x.com ", strings.Repeat("a", 250) + "@x.com"}
	for _, email := range invalid {
		assert.ErrorIs(t, ValidateEmail(email), ErrInvalidEmail, email)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.ErrorIs(t, ValidatePassword("12345"), ErrPasswordTooShort)
	assert.NoError(t, ValidatePassword("secret1"))
	assert.NoError(t, ValidatePassword("123456"))
	assert.ErrorIs(t, ValidatePassword(strings.Repeat("x", 73)), ErrPasswordTooLong)
}

func TestValidateName(t *testing.T) {
	assert.ErrorIs(t, ValidateName("   "), ErrNameRequired)
	assert.ErrorIs(t, ValidateName(strings.Repeat("n", 101)), ErrNameTooLong)
	assert.NoError(t, ValidateName(" dr.k "))
}

// 1x1 transparent PNG
var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func TestParseImageDataURI(t *testing.T) {
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngPixel)

	img, err := ParseImageDataURI(uri, AvatarConstraints)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MimeType)
	assert.Equal(t, ".png", img.Extension())
	assert.Equal(t, pngPixel, img.Data)
}

func TestParseImageDataURI_Rejects(t *testing.T) {
	pngPayload := base64.StdEncoding.EncodeToString(pngPixel)

	cases := map[string]string{
		"not data uri":     "https://example.com/a.png",
		"no comma":         "data:image/png;base64",
		"not base64":       "data:image/png," + pngPayload,
		"disallowed type":  "data:image/gif;base64," + pngPayload,
		"mismatched sniff": "data:image/jpeg;base64," + pngPayload,
		"bad payload":      "data:image/png;base64,@@@",
	}
	for name, uri := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseImageDataURI(uri, AvatarConstraints)
			assert.Error(t, err)
		})
	}

	small := ImageConstraints{AllowedMimeTypes: AvatarConstraints.AllowedMimeTypes, MaxSize: 16}
	_, err := ParseImageDataURI("data:image/png;base64,"+pngPayload, small)
	assert.ErrorContains(t, err, "too large")
}
