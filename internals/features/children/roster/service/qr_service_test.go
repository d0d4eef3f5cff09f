package service

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"preschool_backend/internals/features/children/roster/model"
)

func TestIdentityString(t *testing.T) {
	dob := time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC)
	m := model.ChildModel{ChildSeq: 12, Name: "An | Bình", Gender: "male", DateOfBirth: &dob, ClassName: "Mầm 1"}
	assert.Equal(t, "12|An / Bình|male|2020-03-15|Mầm 1", IdentityString(m))

	m.DateOfBirth = nil
	assert.Equal(t, "12|An / Bình|male||Mầm 1", IdentityString(m))
}

func TestQRDataURLRoundTrip(t *testing.T) {
	url, err := BuildQRDataURL(model.ChildModel{ChildSeq: 3, Name: "Chi"})
	require.NoError(t, err)

	raw, err := DecodeQRDataURL(url)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, qrSize, img.Bounds().Dx())

	_, err = DecodeQRDataURL("https://example.com/qr.png")
	assert.ErrorIs(t, err, ErrInvalidQRData)
}

func TestParseIdentityCode(t *testing.T) {
	seq, err := ParseIdentityCode(" 42|Lan|female||Lá 1 ")
	require.NoError(t, err)
	assert.Equal(t, 42, seq)

	seq, err = ParseIdentityCode("7")
	require.NoError(t, err)
	assert.Equal(t, 7, seq)

	for _, bad := range []string{"", "abc", "0|x", "-3"} {
		_, err := ParseIdentityCode(bad)
		assert.Error(t, err, bad)
	}
}
