package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/skip2/go-qrcode"

	"preschool_backend/internals/features/children/roster/model"
	"preschool_backend/internals/helpers/dbtime"
)

const (
	qrDataURLPrefix = "data:image/png;base64,"
	qrSize          = 256
	identitySep     = "|"
)

var ErrInvalidQRData = errors.New("invalid QR data url")

// IdentityString: "seq|name|gender|dob|class" (dob kosong kalau tidak ada)
func IdentityString(m model.ChildModel) string {
	dob := ""
	if m.DateOfBirth != nil {
		dob = dbtime.FormatDate(*m.DateOfBirth)
	}
	clean := func(s string) string { return strings.ReplaceAll(strings.TrimSpace(s), identitySep, "/") }
	return strings.Join([]string{
		strconv.Itoa(m.ChildSeq),
		clean(m.Name),
		clean(m.Gender),
		dob,
		clean(m.ClassName),
	}, identitySep)
}

// EncodeQRPNG: teks → PNG QR
func EncodeQRPNG(content string) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, qrSize)
}

// BuildQRDataURL: identitas anak → data:image/png;base64,...
func BuildQRDataURL(m model.ChildModel) (string, error) {
	png, err := EncodeQRPNG(IdentityString(m))
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}
	return qrDataURLPrefix + base64.StdEncoding.EncodeToString(png), nil
}

// DecodeQRDataURL: kebalikan BuildQRDataURL (bytes PNG)
func DecodeQRDataURL(dataURL string) ([]byte, error) {
	s := strings.TrimSpace(dataURL)
	i := strings.Index(s, ";base64,")
	if !strings.HasPrefix(s, "data:image/") || i < 0 {
		return nil, ErrInvalidQRData
	}
	raw, err := base64.StdEncoding.DecodeString(s[i+len(";base64,"):])
	if err != nil || len(raw) == 0 {
		return nil, ErrInvalidQRData
	}
	return raw, nil
}

// ParseIdentityCode mengambil child_seq dari teks hasil scan.
// Menerima identitas lengkap "seq|name|..." atau nomor urut saja.
func ParseIdentityCode(code string) (int, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return 0, errors.New("empty code")
	}
	head := code
	if i := strings.Index(code, identitySep); i >= 0 {
		head = code[:i]
	}
	seq, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil || seq <= 0 {
		return 0, fmt.Errorf("invalid child code %q", code)
	}
	return seq, nil
}
