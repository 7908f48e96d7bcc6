package qrcode

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		size                 int
		errorCorrectionLevel string
	}{
		{"Low error correction", 256, "L"},
		{"Medium error correction", 256, "M"},
		{"High error correction", 256, "Q"},
		{"Highest error correction", 256, "H"},
		{"Default error correction", 256, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(tt.size, tt.errorCorrectionLevel)
			assert.NotNil(t, service)
		})
	}
}

func TestQRCodeService_GenerateOfferQR(t *testing.T) {
	service := NewQRCodeService(256, "M")

	qrBytes, err := service.GenerateOfferQR(42)
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)

	// Verify it's a valid PNG (starts with PNG magic number)
	assert.Equal(t, byte(0x89), qrBytes[0])
	assert.Equal(t, byte(0x50), qrBytes[1])
	assert.Equal(t, byte(0x4E), qrBytes[2])
	assert.Equal(t, byte(0x47), qrBytes[3])
}

func TestQRCodeService_GenerateOfferQR_DifferentSizes(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"Small QR", 128},
		{"Medium QR", 256},
		{"Large QR", 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(tt.size, "M")

			qrBytes, err := service.GenerateOfferQR(42)
			require.NoError(t, err)
			assert.NotEmpty(t, qrBytes)
		})
	}
}

func TestQRCodeService_ParseOfferQR(t *testing.T) {
	service := NewQRCodeService(256, "M")

	data := QRCodeData{
		OfferID: 42,
		Type:    "job_offer",
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	offerID, err := service.ParseOfferQR(string(jsonData))
	require.NoError(t, err)
	assert.Equal(t, int64(42), offerID)
}

func TestQRCodeService_ParseOfferQR_Invalid(t *testing.T) {
	service := NewQRCodeService(256, "M")

	tests := []struct {
		name   string
		qrData string
	}{
		{"not json", "not-json"},
		{"wrong type", `{"offer_id":42,"type":"subscription"}`},
		{"missing offer id", `{"type":"job_offer"}`},
		{"negative offer id", `{"offer_id":-1,"type":"job_offer"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ParseOfferQR(tt.qrData)
			assert.Error(t, err)
		})
	}
}
