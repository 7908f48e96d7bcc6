package qrcode

import (
	"encoding/json"
	"fmt"

	"baito/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// QRCodeData represents the QR code data structure
type QRCodeData struct {
	OfferID int64  `json:"offer_id"`
	Type    string `json:"type"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GenerateOfferQR generates a PNG QR code for sharing a job offer
func (s *qrcodeService) GenerateOfferQR(offerID int64) ([]byte, error) {
	data := QRCodeData{
		OfferID: offerID,
		Type:    "job_offer",
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseOfferQR parses QR code data and returns the offer ID
func (s *qrcodeService) ParseOfferQR(qrData string) (int64, error) {
	var data QRCodeData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return 0, fmt.Errorf("failed to unmarshal QR code data: %w", err)
	}

	if data.Type != "job_offer" {
		return 0, fmt.Errorf("unexpected QR code type: %s", data.Type)
	}
	if data.OfferID <= 0 {
		return 0, fmt.Errorf("invalid offer id in QR code")
	}

	return data.OfferID, nil
}
