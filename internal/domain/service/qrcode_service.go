package service

// QRCodeService generates share codes for job offers.
type QRCodeService interface {
	// GenerateOfferQR generates a PNG QR code for sharing a job offer.
	GenerateOfferQR(offerID int64) ([]byte, error)

	// ParseOfferQR parses QR code data and returns the offer ID.
	ParseOfferQR(qrData string) (int64, error)
}
