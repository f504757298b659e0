// services/qrcode_service.go
package services

import (
	"github.com/skip2/go-qrcode"
)

// QRCodeEncoder matches qrcode.Encode; injectable for tests.
type QRCodeEncoder func(content string, level qrcode.RecoveryLevel, size int) ([]byte, error)

// GenerateContactQRCode creates a QR code pointing at the public contact
// page, for the admin's printed materials.
func GenerateContactQRCode(applicationURL string, size int, encode QRCodeEncoder) ([]byte, error) {
	if applicationURL == "" {
		applicationURL = "http://localhost:8080" // Default for local testing
	}
	png, err := encode(applicationURL+"/contact", qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	return png, nil
}
