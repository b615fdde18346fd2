package scorecardservice

import "github.com/skip2/go-qrcode"

// QRCodeSize is the edge length in pixels of generated share codes.
const QRCodeSize = 256

// RenderQRCode encodes content, usually a share URL, as a PNG QR code.
func RenderQRCode(content string) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, QRCodeSize)
}
