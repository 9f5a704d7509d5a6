package qr

import (
	"fmt"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
)

// Output filenames inside the target directory.
const (
	WiFiFileName         = "wifi_connection.png"
	InstructionsFileName = "complete_instructions.png"
)

// WiFiPayload builds the standard WiFi provisioning QR payload understood
// by phone cameras: WIFI:T:WPA;S:<ssid>;P:<password>;H:<bool>;;
func WiFiPayload(ssid, password string, hidden bool) string {
	h := "false"
	if hidden {
		h = "true"
	}
	return fmt.Sprintf("WIFI:T:WPA;S:%s;P:%s;H:%s;;", ssid, password, h)
}

// InstructionsPayload builds a human-readable fallback for scanners that
// do not auto-join networks: credentials plus the upload URL.
func InstructionsPayload(ssid, password, uploadURL string) string {
	return fmt.Sprintf("Connect to: %s\nPassword: %s\nThen visit: %s", ssid, password, uploadURL)
}

// WriteWiFiPNG writes the WiFi provisioning QR into outputDir and returns
// the file path.
func WriteWiFiPNG(ssid, password string, hidden bool, outputDir string) (string, error) {
	path := filepath.Join(outputDir, WiFiFileName)
	if err := writePNG(WiFiPayload(ssid, password, hidden), qrcode.Low, path); err != nil {
		return "", err
	}
	return path, nil
}

// WriteInstructionsPNG writes the combined-instructions QR into outputDir
// and returns the file path. Medium recovery: the payload is larger.
func WriteInstructionsPNG(ssid, password, uploadURL, outputDir string) (string, error) {
	path := filepath.Join(outputDir, InstructionsFileName)
	if err := writePNG(InstructionsPayload(ssid, password, uploadURL), qrcode.Medium, path); err != nil {
		return "", err
	}
	return path, nil
}

func writePNG(payload string, level qrcode.RecoveryLevel, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := qrcode.WriteFile(payload, level, 512, path); err != nil {
		return fmt.Errorf("encode qr code: %w", err)
	}
	return nil
}
