package main

import (
	"flag"

	"hotspot-portal-svc/src/internal/qr"

	"github.com/sirupsen/logrus"
)

var log = *logrus.StandardLogger()

func main() {
	ssid := flag.String("ssid", "", "hotspot SSID")
	password := flag.String("password", "", "hotspot WPA password")
	uploadURL := flag.String("url", "http://192.168.4.1:5000/upload", "upload page URL")
	outputDir := flag.String("out", "./qr_codes", "output directory for PNG files")
	hidden := flag.Bool("hidden", true, "whether the SSID is hidden")
	flag.Parse()

	if *ssid == "" || *password == "" {
		log.Fatal("Both -ssid and -password are required")
	}

	wifiPath, err := qr.WriteWiFiPNG(*ssid, *password, *hidden, *outputDir)
	if err != nil {
		log.WithError(err).Fatal("Failed to write WiFi QR code")
	}
	log.Infof("WiFi QR code saved to %s", wifiPath)

	instrPath, err := qr.WriteInstructionsPNG(*ssid, *password, *uploadURL, *outputDir)
	if err != nil {
		log.WithError(err).Fatal("Failed to write instructions QR code")
	}
	log.Infof("Instructions QR code saved to %s", instrPath)
}
