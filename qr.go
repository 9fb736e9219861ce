/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

const qrSize = 320

// shareURL is the absolute URL of the home page as seen by the requester.
func shareURL(cfg *Config, r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}

	return scheme + "://" + r.Host + cfg.prefix + "/"
}

// serveQR renders a PNG QR code pointing at the home page, for handing the
// tour to someone across the room.
func serveQR(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		png, err := qrcode.Encode(shareURL(cfg, r), qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-cache")
		securityHeaders(cfg, w)

		_, err = w.Write(png)
		if err != nil {
			errs <- err

			return
		}
	}
}
