package storage

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	maxPhotoDim = 1280
	webpQuality = 85
)

// NormalizePetPhoto decodifica a foto enviada, reduz para no máximo
// 1280px no maior lado e re-encoda em webp. Padroniza o acervo e corta
// o custo de storage.
func NormalizePetPhoto(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxPhotoDim || h > maxPhotoDim {
		scale := float64(maxPhotoDim) / float64(w)
		if h > w {
			scale = float64(maxPhotoDim) / float64(h)
		}

		dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
