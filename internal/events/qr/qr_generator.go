package qr

import (
	"github.com/skip2/go-qrcode"
)

const (
	DefaultSize = 256
	MinSize     = 64
	MaxSize     = 1024
)

// Generator renders join-URL QR codes for the dashboard preview and
// download buttons.
type Generator struct {
	level qrcode.RecoveryLevel
}

func NewGenerator() *Generator {
	return &Generator{level: qrcode.Medium}
}

func (g *Generator) JoinPNG(joinURL string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	return qrcode.Encode(joinURL, g.level, size)
}
