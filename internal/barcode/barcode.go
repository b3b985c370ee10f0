// Package barcode encodes a value into an embeddable SVG barcode for the
// greeting-card back surface. Encoding failures degrade to "no barcode" at
// the call site — they never abort document composition.
package barcode

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"
	bc "github.com/boombuler/barcode"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/twooffive"
)

var ErrEncode = errors.New("barcode encoding failed")

// Format is the requested symbology.
type Format string

const (
	EAN8  Format = "ean8"
	EAN13 Format = "ean13"
	ITF14 Format = "itf14"
	UPC   Format = "upc"
	UPCE  Format = "upce"
)

// Fixed canvas geometry in logical units. No human-readable value line is
// rendered below the bars.
const (
	canvasWidth  = 200
	canvasHeight = 20
	barHeight    = 16
	barTop       = (canvasHeight - barHeight) / 2
)

// ValidateLength enforces the per-symbology digit-length contract. The
// request validator checks this upstream; Render re-checks defensively.
func ValidateLength(value string, f Format) error {
	if !allDigits(value) {
		return fmt.Errorf("%w: %s value must be numeric", ErrEncode, f)
	}
	ok := false
	switch f {
	case EAN8:
		ok = len(value) == 8
	case EAN13:
		ok = len(value) == 13
	case ITF14:
		ok = len(value) == 14
	case UPC:
		ok = len(value) == 12
	case UPCE:
		ok = len(value) == 6 || len(value) == 8
	default:
		return fmt.Errorf("%w: unknown format %q", ErrEncode, f)
	}
	if !ok {
		return fmt.Errorf("%w: invalid length %d for %s", ErrEncode, len(value), f)
	}
	return nil
}

// Render encodes value per the requested symbology and serializes the bars
// into a fixed 200x20 SVG canvas.
func Render(value string, f Format) (string, error) {
	if err := ValidateLength(value, f); err != nil {
		return "", err
	}

	var (
		code bc.Barcode
		err  error
	)
	switch f {
	case EAN8, EAN13:
		code, err = ean.Encode(value)
	case UPC:
		// UPC-A is EAN-13 with a leading zero.
		code, err = ean.Encode("0" + value)
	case UPCE:
		var upcA string
		upcA, err = expandUPCE(value)
		if err == nil {
			// 12 digits without check digit; ean.Encode appends it.
			code, err = ean.Encode("0" + upcA)
		}
	case ITF14:
		code, err = twooffive.Encode(value, true)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return drawSVG(code), nil
}

// drawSVG scans the encoded modules and emits one rect per run of dark
// modules, scaled onto the logical canvas.
func drawSVG(code bc.Barcode) string {
	bounds := code.Bounds()
	modules := bounds.Dx()

	scale := func(module int) int {
		return int(math.Round(float64(module) * canvasWidth / float64(modules)))
	}
	dark := func(x int) bool {
		r, g, b, _ := code.At(bounds.Min.X+x, bounds.Min.Y).RGBA()
		return r == 0 && g == 0 && b == 0
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(canvasWidth, canvasHeight, 0, 0, canvasWidth, canvasHeight)
	for x := 0; x < modules; {
		if !dark(x) {
			x++
			continue
		}
		start := x
		for x < modules && dark(x) {
			x++
		}
		x0, x1 := scale(start), scale(x)
		canvas.Rect(x0, barTop, x1-x0, barHeight, "fill:black")
	}
	canvas.End()
	return buf.String()
}

// expandUPCE expands a 6- or 8-digit UPC-E value into the 11-digit UPC-A
// body (number system + 10 product digits, check digit omitted).
func expandUPCE(value string) (string, error) {
	system := byte('0')
	core := value
	if len(value) == 8 {
		system = value[0]
		if system != '0' && system != '1' {
			return "", fmt.Errorf("upc-e number system must be 0 or 1, got %c", system)
		}
		core = value[1:7] // strip number system and check digit
	}

	var body string
	switch core[5] {
	case '0', '1', '2':
		body = core[:2] + string(core[5]) + "0000" + core[2:5]
	case '3':
		body = core[:3] + "00000" + core[3:5]
	case '4':
		body = core[:4] + "00000" + string(core[4])
	default:
		body = core[:5] + "0000" + string(core[5])
	}
	return string(system) + body, nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
