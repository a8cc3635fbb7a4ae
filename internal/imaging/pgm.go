package imaging

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
)

// PGM (portable graymap) support. Calibration target imagery is commonly
// captured and archived as 8-bit PGM, which the stdlib image decoders do
// not handle. Both the binary (P5) and ASCII (P2) variants decode; encoding
// always writes the binary variant.

// DecodePGM reads an 8-bit PGM image from r.
//
// Supported input:
//   - Magic "P5" (binary) or "P2" (ASCII)
//   - '#' comments anywhere in the header
//   - Maximum gray value up to 255; larger values are rejected rather than
//     silently rescaled
func DecodePGM(r io.Reader) (*image.Gray, error) {
	br := bufio.NewReader(r)

	magic, err := pgmToken(br)
	if err != nil {
		return nil, fmt.Errorf("failed to read PGM header: %w", err)
	}
	if magic != "P5" && magic != "P2" {
		return nil, fmt.Errorf("not a PGM image: magic %q", magic)
	}

	width, err := pgmInt(br, "width")
	if err != nil {
		return nil, err
	}
	height, err := pgmInt(br, "height")
	if err != nil {
		return nil, err
	}
	maxVal, err := pgmInt(br, "maxval")
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid PGM dimensions %dx%d", width, height)
	}
	if maxVal <= 0 || maxVal > 255 {
		return nil, fmt.Errorf("unsupported PGM maxval %d (only 8-bit supported)", maxVal)
	}

	img := image.NewGray(image.Rect(0, 0, width, height))

	if magic == "P5" {
		// Raw data starts after the single whitespace byte that
		// terminated the maxval token.
		if _, err := io.ReadFull(br, img.Pix); err != nil {
			return nil, fmt.Errorf("truncated PGM pixel data: %w", err)
		}
		return img, nil
	}

	for i := range img.Pix {
		v, err := pgmInt(br, "pixel")
		if err != nil {
			return nil, fmt.Errorf("truncated PGM pixel data: %w", err)
		}
		if v < 0 || v > maxVal {
			return nil, fmt.Errorf("PGM pixel value %d exceeds maxval %d", v, maxVal)
		}
		img.Pix[i] = uint8(v)
	}
	return img, nil
}

// EncodePGM writes img to w as binary (P5) 8-bit PGM.
func EncodePGM(w io.Writer, img *image.Gray) error {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if _, err := fmt.Fprintf(w, "P5\n%d %d\n255\n", width, height); err != nil {
		return fmt.Errorf("failed to write PGM header: %w", err)
	}
	for y := 0; y < height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+width]
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write PGM pixel data: %w", err)
		}
	}
	return nil
}

// ReadPGM decodes the PGM file at path.
func ReadPGM(path string) (*image.Gray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PGM file: %w", err)
	}
	defer f.Close()
	return DecodePGM(f)
}

// WritePGM encodes img to the file at path, creating or truncating it.
func WritePGM(path string, img *image.Gray) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create PGM file: %w", err)
	}
	if err := EncodePGM(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// pgmToken returns the next whitespace-delimited header token, skipping
// '#' comments. It consumes exactly one whitespace byte after the token,
// which is what the P5 format requires before raw pixel data.
func pgmToken(br *bufio.Reader) (string, error) {
	var tok []byte
	inComment := false
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			return "", err
		}
		if inComment {
			if b == '\n' {
				inComment = false
			}
			continue
		}
		switch {
		case b == '#':
			inComment = true
		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, b)
		}
	}
}

func pgmInt(br *bufio.Reader, field string) (int, error) {
	tok, err := pgmToken(br)
	if err != nil {
		return 0, fmt.Errorf("failed to read PGM %s: %w", field, err)
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("invalid PGM %s %q", field, tok)
	}
	return v, nil
}
