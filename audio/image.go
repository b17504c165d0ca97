package audio

import "image"
import "image/color"
import "image/png"
import "os"

// HeatMap renders a matrix with one row per frame as an image with one column
// per frame and one row per coefficient. Values are scaled between the matrix
// minimum and maximum; reverse puts the first coefficient at the bottom.
func HeatMap(rows [][]float64, reverse bool) *image.RGBA {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	width, height := len(rows), len(rows[0])

	img := image.NewRGBA(image.Rect(0, 0, width, height))

	var vmax, vmin = rows[0][0], rows[0][0]
	for _, row := range rows {
		for _, w := range row {
			if w > vmax {
				vmax = w
			}
			if w < vmin {
				vmin = w
			}
		}
	}
	span := vmax - vmin
	if span == 0 {
		span = 1
	}

	for x, row := range rows {
		for y := 0; y < height; y++ {
			var val float64
			if y < len(row) {
				val = (row[y] - vmin) / span
			}
			var col color.RGBA
			col.R = uint8(int(255 * val))
			col.G = uint8(int(255 * val * val))
			col.B = uint8(int(255 * (1 - val)))
			col.A = uint8(255)
			if reverse {
				img.SetRGBA(x, height-y-1, col)
			} else {
				img.SetRGBA(x, y, col)
			}
		}
	}
	return img
}

// SavePNG writes the heat map of rows to a PNG file.
func SavePNG(name string, rows [][]float64, reverse bool) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}

	if err := png.Encode(f, HeatMap(rows, reverse)); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	return nil
}
