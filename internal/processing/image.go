package processing

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/srinijamadireddy19/Blog-Digest/internal/models"
)

// ImageInfo is what can be read from an uploaded picture without OCR.
type ImageInfo struct {
	Name   string
	Format string
	Width  int
	Height int
	Size   int
}

// InspectImage decodes the image header. Formats without a registered
// decoder are reported with zero dimensions rather than failing.
func InspectImage(blob *models.Blob) ImageInfo {
	info := ImageInfo{Name: blob.Name, Size: len(blob.Data)}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(blob.Data))
	if err != nil {
		info.Format = strings.TrimPrefix(strings.ToLower(blob.MediaType), "image/")
		return info
	}
	info.Format = format
	info.Width, info.Height = cfg.Width, cfg.Height
	return info
}

// ImageSummary describes an uploaded picture.
func ImageSummary(info ImageInfo) models.SummaryRecord {
	format := strings.ToUpper(info.Format)
	if format == "" {
		format = "Unknown"
	}
	var desc string
	if info.Width > 0 && info.Height > 0 {
		desc = fmt.Sprintf("%s image, %dx%d pixels, %s.", format, info.Width, info.Height, humanize.Bytes(uint64(info.Size)))
	} else {
		desc = fmt.Sprintf("%s image, %s.", format, humanize.Bytes(uint64(info.Size)))
	}

	title := info.Name
	if title == "" {
		title = "Uploaded image"
	}
	return models.SummaryRecord{
		Title:   title,
		Content: desc + " Text extraction from images is not available, so only this summary was produced.",
		KeyPoints: []string{
			"Format: " + format,
			"Size: " + humanize.Bytes(uint64(info.Size)),
		},
	}
}
