package processor

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/orayew2002/marriage-form/domain"
	"github.com/orayew2002/marriage-form/excel"
	"github.com/orayew2002/marriage-form/layout"
	"github.com/orayew2002/marriage-form/logger"
	"github.com/xuri/excelize/v2"
)

var photoExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true}

// addPhoto anchors the couple photo on the notice sheet. Every failure is a warning:
// the workbook is still valid without the photo.
func (p *Filler) addPhoto(ctx context.Context, f *excelize.File, app *domain.Application) {
	path := app.ImagePath
	if path == "" {
		path = p.opts.DefaultImagePath
	}
	if path == "" {
		logger.InfoLog(ctx, "no photo supplied, skipping image overlay")
		return
	}

	if _, err := os.Stat(path); err != nil {
		logger.WarnLog(ctx, "photo %s not found, skipping image overlay", path)
		return
	}

	if idx, _ := f.GetSheetIndex(domain.SheetNotice); idx < 0 {
		logger.WarnLog(ctx, "sheet %q missing, skipping image overlay", domain.SheetNotice)
		return
	}

	if ext := strings.ToLower(filepath.Ext(path)); !photoExtensions[ext] {
		logger.WarnLog(ctx, "unsupported photo type %q, skipping image overlay", ext)
		return
	}

	anchor := p.opts.Layout.Photo
	opts, err := photoOptions(path, anchor)
	if err != nil {
		logger.WarnLog(ctx, "Image overlay failed: %v", err)
		return
	}

	if err := f.AddPicture(domain.SheetNotice, anchor.Cell, path, opts); err != nil {
		logger.WarnLog(ctx, "Image overlay failed: %v", err)
		return
	}

	logger.DebugLog(ctx, "photo %s anchored at %s!%s", path, domain.SheetNotice, anchor.Cell)
}

// photoOptions scales the image to the anchor's size in centimetres.
func photoOptions(path string, anchor layout.PhotoAnchor) (*excelize.GraphicOptions, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open photo: %w", err)
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("photo has no pixels")
	}

	return &excelize.GraphicOptions{
		AltText:     "Couple photo",
		ScaleX:      float64(excel.CmToPixels(anchor.WidthCm)) / float64(cfg.Width),
		ScaleY:      float64(excel.CmToPixels(anchor.HeightCm)) / float64(cfg.Height),
		Positioning: "oneCell",
	}, nil
}
