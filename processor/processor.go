package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/orayew2002/marriage-form/domain"
	"github.com/orayew2002/marriage-form/layout"
	"github.com/orayew2002/marriage-form/logger"
	"github.com/xuri/excelize/v2"
)

// DefaultJurisdiction is the issuing office's "<MUNICIPALITY>, <PROVINCE>".
const DefaultJurisdiction = "SOLANO, NUEVA VIZCAYA"

// Options configures a Filler. Zero values take defaults.
type Options struct {
	TemplatePath     string
	DefaultImagePath string // used when the application names no photo
	Jurisdiction     string
	Layout           *layout.Layout
	Now              func() time.Time
}

// Filler writes an application into the template workbook and prunes it.
type Filler struct {
	opts Options
}

// New creates a Filler.
func New(opts Options) *Filler {
	if opts.Jurisdiction == "" {
		opts.Jurisdiction = DefaultJurisdiction
	}
	if opts.Layout == nil {
		opts.Layout = layout.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Filler{opts: opts}
}

// Plan returns the sheet selection Fill would apply to app.
func (p *Filler) Plan(app *domain.Application) domain.Plan {
	return domain.NewPlan(app, p.opts.Jurisdiction)
}

// Fill opens the template from disk, fills it with app and returns the workbook bytes.
func (p *Filler) Fill(ctx context.Context, app *domain.Application) ([]byte, error) {
	if _, err := os.Stat(p.opts.TemplatePath); err != nil {
		return nil, fmt.Errorf("%w at %s", ErrTemplateNotFound, p.opts.TemplatePath)
	}

	f, err := excelize.OpenFile(p.opts.TemplatePath)
	if err != nil {
		return nil, stageErr(StageOpen, fmt.Errorf("open %s: %w", p.opts.TemplatePath, err))
	}
	defer f.Close()

	return p.fill(ctx, f, app)
}

// FillReader is Fill for a template held in memory.
func (p *Filler) FillReader(ctx context.Context, template io.Reader, app *domain.Application) ([]byte, error) {
	f, err := excelize.OpenReader(template)
	if err != nil {
		return nil, stageErr(StageOpen, fmt.Errorf("open from reader: %w", err))
	}
	defer f.Close()

	return p.fill(ctx, f, app)
}

func (p *Filler) fill(ctx context.Context, f *excelize.File, app *domain.Application) ([]byte, error) {
	if idx, _ := f.GetSheetIndex(domain.SheetApplication); idx < 0 {
		return nil, stageErr(StageOpen, fmt.Errorf("%w: %q", ErrSheetMissing, domain.SheetApplication))
	}

	now := p.opts.Now()
	plan := p.Plan(app)
	logger.InfoLog(ctx, "groom age %d (%s), bride age %d (%s), out of town %t, keeping %v",
		app.Groom.Age, plan.GroomBand, app.Bride.Age, plan.BrideBand, plan.OutOfTown, plan.Keep)

	if err := p.writeApplication(f, app, now); err != nil {
		return nil, stageErr(StageFill, err)
	}

	if err := prune(ctx, f, plan); err != nil {
		return nil, stageErr(StagePrune, err)
	}

	if err := resolvePlaceholders(ctx, f, placeholderValues(app, plan, now, p.opts.Jurisdiction)); err != nil {
		return nil, stageErr(StagePlaceholders, err)
	}

	p.addPhoto(ctx, f, app)

	if idx, _ := f.GetSheetIndex(domain.SheetApplication); idx >= 0 {
		f.SetActiveSheet(idx)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, stageErr(StageSerialize, fmt.Errorf("write to buffer: %w", err))
	}

	return buf.Bytes(), nil
}

// prune deletes every sheet outside the plan's keep-set.
func prune(ctx context.Context, f *excelize.File, plan domain.Plan) error {
	for _, sheet := range f.GetSheetList() {
		if plan.Keeps(sheet) {
			continue
		}
		if err := f.DeleteSheet(sheet); err != nil {
			return fmt.Errorf("delete sheet %q: %w", sheet, err)
		}
		logger.DebugLog(ctx, "deleted sheet %q", sheet)
	}

	return nil
}
