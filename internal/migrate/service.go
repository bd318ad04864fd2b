package migrate

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/Chapsvision-dev/cloudinary-migrate/internal/config"
	"github.com/Chapsvision-dev/cloudinary-migrate/internal/inventory"
	"github.com/Chapsvision-dev/cloudinary-migrate/internal/provider"
	"github.com/Chapsvision-dev/cloudinary-migrate/internal/report"
	"github.com/Chapsvision-dev/cloudinary-migrate/internal/throttle"
)

// Options controls the migration workflow.
type Options struct {
	// SourceName and DestName are only used for the banner.
	SourceName string
	DestName   string

	ResourceType string
	PageSize     int

	// StartDelay is the pause between enumeration and the first upload,
	// leaving the operator a window to cancel.
	StartDelay time.Duration
	BatchSize  int
	BatchPause time.Duration
	// Limiter overrides the fixed BatchSize/BatchPause pacer when set.
	Limiter throttle.Limiter

	Printer report.Printer

	// Test seams.
	Sleep throttle.SleepFunc
	Now   func() time.Time
}

// OptionsFromConfig maps the environment config onto Options.
func OptionsFromConfig(cfg config.Config, out, errOut io.Writer) Options {
	return Options{
		SourceName:   cfg.Source.CloudName,
		DestName:     cfg.Dest.CloudName,
		ResourceType: cfg.ResourceType,
		PageSize:     cfg.PageSize,
		StartDelay:   cfg.StartDelay,
		BatchSize:    cfg.BatchSize,
		BatchPause:   cfg.BatchPause,
		Printer: report.Printer{
			Out:           out,
			Err:           errOut,
			ProgressEvery: cfg.ProgressEvery,
			ErrorLimit:    cfg.ErrorReportLimit,
		},
	}
}

// Run enumerates every uploaded resource of src and re-uploads each one to
// dst by URL, keeping public ID, folder and resource type. Per-resource
// failures are recorded in the report; anything else aborts the run.
func Run(ctx context.Context, src provider.Lister, dst provider.Uploader, opt Options) (*report.Report, error) {
	sleep := opt.Sleep
	if sleep == nil {
		sleep = throttle.Sleep
	}
	now := opt.Now
	if now == nil {
		now = time.Now
	}
	p := opt.Printer
	if p.Out == nil {
		p.Out = io.Discard
	}

	p.Start(opt.SourceName, opt.DestName)

	// 1) Enumerate the source account.
	p.Listing()
	inv, err := inventory.Collect(ctx, src, inventory.Options{
		ResourceType: opt.ResourceType,
		PageSize:     opt.PageSize,
		OnPage:       p.Page,
	})
	if err != nil {
		return nil, err
	}
	total := len(inv.Resources)

	// 2) Safety window before touching the destination.
	p.Found(total, opt.StartDelay)
	if err := sleep(ctx, opt.StartDelay); err != nil {
		return nil, errors.Wrap(err, "cancelled before transfer")
	}

	// 3) Transfer in enumeration order.
	p.Migrating()
	rep := &report.Report{}
	limiter := opt.Limiter
	if limiter == nil {
		limiter = throttle.Pacer{
			Every:   opt.BatchSize,
			Pause:   opt.BatchPause,
			Sleep:   sleep,
			OnPause: func(int, int) { p.Pause(opt.BatchPause, rep) },
		}
	}

	start := now()
	for i, res := range inv.Resources {
		if err := ctx.Err(); err != nil {
			rep.Elapsed = now().Sub(start)
			return rep, errors.Wrapf(err, "transfer interrupted at %d/%d", i+1, total)
		}

		_, err := dst.UploadFromURL(ctx, provider.UploadRequest{
			URL:          res.SecureURL,
			PublicID:     res.PublicID,
			Folder:       res.Folder,
			ResourceType: res.ResourceType,
			Overwrite:    false,
		})
		if err != nil {
			msg := rep.AddFailure(res.PublicID, err)
			p.Failure(i, total, msg)
			log.Debug().Err(err).Str("action", "transfer").Str("public_id", res.PublicID).
				Int("index", i+1).Msg("resource failed")
		} else {
			rep.AddSuccess()
			p.Progress(i, total, res.PublicID)
		}

		if _, err := limiter.After(ctx, i, total); err != nil {
			rep.Elapsed = now().Sub(start)
			return rep, errors.Wrapf(err, "transfer interrupted after %d/%d", i+1, total)
		}
	}
	rep.Elapsed = now().Sub(start)

	// 4) Report.
	p.Summary(rep, total)
	log.Info().
		Str("action", "migrate").
		Str("source", opt.SourceName).
		Str("dest", opt.DestName).
		Int("success", rep.Success).
		Int("failure", rep.Failure).
		Int("total", total).
		Dur("elapsed_ms", rep.Elapsed).
		Msg("migration finished")
	return rep, nil
}
