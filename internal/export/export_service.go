package export

import (
	"context"
	"fmt"

	"github.com/kiwidressing/Maruschedule/internal/archive"
	"github.com/kiwidressing/Maruschedule/internal/auth"
	exporterrors "github.com/kiwidressing/Maruschedule/internal/export/errors"
	"github.com/kiwidressing/Maruschedule/internal/shift"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// File is a rendered export ready to stream to the client.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

//go:generate mockgen -source=export_service.go -destination=mock/export_service_mock.go -package=mock
type Service interface {
	UserWeek(ctx context.Context, userID, weekStart, format string) (File, error)
	CompanyWeek(ctx context.Context, companyID, weekStart, format string) (File, error)
	Archive(ctx context.Context, userID, archiveID, format string) (File, error)
}

type service struct {
	shiftSvc   shift.Service
	archiveSvc archive.Service
	authSvc    auth.Service
	group      singleflight.Group
	logger     *zap.Logger
}

func NewService(
	shiftSvc shift.Service,
	archiveSvc archive.Service,
	authSvc auth.Service,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("export.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("export.service")
	}
	return &service{
		shiftSvc:   shiftSvc,
		archiveSvc: archiveSvc,
		authSvc:    authSvc,
		logger:     l,
	}
}

// render collapses concurrent identical requests into one rendering.
// Exports are pure reads, so sharing the result is safe.
func (s *service) render(key string, fn func() (File, error)) (File, error) {
	v, err, shared := s.group.Do(key, func() (any, error) {
		f, err := fn()
		if err != nil {
			return nil, err
		}
		return f, nil
	})
	if err != nil {
		return File{}, err
	}
	if shared {
		s.logger.Debug("export render shared", zap.String("key", key))
	}
	return v.(File), nil
}

func (s *service) UserWeek(ctx context.Context, userID, weekStart, format string) (File, error) {
	if err := validateFormat(format); err != nil {
		return File{}, err
	}

	key := fmt.Sprintf("user-week:%s:%s:%s", userID, weekStart, format)
	return s.render(key, func() (File, error) {
		me, err := s.authSvc.GetMe(ctx, userID)
		if err != nil {
			return File{}, err
		}
		week, err := s.shiftSvc.GetWeek(ctx, userID, weekStart)
		if err != nil {
			return File{}, err
		}
		if week.Totals.TotalHours == 0 {
			return File{}, exporterrors.ErrNothingToExport
		}

		doc := BuildWeekDocument(me.Name, me.MemberNumber, week)
		return renderDocument(doc, format, "week-"+week.WeekStart)
	})
}

func (s *service) CompanyWeek(ctx context.Context, companyID, weekStart, format string) (File, error) {
	if err := validateFormat(format); err != nil {
		return File{}, err
	}

	key := fmt.Sprintf("company-week:%s:%s:%s", companyID, weekStart, format)
	return s.render(key, func() (File, error) {
		members, err := s.shiftSvc.GetCompanyWeek(ctx, companyID, weekStart)
		if err != nil {
			return File{}, err
		}
		if len(members) == 0 {
			return File{}, exporterrors.ErrNothingToExport
		}

		doc := BuildCompanyWeekDocument(members[0].WeekStart, members)
		name := "company-week-" + doc.WeekStart

		switch format {
		case FormatXLSX:
			data, err := RenderCompanyWeekXLSX(doc)
			if err != nil {
				return File{}, err
			}
			return xlsxFile(name, data), nil
		default:
			data, err := RenderCompanyWeekPDF(doc)
			if err != nil {
				return File{}, err
			}
			return pdfFile(name, data), nil
		}
	})
}

func (s *service) Archive(ctx context.Context, userID, archiveID, format string) (File, error) {
	if err := validateFormat(format); err != nil {
		return File{}, err
	}

	key := fmt.Sprintf("archive:%s:%s:%s", userID, archiveID, format)
	return s.render(key, func() (File, error) {
		me, err := s.authSvc.GetMe(ctx, userID)
		if err != nil {
			return File{}, err
		}
		arch, err := s.archiveSvc.Get(ctx, userID, archiveID)
		if err != nil {
			return File{}, err
		}

		doc := BuildArchiveDocument(me.Name, me.MemberNumber, arch)
		return renderDocument(doc, format, "archive-"+arch.WeekStart)
	})
}

func validateFormat(format string) error {
	if format != FormatXLSX && format != FormatPDF {
		return exporterrors.ErrInvalidFormat
	}
	return nil
}

func renderDocument(doc WeekDocument, format, name string) (File, error) {
	switch format {
	case FormatXLSX:
		data, err := RenderWeekXLSX(doc)
		if err != nil {
			return File{}, err
		}
		return xlsxFile(name, data), nil
	default:
		data, err := RenderWeekPDF(doc)
		if err != nil {
			return File{}, err
		}
		return pdfFile(name, data), nil
	}
}

func xlsxFile(name string, data []byte) File {
	return File{
		Name:        name + ".xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        data,
	}
}

func pdfFile(name string, data []byte) File {
	return File{
		Name:        name + ".pdf",
		ContentType: "application/pdf",
		Data:        data,
	}
}
