package export

import (
	"bytes"
	"context"
	"fmt"

	"feedback-platform/backend/internal/form/shared"

	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const sheetName = "Responses"

// XLSX renders the full response set as a single-sheet workbook laid out like
// the CSV export: header row, then one row per response.
func (s *Service) XLSX(ctx context.Context, questions []shared.Question, responses []shared.ResponseData) ([]byte, error) {
	traceCtx, span := s.tracer.Start(ctx, "XLSX")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	workbook := excelize.NewFile()
	defer func() {
		if err := workbook.Close(); err != nil {
			logger.Warn("failed to close workbook", zap.Error(err))
		}
	}()

	index, err := workbook.NewSheet(sheetName)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("create worksheet: %w", err)
	}
	workbook.SetActiveSheet(index)
	if err := workbook.DeleteSheet("Sheet1"); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("drop default worksheet: %w", err)
	}

	writeRow := func(rowIndex int, cells []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowIndex)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(cells))
		for i, v := range cells {
			values[i] = v
		}
		return workbook.SetSheetRow(sheetName, cell, &values)
	}

	if err := writeRow(1, header(questions)); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("write header row: %w", err)
	}

	for i, resp := range responses {
		cells := row(questions, resp)
		if err := writeRow(i+2, cells); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("write response row: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := workbook.Write(&buf); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}

	logger.Debug("exported responses workbook", zap.Int("responses", len(responses)))

	return buf.Bytes(), nil
}
