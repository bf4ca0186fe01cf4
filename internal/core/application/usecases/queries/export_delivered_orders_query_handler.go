package queries

import (
	"context"
	"fmt"

	"workshop/internal/core/domain/model/measurement"
	"workshop/internal/core/domain/services"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const (
	ExportSheet       = "Delivered"
	ExportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportDateLayout  = "2006-01-02"
)

var exportHeaders = []string{
	"Order", "Client", "Total Delivered (g)", "Fine Metal (g)", "Profit (g)", "Delivered On",
}

// ExportDeliveredOrdersQueryResponse is an xlsx workbook.
type ExportDeliveredOrdersQueryResponse struct {
	FileName string
	Content  []byte
	Rows     int
}

type ExportDeliveredOrdersQueryHandler struct {
	list ListDeliveredOrdersQueryHandler
}

func NewExportDeliveredOrdersQueryHandler(db *gorm.DB) ExportDeliveredOrdersQueryHandler {
	return ExportDeliveredOrdersQueryHandler{list: NewListDeliveredOrdersQueryHandler(db)}
}

func (h ExportDeliveredOrdersQueryHandler) Handle(
	ctx context.Context,
	query ExportDeliveredOrdersQuery,
) (ExportDeliveredOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ExportDeliveredOrdersQueryResponse{}, err
	}

	facts, err := h.list.Handle(ctx, NewListDeliveredOrdersQuery(query.Search()))
	if err != nil {
		return ExportDeliveredOrdersQueryResponse{}, err
	}

	content, err := writeWorkbook(facts)
	if err != nil {
		return ExportDeliveredOrdersQueryResponse{}, fmt.Errorf("render delivered orders workbook: %w", err)
	}

	return ExportDeliveredOrdersQueryResponse{
		FileName: "delivered-orders.xlsx",
		Content:  content,
		Rows:     len(facts),
	}, nil
}

func writeWorkbook(facts []services.OrderFacts) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return nil, err
	}

	for i, h := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(ExportSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for r, fact := range facts {
		row := []any{
			"#" + fact.ID.Short(),
			fact.ClientName,
			measurement.Round(fact.TotalDelivered),
			measurement.Round(fact.FineGold),
			measurement.Round(fact.ProfitGold),
			deliveredAt(fact).Format(exportDateLayout),
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
