package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"food_delivery/internal/models"
	"food_delivery/internal/repository"

	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{
	"ID", "User ID", "Status", "Total Amount",
	"Delivery Address", "Delivery Phone", "Notes", "Created At",
}

// ExportService renders admin order listings into downloadable files.
type ExportService interface {
	ExportOrdersCSV(filter repository.OrderFilter) ([]byte, error)
	ExportOrdersXLSX(filter repository.OrderFilter) ([]byte, error)
}

type exportService struct {
	orderRepo repository.OrderRepository
}

func NewExportService(orderRepo repository.OrderRepository) ExportService {
	return &exportService{orderRepo: orderRepo}
}

func exportRow(order *models.Order) []string {
	return []string{
		strconv.FormatUint(uint64(order.ID), 10),
		strconv.FormatUint(uint64(order.UserID), 10),
		order.Status,
		strconv.FormatFloat(order.TotalAmount, 'f', 2, 64),
		order.DeliveryAddress,
		order.DeliveryPhone,
		order.Notes,
		order.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *exportService) ExportOrdersCSV(filter repository.OrderFilter) ([]byte, error) {
	orders, err := s.orderRepo.List(filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	// UTF-8 BOM keeps Cyrillic readable when opened in spreadsheet apps.
	buf.WriteString("\ufeff")

	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for i := range orders {
		if err := w.Write(exportRow(&orders[i])); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *exportService) ExportOrdersXLSX(filter repository.OrderFilter) ([]byte, error) {
	orders, err := s.orderRepo.List(filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Orders"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}
	for row := range orders {
		values := exportRow(&orders[row])
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
