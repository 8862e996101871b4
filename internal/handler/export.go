package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/abidalfrz/expense-tracker-webapp/internal/models"
	"github.com/abidalfrz/expense-tracker-webapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler streams the current user's expenses as CSV or XLSX.
type ExportHandler struct {
	Expenses   *service.ExpenseService
	Categories *service.CategoryService
}

func NewExportHandler(expenses *service.ExpenseService, categories *service.CategoryService) *ExportHandler {
	return &ExportHandler{Expenses: expenses, Categories: categories}
}

var exportHeaders = []string{"Title", "Category", "Amount", "Date"}

func (h *ExportHandler) load(userID uint) ([]models.Expense, map[uint]string, error) {
	expenses, err := h.Expenses.ListByUser(userID)
	if err != nil {
		return nil, nil, err
	}
	categories, err := h.Categories.List(userID)
	if err != nil {
		return nil, nil, err
	}
	names := make(map[uint]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return expenses, names, nil
}

// ExportCSV writes the expense list as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	user := currentUser(c)

	expenses, names, err := h.load(user.ID)
	if err != nil {
		log.Printf("export csv: %v", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.csv\"",
		time.Now().Format("20060102")))

	// UTF-8 BOM so Excel detects the encoding
	_, _ = c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	_ = writer.Write(exportHeaders)
	for _, e := range expenses {
		_ = writer.Write([]string{
			e.Title,
			names[e.CategoryID],
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
			e.Date.Format("2006-01-02"),
		})
	}
}

// ExportXLSX writes the expense list as an Excel workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	user := currentUser(c)

	expenses, names, err := h.load(user.ID)
	if err != nil {
		log.Printf("export xlsx: %v", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	f := excelize.NewFile()
	sheetName := "Expenses"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		log.Printf("export xlsx sheet: %v", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	f.SetActiveSheet(index)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx, e := range expenses {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), e.Title)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), names[e.CategoryID])
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), e.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), e.Date.Format("2006-01-02"))
	}

	f.SetColWidth(sheetName, "A", "A", 25)
	f.SetColWidth(sheetName, "B", "B", 15)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		log.Printf("export xlsx write: %v", err)
	}
}
