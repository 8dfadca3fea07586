package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/fencyatf/Products-Backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{"ID", "Name", "Price", "Description", "Image", "Created At"}

func exportFilename(ext string) string {
	return fmt.Sprintf("attachment; filename=\"products_%s.%s\"", time.Now().Format("20060102"), ext)
}

// ExportCSV GET /products/export.csv
func (h *ProductHandler) ExportCSV(c *gin.Context) {
	products, err := h.Store.ListProducts(c.Request.Context())
	if err != nil {
		h.storeError(c, "list products", err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", exportFilename("csv"))
	c.Status(http.StatusOK)

	// UTF-8 BOM so spreadsheet apps pick the right encoding
	_, _ = c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	_ = writer.Write(exportHeaders)
	for _, p := range products {
		_ = writer.Write([]string{
			p.ID,
			p.Name,
			util.FormatPrice(p.Price),
			p.Description,
			p.Image,
			p.CreatedAt.Format(time.RFC3339),
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		h.Log.ErrorContext(c.Request.Context(), "write csv export", "error", err)
	}
}

// ExportXLSX GET /products/export.xlsx
func (h *ProductHandler) ExportXLSX(c *gin.Context) {
	products, err := h.Store.ListProducts(c.Request.Context())
	if err != nil {
		h.storeError(c, "list products", err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Products"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.KindInternal, "could not create worksheet")
		return
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for i, title := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, title)
	}

	for idx, p := range products {
		row := idx + 2
		values := []any{p.ID, p.Name, p.Price, p.Description, p.Image, p.CreatedAt.Format(time.RFC3339)}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 38)
	_ = f.SetColWidth(sheetName, "B", "B", 24)
	_ = f.SetColWidth(sheetName, "C", "C", 10)
	_ = f.SetColWidth(sheetName, "D", "D", 40)
	_ = f.SetColWidth(sheetName, "E", "E", 30)
	_ = f.SetColWidth(sheetName, "F", "F", 22)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", exportFilename("xlsx"))
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		h.Log.ErrorContext(c.Request.Context(), "write xlsx export", "error", err)
	}
}
