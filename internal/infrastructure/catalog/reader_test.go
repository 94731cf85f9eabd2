package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadProductsCSV(t *testing.T) {
	t.Run("reads products by header name", func(t *testing.T) {
		path := writeTempCSV(t,
			"style_id,brand,product_title,gender,category,min_price_rupees,first_image_url\n"+
				"KLY-001,Bewakoof,Men Black Printed Tshirt,Men,t-shirts,599,https://cdn.klydo.in/1.jpg\n"+
				"KLY-002,Sassafras,Floral Midi Dress,Women,dresses,1299.50,https://cdn.klydo.in/2.jpg\n")

		products, err := NewReader(path).ReadProducts(context.Background())
		require.NoError(t, err)
		require.Len(t, products, 2)

		assert.Equal(t, "KLY-001", products[0].StyleID)
		assert.Equal(t, "Bewakoof", products[0].Brand)
		assert.Equal(t, "t-shirts", products[0].Category)
		assert.Equal(t, 599.0, products[0].ReferencePrice)
		assert.Equal(t, "https://cdn.klydo.in/1.jpg", products[0].ImageURL)
		assert.Equal(t, 1299.50, products[1].ReferencePrice)
	})

	t.Run("column order does not matter", func(t *testing.T) {
		path := writeTempCSV(t,
			"brand,style_id,first_image_url,product_title,min_price_rupees,category,gender\n"+
				"Bewakoof,KLY-001,https://cdn.klydo.in/1.jpg,Tee,599,t-shirts,Men\n")

		products, err := NewReader(path).ReadProducts(context.Background())
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "KLY-001", products[0].StyleID)
		assert.Equal(t, "https://cdn.klydo.in/1.jpg", products[0].ImageURL)
	})

	t.Run("missing and bad prices read as zero", func(t *testing.T) {
		path := writeTempCSV(t,
			"style_id,brand,product_title,gender,category,min_price_rupees,first_image_url\n"+
				"KLY-001,Bewakoof,Tee,Men,t-shirts,,https://cdn.klydo.in/1.jpg\n"+
				"KLY-002,Bewakoof,Tee,Men,t-shirts,n/a,https://cdn.klydo.in/2.jpg\n"+
				"KLY-003,Bewakoof,Tee,Men,t-shirts,-50,https://cdn.klydo.in/3.jpg\n")

		products, err := NewReader(path).ReadProducts(context.Background())
		require.NoError(t, err)
		require.Len(t, products, 3)
		for _, p := range products {
			assert.Zero(t, p.ReferencePrice, "style %s", p.StyleID)
		}
	})

	t.Run("ragged rows yield empty cells", func(t *testing.T) {
		path := writeTempCSV(t,
			"style_id,brand,product_title,gender,category,min_price_rupees,first_image_url\n"+
				"KLY-001,Bewakoof,Tee\n")

		products, err := NewReader(path).ReadProducts(context.Background())
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Empty(t, products[0].ImageURL)
		assert.Zero(t, products[0].ReferencePrice)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := NewReader(filepath.Join(t.TempDir(), "nope.csv")).ReadProducts(context.Background())
		assert.Error(t, err)
	})

	t.Run("empty file is an error", func(t *testing.T) {
		path := writeTempCSV(t, "")
		_, err := NewReader(path).ReadProducts(context.Background())
		assert.Error(t, err)
	})
}

func TestReadProductsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []interface{}{"style_id", "brand", "product_title", "gender", "category", "min_price_rupees", "first_image_url"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	row := []interface{}{"KLY-001", "Bewakoof", "Men Black Printed Tshirt", "Men", "t-shirts", 599, "https://cdn.klydo.in/1.jpg"}
	require.NoError(t, f.SetSheetRow(sheet, "A2", &row))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	products, err := NewReader(path).ReadProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "KLY-001", products[0].StyleID)
	assert.Equal(t, 599.0, products[0].ReferencePrice)
	assert.Equal(t, "https://cdn.klydo.in/1.jpg", products[0].ImageURL)
}
