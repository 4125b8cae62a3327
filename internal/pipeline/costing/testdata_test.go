package costing

import (
	"github.com/sabia-pyme/backend-go/internal/domain"
)

// breadFiles is the single-product scenario: one bread priced at 10 using
// two units of a 3.00 input, 100 of expenses over 50 units sold.
func breadFiles() map[string]string {
	return map[string]string{
		"productos.csv":          "producto_id,nombre_producto,precio_venta_actual\n1,Pan,$10\n",
		"ventas.csv":             "producto_id,cantidad_vendida\n1,50\n",
		"insumos.csv":            "insumo_id,nombre_insumo,costo_unitario\n1,Harina,$3.00\n",
		"recetas.csv":            "producto_id,insumo_id,cantidad\n1,1,2\n",
		"tiempos-produccion.csv": "producto_id,tiempo_total_min\n1,15\n",
		"gastos-generales.csv":   "concepto,monto_mensual\nArriendo,$100\n",
	}
}

func toUploads(files map[string]string) []domain.UploadedFile {
	out := make([]domain.UploadedFile, 0, len(files))
	for name, content := range files {
		out = append(out, domain.UploadedFile{
			Filename: name,
			Size:     int64(len(content)),
			Content:  []byte(content),
		})
	}
	return out
}
