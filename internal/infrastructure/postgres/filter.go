package postgres

import (
	"fmt"
	"strings"

	"github.com/cronox/catalogo-api/internal/domain/repository"
)

// buildProductWhere compone los predicados opcionales del listado en una cláusula
// WHERE con placeholders posicionales. Filtro en blanco = no filtra (match-all);
// nombre filtra por substring sin distinguir mayúsculas (ILIKE); SKU por igualdad.
// Los predicados presentes se combinan con AND. Devuelve "" si no hay filtros.
func buildProductWhere(f repository.ListFilter) (string, []any) {
	var conds []string
	var args []any
	if name := strings.TrimSpace(f.Name); name != "" {
		args = append(args, "%"+name+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if sku := strings.TrimSpace(f.SKU); sku != "" {
		args = append(args, sku)
		conds = append(conds, fmt.Sprintf("sku = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
