package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/gc02/usuario-server/internal/dbx"
	"github.com/gc02/usuario-server/internal/model"
)

var _ model.PurchaseStore = (*PurchaseRepository)(nil)

// purchaseBatchRows keeps one INSERT well below the 65535 bind parameter limit of Postgres.
const purchaseBatchRows = 1000

type PurchaseRepository struct {
	relationRepository
	batchRows int
}

func NewPurchaseRepository(db dbx.DBTX) *PurchaseRepository {
	return &PurchaseRepository{
		relationRepository: relationRepository{db: db, table: purchaseTable, order: "fecha DESC, idelemento"},
		batchRows:          purchaseBatchRows,
	}
}

// CreateMany inserts items in batches and skips pairs that were already purchased.
// It returns the number of rows actually inserted. Callers wanting all-or-nothing run it in a transaction.
func (r *PurchaseRepository) CreateMany(ctx context.Context, items []model.Relation) (int64, error) {
	var total int64
	for start := 0; start < len(items); start += r.batchRows {
		end := min(start+r.batchRows, len(items))
		n, err := r.insertBatch(ctx, items[start:end])
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func (r *PurchaseRepository) insertBatch(ctx context.Context, items []model.Relation) (int64, error) {
	var b strings.Builder
	b.WriteString(`INSERT INTO ` + purchaseTable + ` (idusuario, idelemento, fecha) VALUES `)
	args := make([]any, 0, len(items)*3)
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "($%d, $%d, $%d)", i*3+1, i*3+2, i*3+3)
		args = append(args, item.UserID, item.ElementID, item.CreatedAt)
	}
	b.WriteString(` ON CONFLICT (idusuario, idelemento) DO NOTHING`)

	res, err := r.db.ExecContext(ctx, b.String(), args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert purchases: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}
