package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/repository"
)

var _ repository.EmissionPointRepository = (*EmissionPointRepo)(nil)

// EmissionPointRepo persistencia de puntos de emisión (usable con pool o tx).
type EmissionPointRepo struct {
	q Querier
}

// NewEmissionPointRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmissionPointRepository(q Querier) *EmissionPointRepo {
	return &EmissionPointRepo{q: q}
}

const emissionPointColumns = `id, company_id, establishment, code, document_type, next_sequential, is_active, created_at, updated_at`

// Create inserta el punto de emisión. Una serie repetida para el mismo tipo devuelve ErrDuplicate.
func (r *EmissionPointRepo) Create(ctx context.Context, p *entity.EmissionPoint) error {
	query := `
		INSERT INTO emission_points (` + emissionPointColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.Establishment, p.Code, p.DocumentType,
		p.NextSequential, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("serie %s tipo %s: %w", p.Series(), p.DocumentType, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert emission point: %w", err)
	}
	return nil
}

// ListByCompany puntos de emisión de la empresa ordenados por serie.
func (r *EmissionPointRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.EmissionPoint, error) {
	ids, ok := parseIDs(companyID)
	if !ok {
		return []*entity.EmissionPoint{}, nil
	}
	query := `SELECT ` + emissionPointColumns + `
		FROM emission_points WHERE company_id = $1
		ORDER BY establishment, code, document_type`
	rows, err := r.q.Query(ctx, query, ids[0])
	if err != nil {
		return nil, fmt.Errorf("list emission points: %w", err)
	}
	defer rows.Close()

	list := []*entity.EmissionPoint{}
	for rows.Next() {
		p, err := scanEmissionPoint(rows)
		if err != nil {
			return nil, fmt.Errorf("scan emission point: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// GetForUpdate bloquea la fila del punto activo hasta el fin de la transacción. Llamarlo con una tx:
// con el pool el bloqueo se libera al terminar la sentencia.
func (r *EmissionPointRepo) GetForUpdate(ctx context.Context, companyID, establishment, code, documentType string) (*entity.EmissionPoint, error) {
	ids, ok := parseIDs(companyID)
	if !ok {
		return nil, nil
	}
	query := `SELECT ` + emissionPointColumns + `
		FROM emission_points
		WHERE company_id = $1 AND establishment = $2 AND code = $3 AND document_type = $4 AND is_active
		FOR UPDATE`
	p, err := scanEmissionPoint(r.q.QueryRow(ctx, query, ids[0], establishment, code, documentType))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock emission point: %w", err)
	}
	return p, nil
}

// UpdateNextSequential guarda el próximo secuencial a asignar.
func (r *EmissionPointRepo) UpdateNextSequential(ctx context.Context, id string, next int64) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE emission_points SET next_sequential = $2, updated_at = now() WHERE id = $1`, id, next)
	if err != nil {
		return fmt.Errorf("update sequential: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("punto de emisión %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanEmissionPoint(row rowScanner) (*entity.EmissionPoint, error) {
	var p entity.EmissionPoint
	if err := row.Scan(&p.ID, &p.CompanyID, &p.Establishment, &p.Code, &p.DocumentType,
		&p.NextSequential, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
