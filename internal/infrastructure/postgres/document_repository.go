package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo persistencia de comprobantes electrónicos numerados.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Create inserta el comprobante. La clave de acceso es única.
func (r *DocumentRepo) Create(ctx context.Context, d *entity.ElectronicDocument) error {
	query := `
		INSERT INTO electronic_documents (
			id, company_id, emission_point_id, document_type, series, sequential, issue_date,
			numeric_code, environment, emission_type, access_key, status, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NULLIF($13, '')::uuid, $14)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.CompanyID, d.EmissionPointID, d.DocumentType, d.Series, d.Sequential,
		d.IssueDate.Format("2006-01-02"), d.NumericCode, d.Environment, d.EmissionType,
		d.AccessKey, d.Status, d.CreatedBy, d.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("clave %s: %w", d.AccessKey, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert electronic document: %w", err)
	}
	return nil
}

// GetByAccessKey obtiene un comprobante de la empresa por su clave de acceso.
func (r *DocumentRepo) GetByAccessKey(ctx context.Context, companyID, accessKey string) (*entity.ElectronicDocument, error) {
	ids, ok := parseIDs(companyID)
	if !ok {
		return nil, nil
	}
	query := `
		SELECT id, company_id, emission_point_id, document_type, series, sequential, issue_date,
		       numeric_code, environment, emission_type, access_key, status,
		       COALESCE(created_by::text, ''), created_at
		FROM electronic_documents
		WHERE company_id = $1 AND access_key = $2`
	var d entity.ElectronicDocument
	err := r.q.QueryRow(ctx, query, ids[0], accessKey).Scan(
		&d.ID, &d.CompanyID, &d.EmissionPointID, &d.DocumentType, &d.Series, &d.Sequential, &d.IssueDate,
		&d.NumericCode, &d.Environment, &d.EmissionType, &d.AccessKey, &d.Status,
		&d.CreatedBy, &d.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get electronic document: %w", err)
	}
	return &d, nil
}
