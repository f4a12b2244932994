package documents

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/contable-api/internal/application/dto"
	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/repository"
	"github.com/jhoicas/contable-api/pkg/config"
	"github.com/jhoicas/contable-api/pkg/logger"
	"github.com/jhoicas/contable-api/pkg/sri"
)

// MaxSequential último secuencial representable en 9 dígitos.
const MaxSequential int64 = 999_999_999

const dateLayout = "2006-01-02"

var numericCodeLimit = big.NewInt(100_000_000)

// UseCase numera comprobantes electrónicos y les asigna la clave de acceso del SRI.
type UseCase struct {
	companies repository.CompanyRepository
	points    repository.EmissionPointRepository
	docs      repository.DocumentRepository
	tx        TxRunner
	xml       InfoTributariaBuilder
	sriCfg    config.SRIConfig
	loc       *time.Location
	log       *logger.Logger

	now         func() time.Time
	numericCode func() (string, error)
}

// NewUseCase construye el caso de uso. sriCfg aporta ambiente y tipo de emisión por defecto
// cuando la empresa no los define.
func NewUseCase(
	companies repository.CompanyRepository,
	points repository.EmissionPointRepository,
	docs repository.DocumentRepository,
	tx TxRunner,
	xml InfoTributariaBuilder,
	sriCfg config.SRIConfig,
	loc *time.Location,
	log *logger.Logger,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		companies:   companies,
		points:      points,
		docs:        docs,
		tx:          tx,
		xml:         xml,
		sriCfg:      sriCfg,
		loc:         loc,
		log:         log.Named("documents"),
		now:         time.Now,
		numericCode: RandomNumericCode,
	}
}

// RandomNumericCode genera el código numérico de 8 dígitos de la clave de acceso.
func RandomNumericCode() (string, error) {
	n, err := rand.Int(rand.Reader, numericCodeLimit)
	if err != nil {
		return "", fmt.Errorf("documents: código numérico: %w", err)
	}
	return fmt.Sprintf("%08d", n.Int64()), nil
}

// Issue reserva el siguiente secuencial del punto de emisión, genera la clave de acceso y guarda
// el comprobante en estado GENERATED. Reserva y registro ocurren en la misma transacción.
func (uc *UseCase) Issue(ctx context.Context, companyID, userID string, req dto.IssueAccessKeyRequest) (*dto.IssuedDocumentDTO, error) {
	if err := validateIssue(req); err != nil {
		return nil, err
	}

	issueDate, err := uc.issueDate(req.IssueDate)
	if err != nil {
		return nil, err
	}
	numericCode := req.NumericCode
	if numericCode == "" {
		if numericCode, err = uc.numericCode(); err != nil {
			return nil, err
		}
	}

	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("documents: empresa: %w", err)
	}
	if company == nil {
		return nil, fmt.Errorf("empresa %s: %w", companyID, domain.ErrNotFound)
	}
	if err := sri.ValidateRUC(company.RUC); err != nil {
		return nil, err
	}
	env, emissionType, err := uc.emissionSettings(company)
	if err != nil {
		return nil, err
	}

	var doc *entity.ElectronicDocument
	err = uc.tx.RunIssue(ctx, func(points repository.EmissionPointRepository, docs repository.DocumentRepository) error {
		point, err := points.GetForUpdate(ctx, companyID, req.Establishment, req.EmissionPoint, req.DocumentType)
		if err != nil {
			return fmt.Errorf("documents: punto de emisión: %w", err)
		}
		if point == nil {
			return fmt.Errorf("punto de emisión %s-%s para comprobante %s: %w",
				req.Establishment, req.EmissionPoint, req.DocumentType, domain.ErrNotFound)
		}
		seq := point.NextSequential
		if seq < 1 || seq > MaxSequential {
			return fmt.Errorf("punto %s: %w", point.Series(), domain.ErrSequenceExhausted)
		}
		sequential := fmt.Sprintf("%09d", seq)

		key, err := sri.GenerateAccessKey(sri.AccessKeyParams{
			IssueDate:    issueDate,
			DocumentType: req.DocumentType,
			TaxpayerID:   company.RUC,
			Environment:  env,
			Series:       point.Series(),
			Sequential:   sequential,
			NumericCode:  numericCode,
			EmissionType: emissionType,
		})
		if err != nil {
			return err
		}

		doc = &entity.ElectronicDocument{
			ID:              uuid.New().String(),
			CompanyID:       companyID,
			EmissionPointID: point.ID,
			DocumentType:    req.DocumentType,
			Series:          point.Series(),
			Sequential:      sequential,
			IssueDate:       issueDate,
			NumericCode:     key[39:47],
			Environment:     env.Code(),
			EmissionType:    emissionType,
			AccessKey:       key,
			Status:          entity.DocumentStatusGenerated,
			CreatedBy:       userID,
			CreatedAt:       uc.now(),
		}
		if err := docs.Create(ctx, doc); err != nil {
			return fmt.Errorf("documents: registrar comprobante: %w", err)
		}
		return points.UpdateNextSequential(ctx, point.ID, seq+1)
	})
	if err != nil {
		if errors.Is(err, domain.ErrSequenceExhausted) {
			uc.log.Warn().Str("company_id", companyID).Err(err).Msg("secuencial agotado")
		}
		return nil, err
	}

	out := issuedDTO(doc)
	if uc.xml != nil {
		block, err := uc.xml.BuildInfoTributaria(company, doc)
		if err != nil {
			return nil, fmt.Errorf("documents: infoTributaria: %w", err)
		}
		out.InfoTributaria = string(block)
	}

	uc.log.Info().
		Str("company_id", companyID).
		Str("document_type", doc.DocumentType).
		Str("series", doc.Series).
		Str("sequential", doc.Sequential).
		Str("access_key", doc.AccessKey).
		Msg("clave de acceso generada")
	return out, nil
}

// Verify comprueba una clave de acceso sin consultar la base de datos.
// Una clave inválida no es un error: se informa con Valid=false.
func (uc *UseCase) Verify(req dto.VerifyAccessKeyRequest) *dto.AccessKeyVerificationDTO {
	out := &dto.AccessKeyVerificationDTO{AccessKey: req.AccessKey}
	parts, err := sri.ParseAccessKey(req.AccessKey)
	if err != nil {
		out.Message = err.Error()
		return out
	}
	out.Valid = true
	out.Parts = parts
	return out
}

// GetByAccessKey busca un comprobante de la empresa por su clave.
func (uc *UseCase) GetByAccessKey(ctx context.Context, companyID, key string) (*dto.IssuedDocumentDTO, error) {
	if err := sri.VerifyAccessKey(key); err != nil {
		return nil, err
	}
	doc, err := uc.docs.GetByAccessKey(ctx, companyID, key)
	if err != nil {
		return nil, fmt.Errorf("documents: buscar comprobante: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("comprobante %s: %w", key, domain.ErrNotFound)
	}
	return issuedDTO(doc), nil
}

// ListEmissionPoints devuelve los puntos de emisión de la empresa.
func (uc *UseCase) ListEmissionPoints(ctx context.Context, companyID string) ([]dto.EmissionPointDTO, error) {
	points, err := uc.points.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("documents: puntos de emisión: %w", err)
	}
	out := make([]dto.EmissionPointDTO, 0, len(points))
	for _, p := range points {
		out = append(out, emissionPointDTO(p))
	}
	return out, nil
}

// CreateEmissionPoint registra una serie autorizada para un tipo de comprobante.
func (uc *UseCase) CreateEmissionPoint(ctx context.Context, companyID string, req dto.CreateEmissionPointRequest) (*dto.EmissionPointDTO, error) {
	var errs []error
	if err := validateCode3("establishment", req.Establishment); err != nil {
		errs = append(errs, err)
	}
	if err := validateCode3("code", req.Code); err != nil {
		errs = append(errs, err)
	}
	if _, ok := sri.DocumentTypes[req.DocumentType]; !ok {
		errs = append(errs, domain.NewValidationError("document_type", "tipo de comprobante %q no soportado", req.DocumentType))
	}
	next := req.NextSequential
	if next == 0 {
		next = 1
	}
	if next < 1 || next > MaxSequential {
		errs = append(errs, domain.NewValidationError("next_sequential", "debe estar entre 1 y %d", MaxSequential))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	now := uc.now()
	p := &entity.EmissionPoint{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		Establishment:  req.Establishment,
		Code:           req.Code,
		DocumentType:   req.DocumentType,
		NextSequential: next,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.points.Create(ctx, p); err != nil {
		return nil, err
	}
	out := emissionPointDTO(p)
	return &out, nil
}

func (uc *UseCase) issueDate(s string) (time.Time, error) {
	if s == "" {
		now := uc.now().In(uc.loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc), nil
	}
	d, err := time.ParseInLocation(dateLayout, s, uc.loc)
	if err != nil {
		return time.Time{}, domain.NewValidationError("issue_date", "formato esperado YYYY-MM-DD: %q", s)
	}
	return d, nil
}

// emissionSettings usa el ambiente y tipo de emisión de la empresa; si no los define, los de la
// configuración.
func (uc *UseCase) emissionSettings(c *entity.Company) (sri.Environment, string, error) {
	envRaw := c.Environment
	if envRaw == "" {
		envRaw = uc.sriCfg.Environment
	}
	env, ok := sri.ParseEnvironment(envRaw)
	if !ok {
		return "", "", domain.NewValidationError("environment", "ambiente %q inválido", envRaw)
	}
	emission := c.EmissionType
	if emission == "" {
		emission = uc.sriCfg.EmissionType
	}
	if !sri.IsEmissionType(emission) {
		return "", "", domain.NewValidationError("emission_type", "tipo de emisión %q inválido", emission)
	}
	return env, emission, nil
}

func validateIssue(req dto.IssueAccessKeyRequest) error {
	var errs []error
	if _, ok := sri.DocumentTypes[req.DocumentType]; !ok {
		errs = append(errs, domain.NewValidationError("document_type", "tipo de comprobante %q no soportado", req.DocumentType))
	}
	if err := validateCode3("establishment", req.Establishment); err != nil {
		errs = append(errs, err)
	}
	if err := validateCode3("emission_point", req.EmissionPoint); err != nil {
		errs = append(errs, err)
	}
	if req.NumericCode != "" {
		if len(req.NumericCode) != 8 {
			errs = append(errs, domain.NewValidationError("numeric_code", "debe tener 8 dígitos"))
		} else if _, err := strconv.ParseUint(req.NumericCode, 10, 32); err != nil {
			errs = append(errs, domain.NewValidationError("numeric_code", "solo admite dígitos"))
		}
	}
	return errors.Join(errs...)
}

// validateCode3 establecimiento y punto de emisión: exactamente 3 dígitos, distinto de 000.
func validateCode3(field, v string) error {
	if len(v) != 3 {
		return domain.NewValidationError(field, "debe tener 3 dígitos")
	}
	for i := 0; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return domain.NewValidationError(field, "solo admite dígitos")
		}
	}
	if v == "000" {
		return domain.NewValidationError(field, "no puede ser 000")
	}
	return nil
}

func issuedDTO(d *entity.ElectronicDocument) *dto.IssuedDocumentDTO {
	return &dto.IssuedDocumentDTO{
		ID:           d.ID,
		AccessKey:    d.AccessKey,
		DocumentType: d.DocumentType,
		Series:       d.Series,
		Sequential:   d.Sequential,
		IssueDate:    d.IssueDate.Format(dateLayout),
		Environment:  d.Environment,
		EmissionType: d.EmissionType,
		Status:       d.Status,
		CreatedAt:    d.CreatedAt,
	}
}

func emissionPointDTO(p *entity.EmissionPoint) dto.EmissionPointDTO {
	return dto.EmissionPointDTO{
		ID:             p.ID,
		Establishment:  p.Establishment,
		Code:           p.Code,
		Series:         p.Series(),
		DocumentType:   p.DocumentType,
		NextSequential: p.NextSequential,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
	}
}
