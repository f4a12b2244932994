package documents

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contable-api/internal/application/dto"
	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/repository"
	"github.com/jhoicas/contable-api/pkg/config"
	"github.com/jhoicas/contable-api/pkg/sri"
)

// ── fakes ─────────────────────────────────────────────────────────────────────

type fakeCompanies struct{ byID map[string]*entity.Company }

func (f *fakeCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return f.byID[id], nil
}

// store guarda puntos y documentos; fakeTx la protege con un mutex, como el FOR UPDATE de Postgres.
type store struct {
	mu     sync.Mutex
	points map[string]*entity.EmissionPoint
	docs   map[string]*entity.ElectronicDocument
	failOn string // si el documento a crear tiene esta serie, Create falla
}

func newStore() *store {
	return &store{points: map[string]*entity.EmissionPoint{}, docs: map[string]*entity.ElectronicDocument{}}
}

func (s *store) Create(_ context.Context, p *entity.EmissionPoint) error {
	for _, e := range s.points {
		if e.CompanyID == p.CompanyID && e.Series() == p.Series() && e.DocumentType == p.DocumentType {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	s.points[p.ID] = &cp
	return nil
}

func (s *store) ListByCompany(_ context.Context, companyID string) ([]*entity.EmissionPoint, error) {
	var out []*entity.EmissionPoint
	for _, p := range s.points {
		if p.CompanyID == companyID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *store) GetForUpdate(_ context.Context, companyID, establishment, code, docType string) (*entity.EmissionPoint, error) {
	for _, p := range s.points {
		if p.CompanyID == companyID && p.Establishment == establishment && p.Code == code &&
			p.DocumentType == docType && p.IsActive {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *store) UpdateNextSequential(_ context.Context, id string, next int64) error {
	s.points[id].NextSequential = next
	return nil
}

type docRepo struct{ s *store }

func (r docRepo) Create(_ context.Context, d *entity.ElectronicDocument) error {
	if d.Series == r.s.failOn {
		return fmt.Errorf("disco lleno")
	}
	cp := *d
	r.s.docs[d.AccessKey] = &cp
	return nil
}

func (r docRepo) GetByAccessKey(_ context.Context, companyID, key string) (*entity.ElectronicDocument, error) {
	d, ok := r.s.docs[key]
	if !ok || d.CompanyID != companyID {
		return nil, nil
	}
	return d, nil
}

// fakeTx serializa las transacciones y restaura el estado si fn falla.
type fakeTx struct{ s *store }

func (t fakeTx) RunIssue(_ context.Context, fn func(repository.EmissionPointRepository, repository.DocumentRepository) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	snapshot := map[string]int64{}
	for id, p := range t.s.points {
		snapshot[id] = p.NextSequential
	}
	docs := map[string]*entity.ElectronicDocument{}
	for k, v := range t.s.docs {
		docs[k] = v
	}
	if err := fn(t.s, docRepo{t.s}); err != nil {
		for id, next := range snapshot {
			t.s.points[id].NextSequential = next
		}
		t.s.docs = docs
		return err
	}
	return nil
}

type fakeXML struct{}

func (fakeXML) BuildInfoTributaria(_ *entity.Company, d *entity.ElectronicDocument) ([]byte, error) {
	return []byte("<infoTributaria><claveAcceso>" + d.AccessKey + "</claveAcceso></infoTributaria>"), nil
}

// ── fixture ───────────────────────────────────────────────────────────────────

const companyID = "c1"

func newUseCase(t *testing.T) (*UseCase, *store) {
	t.Helper()
	s := newStore()
	s.points["p1"] = &entity.EmissionPoint{
		ID: "p1", CompanyID: companyID, Establishment: "001", Code: "001",
		DocumentType: sri.DocTypeInvoice, NextSequential: 50, IsActive: true,
	}
	companies := &fakeCompanies{byID: map[string]*entity.Company{
		companyID: {ID: companyID, LegalName: "ACME S.A.", RUC: "0993385366001", Environment: "2", EmissionType: "1"},
		"c2":      {ID: "c2", LegalName: "Sin ambiente", RUC: "0993385366001"},
		"c3":      {ID: "c3", LegalName: "RUC roto", RUC: "0993385366000"},
	}}
	uc := NewUseCase(companies, s, docRepo{s}, fakeTx{s}, fakeXML{},
		config.SRIConfig{Environment: "1", EmissionType: "1"}, time.UTC, nil)
	uc.now = func() time.Time { return time.Date(2024, 4, 10, 9, 30, 0, 0, time.UTC) }
	uc.numericCode = func() (string, error) { return "12345678", nil }
	return uc, s
}

func issueReq() dto.IssueAccessKeyRequest {
	return dto.IssueAccessKeyRequest{DocumentType: "01", Establishment: "001", EmissionPoint: "001"}
}

// ── Issue ─────────────────────────────────────────────────────────────────────

func TestIssue_ClaveYSecuencial(t *testing.T) {
	uc, s := newUseCase(t)

	out, err := uc.Issue(context.Background(), companyID, "u1", issueReq())
	require.NoError(t, err)

	assert.Equal(t, "1004202401099338536600120010010000000501234567811", out.AccessKey)
	assert.Equal(t, "000000050", out.Sequential)
	assert.Equal(t, "001001", out.Series)
	assert.Equal(t, "2024-04-10", out.IssueDate)
	assert.Equal(t, entity.DocumentStatusGenerated, out.Status)
	assert.Contains(t, out.InfoTributaria, out.AccessKey)
	assert.EqualValues(t, 51, s.points["p1"].NextSequential)
	require.Contains(t, s.docs, out.AccessKey)
	assert.Equal(t, "u1", s.docs[out.AccessKey].CreatedBy)
}

func TestIssue_SecuencialesConsecutivos(t *testing.T) {
	uc, _ := newUseCase(t)
	first, err := uc.Issue(context.Background(), companyID, "u1", issueReq())
	require.NoError(t, err)
	second, err := uc.Issue(context.Background(), companyID, "u1", issueReq())
	require.NoError(t, err)

	assert.Equal(t, "000000050", first.Sequential)
	assert.Equal(t, "000000051", second.Sequential)
	assert.NotEqual(t, first.AccessKey, second.AccessKey)
}

func TestIssue_ConcurrenteSinDuplicados(t *testing.T) {
	uc, s := newUseCase(t)
	const n = 20

	var wg sync.WaitGroup
	keys := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := uc.Issue(context.Background(), companyID, "u1", issueReq())
			if assert.NoError(t, err) {
				keys <- out.Sequential
			}
		}()
	}
	wg.Wait()
	close(keys)

	seen := map[string]bool{}
	for k := range keys {
		assert.False(t, seen[k], "secuencial repetido %s", k)
		seen[k] = true
	}
	assert.Len(t, seen, n)
	assert.EqualValues(t, 50+n, s.points["p1"].NextSequential)
}

func TestIssue_AmbienteDeConfiguracion(t *testing.T) {
	uc, s := newUseCase(t)
	s.points["p2"] = &entity.EmissionPoint{
		ID: "p2", CompanyID: "c2", Establishment: "001", Code: "001",
		DocumentType: sri.DocTypeInvoice, NextSequential: 50, IsActive: true,
	}
	out, err := uc.Issue(context.Background(), "c2", "u1", issueReq())
	require.NoError(t, err)
	assert.Equal(t, "1", out.Environment, "la empresa no define ambiente: pruebas por configuración")
	assert.Equal(t, "1", out.AccessKey[23:24])
	assert.NoError(t, sri.VerifyAccessKey(out.AccessKey))
}

func TestIssue_SecuencialAgotado(t *testing.T) {
	uc, s := newUseCase(t)
	s.points["p1"].NextSequential = MaxSequential + 1

	_, err := uc.Issue(context.Background(), companyID, "u1", issueReq())
	assert.ErrorIs(t, err, domain.ErrSequenceExhausted)
	assert.Empty(t, s.docs)
}

func TestIssue_UltimoSecuencialDisponible(t *testing.T) {
	uc, s := newUseCase(t)
	s.points["p1"].NextSequential = MaxSequential

	out, err := uc.Issue(context.Background(), companyID, "u1", issueReq())
	require.NoError(t, err)
	assert.Equal(t, "999999999", out.Sequential)

	_, err = uc.Issue(context.Background(), companyID, "u1", issueReq())
	assert.ErrorIs(t, err, domain.ErrSequenceExhausted)
}

func TestIssue_FalloAlGuardarNoConsumeSecuencial(t *testing.T) {
	uc, s := newUseCase(t)
	s.failOn = "001001"

	_, err := uc.Issue(context.Background(), companyID, "u1", issueReq())
	require.Error(t, err)
	assert.EqualValues(t, 50, s.points["p1"].NextSequential)
}

func TestIssue_PuntoInexistente(t *testing.T) {
	uc, _ := newUseCase(t)
	req := issueReq()
	req.EmissionPoint = "002"
	_, err := uc.Issue(context.Background(), companyID, "u1", req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIssue_Validaciones(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *dto.IssueAccessKeyRequest)
	}{
		{"tipo desconocido", func(r *dto.IssueAccessKeyRequest) { r.DocumentType = "99" }},
		{"establecimiento corto", func(r *dto.IssueAccessKeyRequest) { r.Establishment = "1" }},
		{"punto 000", func(r *dto.IssueAccessKeyRequest) { r.EmissionPoint = "000" }},
		{"punto con signo", func(r *dto.IssueAccessKeyRequest) { r.EmissionPoint = "+01" }},
		{"código numérico corto", func(r *dto.IssueAccessKeyRequest) { r.NumericCode = "123" }},
		{"código numérico con letras", func(r *dto.IssueAccessKeyRequest) { r.NumericCode = "1234567A" }},
		{"fecha inválida", func(r *dto.IssueAccessKeyRequest) { r.IssueDate = "10/04/2024" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, s := newUseCase(t)
			req := issueReq()
			tt.mutate(&req)
			_, err := uc.Issue(context.Background(), companyID, "u1", req)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.EqualValues(t, 50, s.points["p1"].NextSequential)
		})
	}
}

func TestIssue_RUCInvalido(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.Issue(context.Background(), "c3", "u1", issueReq())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestIssue_EmpresaInexistente(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.Issue(context.Background(), "nadie", "u1", issueReq())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Verify / GetByAccessKey ───────────────────────────────────────────────────

func TestVerify(t *testing.T) {
	uc, _ := newUseCase(t)

	ok := uc.Verify(dto.VerifyAccessKeyRequest{AccessKey: "1004202401099338536600120010010000000501234567811"})
	assert.True(t, ok.Valid)
	require.NotNil(t, ok.Parts)
	assert.Equal(t, "000000050", ok.Parts.Sequential)

	bad := uc.Verify(dto.VerifyAccessKeyRequest{AccessKey: "1004202401099338536600120010010000000501234567812"})
	assert.False(t, bad.Valid)
	assert.Nil(t, bad.Parts)
	assert.NotEmpty(t, bad.Message)
}

func TestGetByAccessKey(t *testing.T) {
	uc, _ := newUseCase(t)
	issued, err := uc.Issue(context.Background(), companyID, "u1", issueReq())
	require.NoError(t, err)

	got, err := uc.GetByAccessKey(context.Background(), companyID, issued.AccessKey)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, got.ID)

	_, err = uc.GetByAccessKey(context.Background(), "c2", issued.AccessKey)
	assert.ErrorIs(t, err, domain.ErrNotFound, "no se ven comprobantes de otra empresa")

	_, err = uc.GetByAccessKey(context.Background(), companyID, "123")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ── Puntos de emisión ─────────────────────────────────────────────────────────

func TestCreateEmissionPoint(t *testing.T) {
	uc, _ := newUseCase(t)
	out, err := uc.CreateEmissionPoint(context.Background(), companyID, dto.CreateEmissionPointRequest{
		Establishment: "002", Code: "001", DocumentType: "04",
	})
	require.NoError(t, err)
	assert.Equal(t, "002001", out.Series)
	assert.EqualValues(t, 1, out.NextSequential)

	_, err = uc.CreateEmissionPoint(context.Background(), companyID, dto.CreateEmissionPointRequest{
		Establishment: "002", Code: "001", DocumentType: "04",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.CreateEmissionPoint(context.Background(), companyID, dto.CreateEmissionPointRequest{
		Establishment: "02", Code: "001", DocumentType: "02", NextSequential: MaxSequential + 1,
	})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "establishment")
	assert.Contains(t, err.Error(), "document_type")
	assert.Contains(t, err.Error(), "next_sequential")

	list, err := uc.ListEmissionPoints(context.Background(), companyID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestRandomNumericCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := RandomNumericCode()
		require.NoError(t, err)
		assert.Len(t, code, 8)
		assert.Regexp(t, `^\d{8}$`, code)
	}
}
