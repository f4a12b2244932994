package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/contable-api/internal/application/dto"
)

// DocumentsService es lo que el handler necesita del caso de uso de comprobantes.
type DocumentsService interface {
	Issue(ctx context.Context, companyID, userID string, req dto.IssueAccessKeyRequest) (*dto.IssuedDocumentDTO, error)
	Verify(req dto.VerifyAccessKeyRequest) *dto.AccessKeyVerificationDTO
	GetByAccessKey(ctx context.Context, companyID, key string) (*dto.IssuedDocumentDTO, error)
	ListEmissionPoints(ctx context.Context, companyID string) ([]dto.EmissionPointDTO, error)
	CreateEmissionPoint(ctx context.Context, companyID string, req dto.CreateEmissionPointRequest) (*dto.EmissionPointDTO, error)
}

// DocumentsHandler numeración de comprobantes y claves de acceso SRI.
type DocumentsHandler struct {
	uc DocumentsService
}

// NewDocumentsHandler construye el handler.
func NewDocumentsHandler(uc DocumentsService) *DocumentsHandler {
	return &DocumentsHandler{uc: uc}
}

// IssueAccessKey godoc
// @Summary      Reserva el siguiente secuencial y genera la clave de acceso
// @Description  Devuelve también el bloque <infoTributaria> listo para el XML del comprobante.
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IssueAccessKeyRequest  true  "Datos del comprobante"
// @Success      201  {object}  dto.IssuedDocumentDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/documents/access-keys [post]
func (h *DocumentsHandler) IssueAccessKey(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.IssueAccessKeyRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Issue(c.Context(), companyID, GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// VerifyAccessKey godoc
// @Summary      Verifica el dígito verificador de una clave de acceso
// @Description  Una clave inválida responde 200 con valid=false y el motivo.
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyAccessKeyRequest  true  "Clave a verificar"
// @Success      200  {object}  dto.AccessKeyVerificationDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/documents/access-keys/verify [post]
func (h *DocumentsHandler) VerifyAccessKey(c *fiber.Ctx) error {
	var in dto.VerifyAccessKeyRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	return c.JSON(h.uc.Verify(in))
}

// GetByAccessKey godoc
// @Summary      Consulta un comprobante por su clave de acceso
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        key  path  string  true  "Clave de acceso (49 dígitos)"
// @Success      200  {object}  dto.IssuedDocumentDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/access-keys/{key} [get]
func (h *DocumentsHandler) GetByAccessKey(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetByAccessKey(c.Context(), companyID, c.Params("key"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListEmissionPoints godoc
// @Summary      Lista los puntos de emisión de la empresa
// @Tags         emission-points
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.EmissionPointDTO
// @Router       /api/emission-points [get]
func (h *DocumentsHandler) ListEmissionPoints(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.ListEmissionPoints(c.Context(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateEmissionPoint godoc
// @Summary      Registra un punto de emisión (solo admin)
// @Tags         emission-points
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmissionPointRequest  true  "Serie y tipo de comprobante"
// @Success      201  {object}  dto.EmissionPointDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/emission-points [post]
func (h *DocumentsHandler) CreateEmissionPoint(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.CreateEmissionPointRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateEmissionPoint(c.Context(), companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
