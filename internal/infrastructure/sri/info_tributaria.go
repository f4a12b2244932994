// Package sri construye los fragmentos XML del esquema offline del SRI que dependen de la clave
// de acceso. El comprobante completo, la firma XAdES-BES y el envío los resuelve otro servicio.
package sri

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/beevik/etree"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/contable-api/internal/application/documents"
	"github.com/jhoicas/contable-api/internal/domain/entity"
)

var _ documents.InfoTributariaBuilder = (*InfoTributariaBuilder)(nil)

// Longitudes máximas de la ficha técnica.
const (
	maxRazonSocial = 300
	maxDirMatriz   = 300
)

// InfoTributariaBuilder genera el bloque <infoTributaria> con etree.
type InfoTributariaBuilder struct {
	// Indent espacios de sangría; 0 = XML compacto.
	Indent int
}

// NewInfoTributariaBuilder crea el builder con sangría de 2 espacios.
func NewInfoTributariaBuilder() *InfoTributariaBuilder {
	return &InfoTributariaBuilder{Indent: 2}
}

// BuildInfoTributaria serializa los datos del emisor y la clave de acceso en el orden del XSD.
func (b *InfoTributariaBuilder) BuildInfoTributaria(company *entity.Company, doc *entity.ElectronicDocument) ([]byte, error) {
	if company == nil || doc == nil {
		return nil, fmt.Errorf("sri: faltan empresa o comprobante")
	}
	if len(doc.Series) != 6 {
		return nil, fmt.Errorf("sri: serie %q debe tener 6 dígitos", doc.Series)
	}

	xmlDoc := etree.NewDocument()
	info := xmlDoc.CreateElement("infoTributaria")
	add := func(tag, value string) {
		info.CreateElement(tag).SetText(value)
	}

	add("ambiente", doc.Environment)
	add("tipoEmision", doc.EmissionType)
	add("razonSocial", Sanitize(company.LegalName, maxRazonSocial))
	if company.TradeName != "" {
		add("nombreComercial", Sanitize(company.TradeName, maxRazonSocial))
	}
	add("ruc", company.RUC)
	add("claveAcceso", doc.AccessKey)
	add("codDoc", doc.DocumentType)
	add("estab", doc.Series[:3])
	add("ptoEmi", doc.Series[3:])
	add("secuencial", doc.Sequential)
	add("dirMatriz", Sanitize(company.Address, maxDirMatriz))

	if b.Indent > 0 {
		xmlDoc.Indent(b.Indent)
	}
	var out bytes.Buffer
	if _, err := xmlDoc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("sri: serializar infoTributaria: %w", err)
	}
	return bytes.TrimSpace(out.Bytes()), nil
}

// Sanitize elimina tildes y diéresis (el SRI rechaza algunos caracteres fuera de Latin-1 en
// razón social y dirección), conserva la Ñ, colapsa espacios y recorta a max runas.
func Sanitize(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")

	// Proteger la ñ antes de descomponer: NFD la separaría en n + tilde combinante.
	s = strings.NewReplacer("ñ", "\x00", "Ñ", "\x01").Replace(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.NewReplacer("\x00", "ñ", "\x01", "Ñ").Replace(folded)

	if r := []rune(folded); len(r) > max {
		folded = string(r[:max])
	}
	return folded
}
