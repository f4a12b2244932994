package sri

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contable-api/internal/domain/entity"
)

func TestBuildInfoTributaria_OrdenYCampos(t *testing.T) {
	company := &entity.Company{
		LegalName: "Comercializadora  Andina   Núñez S.A.",
		TradeName: "Andina",
		RUC:       "0993385366001",
		Address:   "Av. 9 de Octubre y Malecón, Guayaquil",
	}
	doc := &entity.ElectronicDocument{
		Environment:  "2",
		EmissionType: "1",
		AccessKey:    "1004202401099338536600120010010000000501234567811",
		DocumentType: "01",
		Series:       "001002",
		Sequential:   "000000050",
	}

	out, err := NewInfoTributariaBuilder().BuildInfoTributaria(company, doc)
	require.NoError(t, err)

	parsed := etree.NewDocument()
	require.NoError(t, parsed.ReadFromBytes(out))
	root := parsed.Root()
	require.NotNil(t, root)
	assert.Equal(t, "infoTributaria", root.Tag)

	var tags []string
	for _, child := range root.ChildElements() {
		tags = append(tags, child.Tag)
	}
	assert.Equal(t, []string{
		"ambiente", "tipoEmision", "razonSocial", "nombreComercial", "ruc", "claveAcceso",
		"codDoc", "estab", "ptoEmi", "secuencial", "dirMatriz",
	}, tags)

	assert.Equal(t, "Comercializadora Andina Nuñez S.A.", root.SelectElement("razonSocial").Text())
	assert.Equal(t, "001", root.SelectElement("estab").Text())
	assert.Equal(t, "002", root.SelectElement("ptoEmi").Text())
	assert.Equal(t, doc.AccessKey, root.SelectElement("claveAcceso").Text())
	assert.Equal(t, "Av. 9 de Octubre y Malecon, Guayaquil", root.SelectElement("dirMatriz").Text())
}

func TestBuildInfoTributaria_SinNombreComercial(t *testing.T) {
	out, err := (&InfoTributariaBuilder{}).BuildInfoTributaria(
		&entity.Company{LegalName: "X", RUC: "0993385366001"},
		&entity.ElectronicDocument{Series: "001001", Environment: "1", EmissionType: "1"},
	)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "nombreComercial")
	assert.NotContains(t, string(out), "\n", "sin sangría el XML es compacto")
}

func TestBuildInfoTributaria_SerieInvalida(t *testing.T) {
	_, err := NewInfoTributariaBuilder().BuildInfoTributaria(&entity.Company{}, &entity.ElectronicDocument{Series: "0010"})
	assert.Error(t, err)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "Jose Maria Ñandu", Sanitize("  José  María Ñandú ", 300))
	assert.Equal(t, "Pinguino", Sanitize("Pingüino", 300))
	assert.Equal(t, "Añ", Sanitize("Añoranza", 2))
}
