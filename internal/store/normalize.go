package store

import (
	"fmt"
	"strings"
)

// fieldByHeader maps a lower-cased spreadsheet header label to the canonical
// document field it feeds. Labels outside this table pass through unchanged.
var fieldByHeader = map[string]string{
	"status":                   "status",
	"código":                   "codigo",
	"tipo":                     "tipo",
	"número":                   "numero",
	"título":                   "titulo",
	"epígrafe":                 "epigrafe",
	"id":                       "id",
	"assunto":                  "assunto",
	"orgão ou unidade":         "orgao",
	"setor responsável":        "setorResponsavel",
	"data (documento)":         "dataDocumento",
	"link de acesso":           "linkAcesso",
	"nível de acesso":          "nivelAcesso",
	"local do arquivo":         "localArquivo",
	"observação":               "observacao",
	"tipo (sigla)":             "tipoSigla",
	"codsiorg":                 "codSIORG",
	"orgão ou unidade (sigla)": "orgaoSigla",
}

// FieldFor returns the canonical field name for a header label. Unknown
// labels are returned verbatim with known=false; that is the escape hatch
// for columns the portal does not model, not an error.
func FieldFor(header string) (field string, known bool) {
	if mapped, ok := fieldByHeader[strings.ToLower(header)]; ok {
		return mapped, true
	}
	return header, false
}

// NormalizeRow converts one data row into a Document. Missing trailing cells
// degrade to empty strings, a blank id is replaced by a synthetic row-index
// token, and SetoresArray is derived from the responsible-sector column. It
// never fails: malformed input produces empty fields, not errors.
func NormalizeRow(headers, row []string, index int) Document {
	var doc Document
	for col, header := range headers {
		value := ""
		if col < len(row) {
			value = row[col]
		}
		assignField(&doc, header, value)
	}
	if doc.ID == "" {
		doc.ID = fmt.Sprintf("sheet_%d", index+1)
	}
	doc.SetoresArray = SplitSetores(doc.SetorResponsavel)
	return doc
}

// NormalizeRows applies NormalizeRow to every data row, preserving order.
func NormalizeRows(headers []string, rows [][]string) []Document {
	documents := make([]Document, 0, len(rows))
	for index, row := range rows {
		documents = append(documents, NormalizeRow(headers, row, index))
	}
	return documents
}

// SplitSetores breaks a delimited responsible-sector string into individual
// sector names: split on comma or semicolon, trim, drop empties.
func SplitSetores(raw string) []string {
	setores := []string{}
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';'
	}) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			setores = append(setores, trimmed)
		}
	}
	return setores
}

func assignField(doc *Document, header, value string) {
	field, known := FieldFor(header)
	if !known {
		if doc.Extra == nil {
			doc.Extra = make(map[string]string)
		}
		doc.Extra[field] = value
		return
	}
	switch field {
	case "id":
		doc.ID = value
	case "status":
		doc.Status = value
	case "codigo":
		doc.Codigo = value
	case "tipo":
		doc.Tipo = value
	case "numero":
		doc.Numero = value
	case "titulo":
		doc.Titulo = value
	case "epigrafe":
		doc.Epigrafe = value
	case "assunto":
		doc.Assunto = value
	case "orgao":
		doc.Orgao = value
	case "setorResponsavel":
		doc.SetorResponsavel = value
	case "dataDocumento":
		doc.DataDocumento = value
	case "linkAcesso":
		doc.LinkAcesso = value
	case "nivelAcesso":
		doc.NivelAcesso = value
	case "localArquivo":
		doc.LocalArquivo = value
	case "observacao":
		doc.Observacao = value
	case "tipoSigla":
		doc.TipoSigla = value
	case "codSIORG":
		doc.CodSIORG = value
	case "orgaoSigla":
		doc.OrgaoSigla = value
	}
}
