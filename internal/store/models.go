package store

import "encoding/json"

// Document is one row of the source spreadsheet, normalized to the portal's
// canonical field names. Every field defaults to the empty string when the
// source cell is blank or absent.
type Document struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	Codigo           string `json:"codigo"`
	Tipo             string `json:"tipo"`
	Numero           string `json:"numero"`
	Titulo           string `json:"titulo"`
	Epigrafe         string `json:"epigrafe"`
	Assunto          string `json:"assunto"`
	Orgao            string `json:"orgao"`
	SetorResponsavel string `json:"setorResponsavel"`
	DataDocumento    string `json:"dataDocumento"`
	LinkAcesso       string `json:"linkAcesso"`
	NivelAcesso      string `json:"nivelAcesso"`
	LocalArquivo     string `json:"localArquivo"`
	Observacao       string `json:"observacao"`
	TipoSigla        string `json:"tipoSigla"`
	CodSIORG         string `json:"codSIORG"`
	OrgaoSigla       string `json:"orgaoSigla"`

	// SetoresArray is derived from SetorResponsavel at normalization time and
	// never mutated independently.
	SetoresArray []string `json:"setoresArray"`

	// Extra holds columns whose header label has no canonical mapping. They
	// are serialized at the top level under their literal header name.
	Extra map[string]string `json:"-"`
}

// MarshalJSON flattens Extra columns into the top-level object so unmapped
// spreadsheet columns survive the trip to the client unchanged. Canonical
// fields win on name collision.
func (d Document) MarshalJSON() ([]byte, error) {
	type alias Document
	base, err := json.Marshal(alias(d))
	if err != nil {
		return nil, err
	}
	if len(d.Extra) == 0 {
		return base, nil
	}

	merged := make(map[string]json.RawMessage, len(d.Extra)+24)
	for key, value := range d.Extra {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		merged[key] = encoded
	}
	var canonical map[string]json.RawMessage
	if err := json.Unmarshal(base, &canonical); err != nil {
		return nil, err
	}
	for key, value := range canonical {
		merged[key] = value
	}
	return json.Marshal(merged)
}
