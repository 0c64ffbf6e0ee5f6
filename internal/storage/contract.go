package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Outcome is the checklist result of a single item.
type Outcome int

const (
	OutcomeUnset Outcome = iota
	OutcomeOK
	OutcomeNotOK
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotOK:
		return "not_ok"
	default:
		return "unset"
	}
}

// ParseOutcome accepts the seed/config spelling of an outcome.
func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case "", "unset":
		return OutcomeUnset, nil
	case "ok", "sim":
		return OutcomeOK, nil
	case "not_ok", "nao", "não":
		return OutcomeNotOK, nil
	}
	return OutcomeUnset, fmt.Errorf("unknown outcome %q", s)
}

// OutcomeFromBool maps the SIM/NÃO answer of the technician.
func OutcomeFromBool(ok bool) Outcome {
	if ok {
		return OutcomeOK
	}
	return OutcomeNotOK
}

// MarshalJSON keeps the wire format of the mobile client: null, true or false.
func (o Outcome) MarshalJSON() ([]byte, error) {
	switch o {
	case OutcomeOK:
		return []byte("true"), nil
	case OutcomeNotOK:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

func (o *Outcome) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "null":
		*o = OutcomeUnset
	case "true":
		*o = OutcomeOK
	case "false":
		*o = OutcomeNotOK
	default:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("outcome: %w", err)
		}
		parsed, err := ParseOutcome(s)
		if err != nil {
			return err
		}
		*o = parsed
	}
	return nil
}

type Address struct {
	Street       string `json:"rua"`
	Neighborhood string `json:"bairro"`
	City         string `json:"cidade"`
	State        string `json:"uf"`
	PostalCode   string `json:"cep"`
}

type ContractItem struct {
	Code          string  `json:"cod"`
	Area          string  `json:"ambiente"`
	VerifiedItems string  `json:"itens_verificados"`
	Outcome       Outcome `json:"itens_ok"`
	Protocol      string  `json:"protocolo_gerado,omitempty"`
}

type PendingItem struct {
	Code        string `json:"cod"`
	Area        string `json:"ambiente"`
	Description string `json:"descricao"`
	Protocol    string `json:"protocolo_gerado,omitempty"`
}

// Signature holds the client's acceptance. Captured is set only when the
// image came from a real signing session; seeded sample images keep it false
// and are never drawn on the report.
type Signature struct {
	SignedAt   string `json:"data_hora_assinatura"`
	SignerName string `json:"nome_completo_assinatura"`
	SignerCPF  string `json:"cpf_assinatura"`
	Image      []byte `json:"assinatura,omitempty"`
	Captured   bool   `json:"capturada"`
}

type Payment struct {
	FirstInstallment  float64 `json:"primeira_parcela"`
	SecondInstallment float64 `json:"segunda_parcela"`
	Total             float64 `json:"valor_total"`
}

type Contract struct {
	ID                  string         `json:"id"`
	ContractDate        string         `json:"data_contrato"`
	AssemblyStart       string         `json:"inicio_montagem"`
	AssemblyEnd         string         `json:"final_montagem"`
	ClientName          string         `json:"nome_contrato"`
	Number              string         `json:"numero_contrato"`
	Technician          string         `json:"tecnico_responsavel"`
	DeliveryResponsible string         `json:"responsavel_entrega_montagem"`
	Phone               string         `json:"telefone"`
	Address             Address        `json:"endereco_entrega"`
	Items               []ContractItem `json:"itens"`
	Declaration         string         `json:"declaracao"`
	Signature           *Signature     `json:"assinatura,omitempty"`
	DocumentPhotos      []string       `json:"document_photo_urls,omitempty"`
	GeneratedAt         string         `json:"gerado_em"`
	PageInfo            string         `json:"pagina_info"`
	PendingItems        []PendingItem  `json:"itens_pendentes"`
	Payment             *Payment       `json:"pagamento,omitempty"`
}

// Finalized reports whether the client already signed the contract.
func (c *Contract) Finalized() bool {
	return c.Signature != nil && len(c.Signature.Image) > 0
}

func (c *Contract) HasGenuineSignature() bool {
	return c.Finalized() && c.Signature.Captured
}

// Item returns the index of the item with the given code, or -1.
func (c *Contract) Item(code string) int {
	for i := range c.Items {
		if c.Items[i].Code == code {
			return i
		}
	}
	return -1
}

// AllItemsMarked is true when every item was answered SIM or NÃO.
func (c *Contract) AllItemsMarked() bool {
	for _, it := range c.Items {
		if it.Outcome == OutcomeUnset {
			return false
		}
	}
	return true
}

// Validate checks the invariants a stored contract must hold.
func (c *Contract) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("contract without id")
	}
	seen := make(map[string]struct{}, len(c.Items))
	for _, it := range c.Items {
		if _, ok := seen[it.Code]; ok {
			return fmt.Errorf("contract %s: %w: %s", c.ID, ErrDuplicateItemCode, it.Code)
		}
		seen[it.Code] = struct{}{}
	}
	return nil
}

// BuildPendingItems projects the items that are not OK into the pending list.
func (c *Contract) BuildPendingItems() []PendingItem {
	pending := make([]PendingItem, 0)
	for _, it := range c.Items {
		if it.Outcome == OutcomeOK {
			continue
		}
		pending = append(pending, PendingItem{
			Code:        it.Code,
			Area:        it.Area,
			Description: it.VerifiedItems,
			Protocol:    it.Protocol,
		})
	}
	return pending
}

// Clone returns a deep copy so callers can mutate it freely.
func (c Contract) Clone() Contract {
	out := c
	if c.Items != nil {
		out.Items = append([]ContractItem(nil), c.Items...)
	}
	if c.PendingItems != nil {
		out.PendingItems = append(make([]PendingItem, 0, len(c.PendingItems)), c.PendingItems...)
	}
	if c.DocumentPhotos != nil {
		out.DocumentPhotos = append([]string(nil), c.DocumentPhotos...)
	}
	if c.Signature != nil {
		sig := *c.Signature
		sig.Image = append([]byte(nil), c.Signature.Image...)
		out.Signature = &sig
	}
	if c.Payment != nil {
		p := *c.Payment
		out.Payment = &p
	}
	return out
}
