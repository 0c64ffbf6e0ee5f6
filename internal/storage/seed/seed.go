// Package seed holds the sample contracts used when no backend is configured.
package seed

import (
	_ "embed"
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"renza-entrega/internal/storage"
)

//go:embed contracts.yaml
var defaultContracts []byte

type file struct {
	Contracts []contract `yaml:"contracts"`
}

type contract struct {
	ID                  string    `yaml:"id"`
	ContractDate        string    `yaml:"contract_date"`
	AssemblyStart       string    `yaml:"assembly_start"`
	AssemblyEnd         string    `yaml:"assembly_end"`
	ClientName          string    `yaml:"client_name"`
	Number              string    `yaml:"number"`
	Technician          string    `yaml:"technician"`
	DeliveryResponsible string    `yaml:"delivery_responsible"`
	Phone               string    `yaml:"phone"`
	Address             address   `yaml:"address"`
	Items               []item    `yaml:"items"`
	Declaration         string    `yaml:"declaration"`
	Signature           *sig      `yaml:"signature"`
	GeneratedAt         string    `yaml:"generated_at"`
	PageInfo            string    `yaml:"page_info"`
	PendingItems        []pending `yaml:"pending_items"`
	Payment             *payment  `yaml:"payment"`
}

type address struct {
	Street       string `yaml:"street"`
	Neighborhood string `yaml:"neighborhood"`
	City         string `yaml:"city"`
	State        string `yaml:"state"`
	PostalCode   string `yaml:"postal_code"`
}

type item struct {
	Code          string `yaml:"code"`
	Area          string `yaml:"area"`
	VerifiedItems string `yaml:"verified_items"`
	Outcome       string `yaml:"outcome"`
	Protocol      string `yaml:"protocol"`
}

type sig struct {
	SignedAt    string `yaml:"signed_at"`
	SignerName  string `yaml:"signer_name"`
	SignerCPF   string `yaml:"signer_cpf"`
	ImageBase64 string `yaml:"image_base64"`
	Captured    bool   `yaml:"captured"`
}

type pending struct {
	Code        string `yaml:"code"`
	Area        string `yaml:"area"`
	Description string `yaml:"description"`
	Protocol    string `yaml:"protocol"`
}

type payment struct {
	FirstInstallment  float64 `yaml:"first_installment"`
	SecondInstallment float64 `yaml:"second_installment"`
	Total             float64 `yaml:"total"`
}

// Contracts returns the embedded sample contracts.
func Contracts() ([]storage.Contract, error) {
	return Parse(defaultContracts)
}

// Load reads contracts from a YAML file, falling back to the embedded set
// when path is empty.
func Load(path string) ([]storage.Contract, error) {
	const op = "storage.seed.Load"

	if path == "" {
		return Contracts()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return Parse(data)
}

func Parse(data []byte) ([]storage.Contract, error) {
	const op = "storage.seed.Parse"

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]storage.Contract, 0, len(f.Contracts))
	for _, c := range f.Contracts {
		converted, err := c.toStorage()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := converted.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, converted)
	}

	return out, nil
}

func (c contract) toStorage() (storage.Contract, error) {
	res := storage.Contract{
		ID:                  c.ID,
		ContractDate:        c.ContractDate,
		AssemblyStart:       c.AssemblyStart,
		AssemblyEnd:         c.AssemblyEnd,
		ClientName:          c.ClientName,
		Number:              c.Number,
		Technician:          c.Technician,
		DeliveryResponsible: c.DeliveryResponsible,
		Phone:               c.Phone,
		Address: storage.Address{
			Street:       c.Address.Street,
			Neighborhood: c.Address.Neighborhood,
			City:         c.Address.City,
			State:        c.Address.State,
			PostalCode:   c.Address.PostalCode,
		},
		Declaration: c.Declaration,
		GeneratedAt: c.GeneratedAt,
		PageInfo:    c.PageInfo,
	}

	for _, it := range c.Items {
		outcome, err := storage.ParseOutcome(it.Outcome)
		if err != nil {
			return storage.Contract{}, fmt.Errorf("contract %s item %s: %w", c.ID, it.Code, err)
		}
		res.Items = append(res.Items, storage.ContractItem{
			Code:          it.Code,
			Area:          it.Area,
			VerifiedItems: it.VerifiedItems,
			Outcome:       outcome,
			Protocol:      it.Protocol,
		})
	}

	if c.Signature != nil {
		img, err := base64.StdEncoding.DecodeString(c.Signature.ImageBase64)
		if err != nil {
			return storage.Contract{}, fmt.Errorf("contract %s signature: %w", c.ID, err)
		}
		res.Signature = &storage.Signature{
			SignedAt:   c.Signature.SignedAt,
			SignerName: c.Signature.SignerName,
			SignerCPF:  c.Signature.SignerCPF,
			Image:      img,
			Captured:   c.Signature.Captured,
		}
	}

	// An explicit empty list differs from an absent one.
	if c.PendingItems != nil {
		res.PendingItems = make([]storage.PendingItem, 0, len(c.PendingItems))
		for _, p := range c.PendingItems {
			res.PendingItems = append(res.PendingItems, storage.PendingItem(p))
		}
	}

	if c.Payment != nil {
		res.Payment = &storage.Payment{
			FirstInstallment:  c.Payment.FirstInstallment,
			SecondInstallment: c.Payment.SecondInstallment,
			Total:             c.Payment.Total,
		}
	}

	return res, nil
}
