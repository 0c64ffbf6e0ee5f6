// Package agenda lays contracts out on a monthly calendar by assembly start.
package agenda

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"renza-entrega/internal/storage"
)

const (
	StatusReserved = "reservada"
	StatusFilled   = "preenchida"
)

var monthNames = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

var Weekdays = [7]string{"SEG", "TER", "QUA", "QUI", "SEX", "SÁB", "DOM"}

type ContractLister interface {
	Contracts(ctx context.Context) ([]storage.Contract, error)
}

type Appointment struct {
	Day                 int              `json:"day"`
	ContractID          string           `json:"contract_id"`
	ClientName          string           `json:"nome_contrato"`
	Number              string           `json:"numero_contrato"`
	Technician          string           `json:"tecnico_responsavel"`
	DeliveryResponsible string           `json:"responsavel_entrega_montagem"`
	Phone               string           `json:"telefone"`
	City                string           `json:"cidade"`
	AssemblyStart       string           `json:"inicio_montagem"`
	AssemblyEnd         string           `json:"final_montagem"`
	Status              string           `json:"status"`
	Payment             *storage.Payment `json:"pagamento,omitempty"`
}

type Month struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Name  string `json:"name"`
	Days  int    `json:"days"`
	// FirstWeekday is the column of day 1 in a Monday-first week.
	FirstWeekday int                   `json:"first_weekday"`
	Weekdays     [7]string             `json:"weekdays"`
	Appointments map[int][]Appointment `json:"appointments"`
}

type Service struct {
	contracts ContractLister
}

func New(contracts ContractLister) *Service {
	return &Service{contracts: contracts}
}

// ParseStart reads "DD/MM/YYYY" optionally followed by " - <shift>".
func ParseStart(s string) (time.Time, bool) {
	datePart, _, _ := strings.Cut(strings.TrimSpace(s), " - ")
	parts := strings.Split(strings.TrimSpace(datePart), "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	day, errD := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	year, errY := strconv.Atoi(parts[2])
	if errD != nil || errM != nil || errY != nil {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}

	return t, true
}

func (s *Service) Month(ctx context.Context, year, month int) (Month, error) {
	const op = "service.agenda.Month"

	if month < 1 || month > 12 {
		return Month{}, fmt.Errorf("%s: invalid month %d", op, month)
	}

	contracts, err := s.contracts.Contracts(ctx)
	if err != nil {
		return Month{}, fmt.Errorf("%s: %w", op, err)
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

	out := Month{
		Year:         year,
		Month:        month,
		Name:         monthNames[month-1],
		Days:         first.AddDate(0, 1, -1).Day(),
		FirstWeekday: (int(first.Weekday()) + 6) % 7,
		Weekdays:     Weekdays,
		Appointments: make(map[int][]Appointment),
	}

	for _, c := range contracts {
		start, ok := ParseStart(c.AssemblyStart)
		if !ok || start.Year() != year || int(start.Month()) != month {
			continue
		}

		status := StatusReserved
		if c.Finalized() {
			status = StatusFilled
		}

		out.Appointments[start.Day()] = append(out.Appointments[start.Day()], Appointment{
			Day:                 start.Day(),
			ContractID:          c.ID,
			ClientName:          c.ClientName,
			Number:              c.Number,
			Technician:          c.Technician,
			DeliveryResponsible: c.DeliveryResponsible,
			Phone:               c.Phone,
			City:                c.Address.City,
			AssemblyStart:       c.AssemblyStart,
			AssemblyEnd:         c.AssemblyEnd,
			Status:              status,
			Payment:             c.Payment,
		})
	}

	return out, nil
}
