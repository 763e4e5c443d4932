package model

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	domainErrors "github.com/polkiloo/ecocoleta/internal/domain/errors"
)

// StatusID identifies an entry of the status catalog.
type StatusID int16

const (
	StatusAwaitingAnalysis StatusID = iota + 1
	StatusScheduledInPerson
	StatusScheduledTransport
	StatusCancelled
	StatusCollectionCompleted
	StatusClientAbsent
	StatusInService
)

// StatusOrigin tells which actor may move an order into a status.
type StatusOrigin int

const (
	OriginInitial StatusOrigin = iota
	OriginAgent
	OriginDriver
)

// Status is immutable reference data describing one legal order status.
type Status struct {
	ID         StatusID
	Code       string
	Label      string
	Origin     StatusOrigin
	Terminal   bool
	Scheduling bool
	aliases    []string
}

var catalog = []Status{
	{ID: StatusAwaitingAnalysis, Code: "awaiting_analysis", Label: "Aguardando Análise", Origin: OriginInitial,
		aliases: []string{"Awaiting Analysis"}},
	{ID: StatusScheduledInPerson, Code: "scheduled_in_person", Label: "Agendamento Presencial", Origin: OriginAgent, Scheduling: true,
		aliases: []string{"Scheduled — In-Person Appointment"}},
	{ID: StatusScheduledTransport, Code: "scheduled_transport", Label: "Destino Transporte Coleta", Origin: OriginAgent, Scheduling: true,
		aliases: []string{"Scheduled — Transport Destination"}},
	{ID: StatusCancelled, Code: "cancelled", Label: "Ordem Cancelada", Origin: OriginAgent, Terminal: true,
		aliases: []string{"Order Cancelled"}},
	{ID: StatusCollectionCompleted, Code: "collection_completed", Label: "Coleta Concluída", Origin: OriginDriver, Terminal: true,
		aliases: []string{"Collection Completed"}},
	{ID: StatusClientAbsent, Code: "client_absent", Label: "Cliente Ausente", Origin: OriginDriver, Terminal: true,
		aliases: []string{"Client Absent"}},
	{ID: StatusInService, Code: "in_service", Label: "Em Atendimento", Origin: OriginAgent,
		aliases: []string{"Forwarded"}},
}

var byLabel = func() map[string]StatusID {
	index := make(map[string]StatusID, len(catalog)*3)
	for _, s := range catalog {
		index[foldLabel(s.Code)] = s.ID
		index[foldLabel(s.Label)] = s.ID
		for _, alias := range s.aliases {
			index[foldLabel(alias)] = s.ID
		}
	}
	return index
}()

// Statuses returns a copy of the catalog ordered by identifier.
func Statuses() []Status {
	out := make([]Status, len(catalog))
	copy(out, catalog)
	return out
}

// LookupStatus resolves a catalog entry by identifier.
func LookupStatus(id StatusID) (Status, bool) {
	if id < StatusAwaitingAnalysis || int(id) > len(catalog) {
		return Status{}, false
	}
	return catalog[id-1], true
}

// ResolveByLabel maps a label, alias or code onto its identifier. Matching
// ignores case, accents and punctuation so "Coleta Concluida" and
// "COLETA CONCLUÍDA" land on the same entry.
func ResolveByLabel(label string) (StatusID, error) {
	if id, ok := byLabel[foldLabel(label)]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("%w: %q", domainErrors.ErrUnknownStatus, label)
}

// Valid reports whether the identifier belongs to the catalog.
func (s StatusID) Valid() bool {
	_, ok := LookupStatus(s)
	return ok
}

// IsTerminal reports whether no workflow transition may leave the status.
func (s StatusID) IsTerminal() bool {
	st, ok := LookupStatus(s)
	return ok && st.Terminal
}

// RequiresScheduling is true only for the two scheduled statuses.
func (s StatusID) RequiresScheduling() bool {
	st, ok := LookupStatus(s)
	return ok && st.Scheduling
}

// RequiresCancellationStamp is true only for the cancelled status.
func (s StatusID) RequiresCancellationStamp() bool {
	return s == StatusCancelled
}

// Code returns the machine readable code or an empty string for unknown ids.
func (s StatusID) Code() string {
	st, _ := LookupStatus(s)
	return st.Code
}

func (s StatusID) String() string {
	if st, ok := LookupStatus(s); ok {
		return st.Label
	}
	return fmt.Sprintf("StatusID(%d)", int16(s))
}

func foldLabel(s string) string {
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(stripAccents, s); err == nil {
		s = folded
	}
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(mapped), " ")
}
