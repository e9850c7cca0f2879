package billing

import (
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"unirenta/internal/entity"
)

// LineItem - one service charge inside a breakdown
type LineItem struct {
	// ID - catalog id of the service
	ID int64 `json:"id"`
	// Name - service display name
	Name string `json:"name"`
	// Price - amount this service adds per month; zero for base services
	Price decimal.Decimal `json:"price"`
	// IsBase - bundled utility already covered by the base rent
	IsBase bool `json:"is_base"`
}

// Breakdown - full price decomposition for one assignment
type Breakdown struct {
	AssignmentID int64           `json:"assignment_id"`
	UnitID       int64           `json:"unit_id"`
	UnitName     string          `json:"unit_name"`
	Base         decimal.Decimal `json:"base"`
	LineItems    []LineItem      `json:"line_items"`
	Total        decimal.Decimal `json:"total"`
}

// Entry pairs a catalog service with the link it is billed through. Link may
// be nil when composing a hypothetical charge with no subscription yet.
type Entry struct {
	Service *entity.Service
	Link    *entity.ServiceLink
}

// Compose folds the base unit price and the supplied entries into a
// breakdown. Entries keep their given order. A base-flagged service is listed
// for transparency but priced at zero: its cost is already embedded in the
// base rent. Every other entry is priced from the link's snapshot when one
// was captured, falling back to the live catalog price.
func Compose(assignmentID int64, unit *entity.Unit, entries []Entry) Breakdown {
	items := lo.Map(entries, func(e Entry, _ int) LineItem {
		return LineItem{
			ID:     e.Service.ID,
			Name:   e.Service.Name,
			Price:  entryPrice(e),
			IsBase: e.Service.IsBase,
		}
	})

	total := lo.Reduce(items, func(acc decimal.Decimal, it LineItem, _ int) decimal.Decimal {
		return acc.Add(it.Price)
	}, unit.Price)

	return Breakdown{
		AssignmentID: assignmentID,
		UnitID:       unit.ID,
		UnitName:     unit.Name,
		Base:         unit.Price,
		LineItems:    items,
		Total:        total,
	}
}

func entryPrice(e Entry) decimal.Decimal {
	if e.Service.IsBase {
		return decimal.Zero
	}
	if e.Link != nil && e.Link.PriceSnapshot != nil {
		return *e.Link.PriceSnapshot
	}
	return e.Service.Price
}

// ParseAmount converts loosely-typed price text (unit JSONB descriptions,
// legacy rows) into a decimal, coercing anything non-numeric to zero. The
// upstream data was written by a permissive parser; rejecting it now would
// break existing units, so the coercion is kept on purpose.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// PreinvoiceService - one line of the pre-invoice notification contract
type PreinvoiceService struct {
	Name  string          `json:"nombre"`
	Price decimal.Decimal `json:"precio"`
}

// Preinvoice - the exact shape consumed by the notification sender. Field
// names are part of the wire contract with the mail templates and must not
// change.
type Preinvoice struct {
	UnitName string              `json:"nombre_unidad"`
	Base     decimal.Decimal     `json:"precio_base"`
	Services []PreinvoiceService `json:"servicios"`
	Total    decimal.Decimal     `json:"precio_total"`
	CutDate  time.Time           `json:"fecha_corte"`
}

// Preinvoice projects the breakdown onto the notification contract, dated at
// the given cycle cut.
func (b Breakdown) Preinvoice(cut time.Time) Preinvoice {
	return Preinvoice{
		UnitName: b.UnitName,
		Base:     b.Base,
		Services: lo.Map(b.LineItems, func(it LineItem, _ int) PreinvoiceService {
			return PreinvoiceService{Name: it.Name, Price: it.Price}
		}),
		Total:   b.Total,
		CutDate: cut,
	}
}
