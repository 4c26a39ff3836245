package reconcile

// Outcome reports what a reconciliation actually did. The historical behavior
// of missing-reference cases is a silent no-op; the outcome makes that
// observable so callers can log it and tests can assert it.
type Outcome int

const (
	// Applied means the record and any derived stock change were both committed.
	Applied Outcome = iota
	// AppliedStockSkipped means the record was committed but the stock step was
	// skipped because the referenced product no longer exists.
	AppliedStockSkipped
	// NoopMissingProduct means the request was ignored outright because the
	// referenced product does not exist.
	NoopMissingProduct
	// NoopMissingRecord means the targeted order or shipment does not exist.
	NoopMissingRecord
)

// Mutated reports whether the outcome changed the snapshot at all.
func (o Outcome) Mutated() bool {
	return o == Applied || o == AppliedStockSkipped
}

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case AppliedStockSkipped:
		return "applied_stock_skipped"
	case NoopMissingProduct:
		return "noop_missing_product"
	case NoopMissingRecord:
		return "noop_missing_record"
	}
	return "unknown"
}
