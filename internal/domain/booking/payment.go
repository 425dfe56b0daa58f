package booking

// Payment line item labels.
const (
	LabelCabin     = "Cabin"
	LabelBreakfast = "Breakfast"
)

// LineItem is a single labeled amount in a payment bucket.
type LineItem struct {
	Label string `json:"label"`
	Price int64  `json:"price"`
}

// Bucket is an ordered set of line items keyed by label; a label appears at
// most once.
type Bucket []LineItem

// Total sums the bucket's amounts.
func (b Bucket) Total() int64 {
	var total int64
	for _, item := range b {
		total += item.Price
	}
	return total
}

// Visible reports whether the bucket should be shown; a bucket whose total is
// zero or negative is treated as empty for display.
func (b Bucket) Visible() bool {
	return b.Total() > 0
}

// PaymentBuckets partitions a booking's money into display categories:
// money received, money still owed, and money owed back to the guest.
type PaymentBuckets struct {
	Confirmed Bucket `json:"confirmed"`
	Pending   Bucket `json:"pending"`
	Refunded  Bucket `json:"refunded"`
}

// ViewSnapshot is a booking's persisted money state, used when displaying an
// existing booking as-is.
type ViewSnapshot struct {
	IsBreakfast     bool
	CabinPrice      int64
	CabinPaid       int64
	CabinRefund     int64
	BreakfastPrice  int64
	BreakfastPaid   int64
	BreakfastRefund int64
}

// EditSnapshot is a persisted money state plus freshly computed prices, used
// while a booking is being repriced in the edit form.
type EditSnapshot struct {
	ViewSnapshot
	IsNewBreakfast    bool
	NewCabinPrice     int64
	NewBreakfastPrice int64
}

// bucketBuilder keeps at most one line item per label, last write wins,
// emitted in insertion order.
type bucketBuilder struct {
	order []string
	items map[string]int64
}

func newBucketBuilder() *bucketBuilder {
	return &bucketBuilder{items: make(map[string]int64)}
}

func (b *bucketBuilder) add(label string, price int64) {
	if _, seen := b.items[label]; !seen {
		b.order = append(b.order, label)
	}
	b.items[label] = price
}

func (b *bucketBuilder) build() Bucket {
	if len(b.order) == 0 {
		return nil
	}
	bucket := make(Bucket, 0, len(b.order))
	for _, label := range b.order {
		bucket = append(bucket, LineItem{Label: label, Price: b.items[label]})
	}
	return bucket
}

// ReconcileView partitions a booking's persisted money state for display.
// Pending is what remains owed per component, confirmed is anything paid,
// refunded is anything already refunded. A breakfast amount paid on a booking
// that no longer includes breakfast counts as refunded. Idempotent and total
// over partially populated snapshots.
func ReconcileView(s ViewSnapshot) PaymentBuckets {
	confirmed := newBucketBuilder()
	pending := newBucketBuilder()
	refunded := newBucketBuilder()

	if s.CabinPrice > s.CabinPaid {
		pending.add(LabelCabin, s.CabinPrice-s.CabinPaid)
	}
	if s.IsBreakfast && s.BreakfastPrice > s.BreakfastPaid {
		pending.add(LabelBreakfast, s.BreakfastPrice-s.BreakfastPaid)
	}

	if s.CabinPaid > 0 {
		confirmed.add(LabelCabin, s.CabinPaid)
	}
	if s.BreakfastPaid > 0 {
		confirmed.add(LabelBreakfast, s.BreakfastPaid)
	}

	if s.CabinRefund > 0 {
		refunded.add(LabelCabin, s.CabinRefund)
	}
	if !s.IsBreakfast && s.BreakfastPaid > 0 {
		refunded.add(LabelBreakfast, s.BreakfastPaid)
	}
	if s.BreakfastRefund > 0 {
		refunded.add(LabelBreakfast, s.BreakfastRefund)
	}

	return PaymentBuckets{
		Confirmed: confirmed.build(),
		Pending:   pending.build(),
		Refunded:  refunded.build(),
	}
}

// ReconcileEdit partitions money while a booking is being repriced. Pending
// is the new price minus what was already paid, emitted only while positive;
// refunded is the overpayment whenever the new price undercuts what was paid,
// per component. Dropping a previously included breakfast refunds its full
// paid amount.
func ReconcileEdit(s EditSnapshot) PaymentBuckets {
	confirmed := newBucketBuilder()
	pending := newBucketBuilder()
	refunded := newBucketBuilder()

	if d := s.NewCabinPrice - s.CabinPaid; d > 0 {
		pending.add(LabelCabin, d)
	}
	if s.IsNewBreakfast {
		if d := s.NewBreakfastPrice - s.BreakfastPaid; d > 0 {
			pending.add(LabelBreakfast, d)
		}
	}

	if s.CabinPaid > 0 {
		confirmed.add(LabelCabin, s.CabinPaid)
	}
	if s.BreakfastPaid > 0 {
		confirmed.add(LabelBreakfast, s.BreakfastPaid)
	}

	if s.NewCabinPrice < s.CabinPaid {
		refunded.add(LabelCabin, s.CabinPaid-s.NewCabinPrice)
	}
	switch {
	case s.IsNewBreakfast && s.NewBreakfastPrice < s.BreakfastPaid:
		refunded.add(LabelBreakfast, s.BreakfastPaid-s.NewBreakfastPrice)
	case !s.IsNewBreakfast && s.IsBreakfast && s.BreakfastPaid > 0:
		refunded.add(LabelBreakfast, s.BreakfastPaid)
	}

	return PaymentBuckets{
		Confirmed: confirmed.build(),
		Pending:   pending.build(),
		Refunded:  refunded.build(),
	}
}
