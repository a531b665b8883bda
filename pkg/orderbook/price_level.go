package orderbook

// priceLevel is the FIFO queue of orders resting at one exact price,
// kept as an intrusive doubly-linked list so that enqueue, front and
// unlink are all O(1).
//
// totalQty is maintained exactly: enqueue adds the order's remaining
// quantity, reduce subtracts fill quantity, unlink subtracts whatever
// remains on the order at that moment.
type priceLevel struct {
	price      int64
	head       *Order
	tail       *Order
	totalQty   int64
	orderCount int
}

func newPriceLevel(price int64) *priceLevel {
	return &priceLevel{price: price}
}

func (l *priceLevel) empty() bool {
	return l.head == nil
}

// front returns the oldest order at this price, the one with time priority.
func (l *priceLevel) front() *Order {
	return l.head
}

func (l *priceLevel) enqueue(o *Order) {
	o.level = l
	if l.tail == nil {
		l.head = o
		l.tail = o
	} else {
		o.prev = l.tail
		l.tail.next = o
		l.tail = o
	}
	l.totalQty += o.Qty
	l.orderCount++
}

// reduce records a partial fill against one member order.
func (l *priceLevel) reduce(qty int64) {
	l.totalQty -= qty
}

func (l *priceLevel) unlink(o *Order) {
	if o.prev != nil {
		o.prev.next = o.next
	} else {
		l.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		l.tail = o.prev
	}
	l.totalQty -= o.Qty
	l.orderCount--

	o.next = nil
	o.prev = nil
	o.level = nil
}
