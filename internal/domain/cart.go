package domain

// CartTotalCents sums the prices of the given line items. Prices are integer
// minor units, so repeated add/remove of the same item restores totals exactly.
func CartTotalCents(items []LineItem) int64 {
	var total int64
	for _, item := range items {
		total += item.PriceCents
	}
	return total
}

// Recalculate rewrites the derived total from the current item list.
func (c *Cart) Recalculate() {
	if c == nil {
		return
	}
	c.TotalCents = CartTotalCents(c.Items)
}

// AddItem appends the item and recomputes the total. Duplicates are
// permitted: adding the same item twice is how quantity is expressed.
func (c *Cart) AddItem(item LineItem) {
	if c == nil {
		return
	}
	c.Items = append(c.Items, item)
	c.Recalculate()
}

// RemoveItem filters out every entry matching the identity key and recomputes
// the total. Removing an absent name is a no-op.
func (c *Cart) RemoveItem(name string) bool {
	if c == nil {
		return false
	}
	kept := c.Items[:0]
	removed := false
	for _, item := range c.Items {
		if item.Name == name {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	c.Items = kept
	if removed {
		c.Recalculate()
	}
	return removed
}

// ActiveReceipt returns the receipt reference of the currently selected wallet
// variant, or nil when the card variant is active.
func (p PaymentDraft) ActiveReceipt() *ReceiptRef {
	switch p.Method {
	case PaymentMethodEasypaisa:
		return p.Easypaisa.Receipt
	case PaymentMethodJazzcash:
		return p.Jazzcash.Receipt
	default:
		return nil
	}
}
