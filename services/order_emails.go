package services

import (
	"fmt"
	"strings"

	"github.com/lumiere-jewels/jewelry-api/models"
)

// customerConfirmationBody is the "we received your order" mail sent right
// after checkout.
func customerConfirmationBody(order models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Thank you for your order, %s!</h2>", order.ShippingName)
	fmt.Fprintf(&b, "<p>Your order reference is <strong>%s</strong>.</p>", order.OrderRef)
	b.WriteString(itemTable(order))
	fmt.Fprintf(&b, "<p>Shipping: %s</p>", order.ShippingFee.StringFixed(2))
	fmt.Fprintf(&b, "<p><strong>Total: %s</strong></p>", order.TotalAmount.StringFixed(2))
	b.WriteString("<p>We will be in touch once your order is confirmed.</p>")
	return b.String()
}

// operatorSummaryBody is the itemized summary mailed to the store operator
// when the customer submits the order.
func operatorSummaryBody(order models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>New order %s</h2>", order.OrderRef)
	fmt.Fprintf(&b, "<p>Customer: %s (%s, %s)</p>",
		order.ShippingName, order.ShippingPhone, order.ShippingEmail)
	fmt.Fprintf(&b, "<p>Address: %s</p>", order.ShippingAddress)
	if order.Note != "" {
		fmt.Fprintf(&b, "<p>Note: %s</p>", order.Note)
	}
	b.WriteString(itemTable(order))
	fmt.Fprintf(&b, "<p>Shipping: %s</p>", order.ShippingFee.StringFixed(2))
	fmt.Fprintf(&b, "<p><strong>Total: %s</strong></p>", order.TotalAmount.StringFixed(2))
	return b.String()
}

func itemTable(order models.Order) string {
	var b strings.Builder
	b.WriteString("<table border=\"1\" cellpadding=\"4\"><tr><th>Item</th><th>Qty</th><th>Price</th></tr>")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%d</td><td>%s</td></tr>",
			item.ProductName, item.Quantity, item.Price.StringFixed(2))
	}
	b.WriteString("</table>")
	return b.String()
}
