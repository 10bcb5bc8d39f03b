package orders

import (
	"fmt"

	"github.com/jmkang/pepper-shop/pkg/models"
)

// ShippingFee is the flat fee in won, charged on top of the line-item
// total. It is stored on the order as its own column and never folded
// into TotalPrice.
const ShippingFee int64 = 3000

func TotalPrice(items []models.OrderItem) int64 {
	var total int64
	for _, item := range items {
		total += item.UnitPrice * int64(item.Quantity)
	}
	return total
}

// ConfirmationMessage is the SMS the customer receives after checkout.
func ConfirmationMessage(customerName, orderNumber string) string {
	return fmt.Sprintf("[명품 고춧가루] %s님, 주문이 완료되었습니다. 주문번호: %s. 계좌이체 확인 후 배송이 시작됩니다.",
		customerName, orderNumber)
}
