package domain

type OrderItem struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// Order is the payload posted to the backend's order-creation endpoint.
// Exactly one of CashAmount or EWallet/ReferenceNumber is set, depending on
// the payment method.
type Order struct {
	UserID          string      `json:"userId"`
	OrderItems      []OrderItem `json:"orderItems"`
	PaymentMethod   string      `json:"paymentMethod"`
	EWallet         *string     `json:"eWallet"`
	ReferenceNumber *string     `json:"referenceNumber"`
	CashAmount      *float64    `json:"cashAmount"`
	ItemsPrice      float64     `json:"itemsPrice"`
	TaxPrice        float64     `json:"taxPrice"`
	TotalPrice      float64     `json:"totalPrice"`
}
