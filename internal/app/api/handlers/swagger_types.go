package handlers

// SwaggerCustomer documents the provider customer body relayed by the
// customer endpoints. Fields not listed are passed through unchanged.
type SwaggerCustomer struct {
	ID      string `json:"id" example:"cus_123"`
	Name    string `json:"name" example:"Jane Doe"`
	Contact struct {
		Phone string `json:"phone" example:"+12125551234"`
	} `json:"contact"`
}

// SwaggerPayment documents the provider payment body relayed by POST /api/payments.
type SwaggerPayment struct {
	ID     string `json:"id" example:"pay_123"`
	Status string `json:"status" example:"Pending"`
}
