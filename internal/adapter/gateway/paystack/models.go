package paystack

// Response is the envelope Paystack wraps every payload in.
type Response[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type initializeRequest struct {
	Email    string   `json:"email"`
	Amount   int64    `json:"amount"`
	Metadata metadata `json:"metadata"`
}

type metadata struct {
	FullName string `json:"full_name"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type verifyData struct {
	Reference string   `json:"reference"`
	Amount    int64    `json:"amount"`
	Status    string   `json:"status"`
	Customer  customer `json:"customer"`
	Metadata  metadata `json:"metadata"`
}

type customer struct {
	Email string `json:"email"`
}
