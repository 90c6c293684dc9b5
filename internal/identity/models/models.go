package models

import "resident/pkg/platform/envelope"

// AIDStatusProcessed is the only AID status for which an individual id exists.
const AIDStatusProcessed = "PROCESSED"

// Identity holds the contact attributes the resident service reads from the
// identity repository.
type Identity struct {
	UIN   string
	Email string
	Phone string
	Name  string
}

// AIDStatusResponse is the AID status API's response envelope.
type AIDStatusResponse = envelope.ResponseWrapper[*AIDStatus]

type AIDStatus struct {
	IndividualID  string `json:"individualId"`
	AIDStatus     string `json:"aidStatus"`
	TransactionID string `json:"transactionId,omitempty"`
}

// IdentityResponse is the identity repository's response envelope.
type IdentityResponse = envelope.ResponseWrapper[*IdentityDocument]

type IdentityDocument struct {
	Identity IdentityAttributes `json:"identity"`
}

type LocalizedValue struct {
	Language string `json:"language"`
	Value    string `json:"value"`
}

type IdentityAttributes struct {
	UIN      string           `json:"UIN"`
	Email    string           `json:"email"`
	Phone    string           `json:"phone"`
	FullName []LocalizedValue `json:"fullName"`
}

// ToIdentity flattens the repository document, picking the name in lang
// and falling back to the first one present.
func (a IdentityAttributes) ToIdentity(lang string) *Identity {
	id := &Identity{UIN: a.UIN, Email: a.Email, Phone: a.Phone}
	for _, n := range a.FullName {
		if n.Language == lang {
			id.Name = n.Value
			return id
		}
	}
	if len(a.FullName) > 0 {
		id.Name = a.FullName[0].Value
	}
	return id
}

// TokenRequest asks the authentication service for a partner token.
type TokenRequest = envelope.MainRequest[TokenRequestBody]

type TokenRequestBody struct {
	IndividualID string `json:"individualId"`
}

type TokenResponse = envelope.ResponseWrapper[*TokenBody]

type TokenBody struct {
	Token string `json:"token"`
}
