package recon

import "Gin_boardgame_lending_tool/models"

// Kind is the closed set of user-facing results. Every engine entry point
// returns one of these; nothing escapes as a raw error.
type Kind string

const (
	// success terminals
	KindReturned Kind = "returned"
	KindBorrowed Kind = "borrowed"

	// informational, not a fault: the game is simply on the shelf
	KindNotCurrentlyBorrowed Kind = "not_currently_borrowed"

	// local failures, no network call involved
	KindItemNotFound     Kind = "item_not_found"
	KindInvalidIDFormat  Kind = "invalid_id_format"
	KindIdentityMismatch Kind = "identity_mismatch"
	KindEmptyCart        Kind = "empty_cart"

	// remote failures
	KindConnectionError Kind = "connection_error"
	KindReturnRejected  Kind = "return_rejected"
	KindBorrowBlocked   Kind = "borrow_blocked"
)

type Outcome struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`

	// the raw token, echoed back on item_not_found for manual lookup
	Token string `json:"token,omitempty"`

	GameName  string `json:"gameName,omitempty"`
	StudentID string `json:"studentId,omitempty"`

	// Every active loan that matched the scanned game by name. More than
	// one entry means the automatic pathway could not disambiguate and
	// picked the first; staff should audit.
	Candidates []models.LoanRecord `json:"candidates,omitempty"`
}

func (o Outcome) OK() bool {
	return o.Kind == KindReturned || o.Kind == KindBorrowed
}

// Informational marks outcomes the operator UI must not style as faults.
func (o Outcome) Informational() bool { return o.Kind == KindNotCurrentlyBorrowed }
