// models/loan.go
package models

// LoanRecord 由外部台账持有，这里只读
// The ledger joins on gameName only; there is no stable foreign key to BoardGame.
type LoanRecord struct {
	GameName  string `json:"gameName"`
	StudentID string `json:"studentId"`
	Classroom string `json:"classroom"`
	Major     string `json:"major"`

	PlayerCount string `json:"playerCount,omitempty"`
	Status      string `json:"status,omitempty"`
	Date        string `json:"date,omitempty"`

	BorrowTimestamp string `json:"borrowTimestamp,omitempty"`
	BorrowTime      string `json:"borrowTime,omitempty"`

	// nil while the loan is active, set exactly once on return
	ReturnTime *string `json:"returnTime"`
}

func (l LoanRecord) Active() bool { return l.ReturnTime == nil || *l.ReturnTime == "" }

// BorrowerInfo is what the borrow form submits, one ledger write per game.
type BorrowerInfo struct {
	StudentID   string   `json:"studentId" binding:"required"`
	Classroom   string   `json:"classroom" binding:"required"`
	PlayerCount string   `json:"playerCount" binding:"required"`
	Major       string   `json:"major" binding:"required"`
	Games       []string `json:"games"`
}
