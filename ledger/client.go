// Package ledger is the sole integration point with the external loan
// ledger (a Google-Apps-Script-style web endpoint in front of a sheet).
// It does request/response mapping and error translation only: no retries,
// no local state.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"Gin_boardgame_lending_tool/models"
)

// Status tags the ledger responds with. success is not the only
// non-exceptional case.
const (
	StatusSuccess   = "success"
	StatusError     = "error"
	StatusNotFound  = "not_found"
	StatusBlocked   = "blocked"
	StatusBorrowed  = "borrowed"
	StatusAvailable = "available"
)

type ErrorKind int

const (
	// Transport: no response, non-2xx, or a body we could not parse.
	Transport ErrorKind = iota
	// Rejected: a well-formed negative answer from the ledger.
	Rejected
)

type Error struct {
	Kind    ErrorKind
	Status  string
	Message string
}

func (e *Error) Error() string {
	if e.Kind == Transport {
		return "ledger transport: " + e.Message
	}
	return fmt.Sprintf("ledger rejected (%s): %s", e.Status, e.Message)
}

func IsTransport(err error) bool {
	le, ok := err.(*Error)
	return ok && le.Kind == Transport
}

func IsRejected(err error) bool {
	le, ok := err.(*Error)
	return ok && le.Kind == Rejected
}

// IsBlocked reports the borrow-conflict rejection specifically.
func IsBlocked(err error) bool {
	le, ok := err.(*Error)
	return ok && le.Kind == Rejected && le.Status == StatusBlocked
}

type apiResponse struct {
	Status    string              `json:"status"`
	Message   string              `json:"message,omitempty"`
	Items     []models.LoanRecord `json:"items,omitempty"`
	BoardGame string              `json:"boardGame,omitempty"`
	Borrowers []models.LoanRecord `json:"borrowers,omitempty"`
}

type borrowPayload struct {
	Action      string `json:"action"`
	StudentID   string `json:"Student_ID"`
	Classroom   string `json:"Classroom"`
	PlayerCount string `json:"Player_Count"`
	Major       string `json:"Major"`
	BoardGame   string `json:"Board_Game"`
}

type returnPayload struct {
	Action    string `json:"action"`
	StudentID string `json:"Student_ID"`
	BoardGame string `json:"Board_Game"`
}

type Client struct {
	base string
	http *http.Client
	log  *zap.Logger
}

func NewClient(base string, log *zap.Logger) *Client {
	return &Client{
		base: base,
		http: &http.Client{Timeout: 15 * time.Second},
		log:  log,
	}
}

// FetchActiveLoans returns every loan the ledger still considers open.
func (c *Client) FetchActiveLoans(ctx context.Context) ([]models.LoanRecord, error) {
	res, err := c.get(ctx, url.Values{"action": {"get_borrowed"}})
	if err != nil {
		return nil, err
	}
	if res.Status != StatusSuccess {
		return nil, &Error{Kind: Rejected, Status: res.Status, Message: res.Message}
	}
	return res.Items, nil
}

// FetchAllTransactions returns the full history, newest first (the ledger's
// own ordering; we do not re-sort).
func (c *Client) FetchAllTransactions(ctx context.Context) ([]models.LoanRecord, error) {
	res, err := c.get(ctx, url.Values{"action": {"get_all_transactions"}})
	if err != nil {
		return nil, err
	}
	if res.Status != StatusSuccess {
		return nil, &Error{Kind: Rejected, Status: res.Status, Message: res.Message}
	}
	return res.Items, nil
}

// GameStatus is the answer to a single-game availability check.
type GameStatus struct {
	GameName  string              `json:"gameName"`
	Status    string              `json:"status"`
	Borrowers []models.LoanRecord `json:"borrowers,omitempty"`
}

// CheckGame asks the ledger whether one game is currently out.
func (c *Client) CheckGame(ctx context.Context, gameName string) (GameStatus, error) {
	res, err := c.get(ctx, url.Values{"action": {"check"}, "Board_Game": {gameName}})
	if err != nil {
		return GameStatus{}, err
	}
	switch res.Status {
	case StatusBorrowed, StatusAvailable:
		return GameStatus{GameName: gameName, Status: res.Status, Borrowers: res.Borrowers}, nil
	default:
		return GameStatus{}, &Error{Kind: Rejected, Status: res.Status, Message: res.Message}
	}
}

// SubmitBorrow issues one ledger write per game, in the order supplied.
// If any write comes back blocked the whole submission is reported failed,
// even though earlier writes already landed — the ledger has no rollback,
// and we do not pretend otherwise.
func (c *Client) SubmitBorrow(ctx context.Context, info models.BorrowerInfo) error {
	var (
		blocked  *apiResponse
		firstBad *apiResponse
	)
	for _, game := range info.Games {
		res, err := c.post(ctx, borrowPayload{
			Action:      "borrow",
			StudentID:   info.StudentID,
			Classroom:   info.Classroom,
			PlayerCount: info.PlayerCount,
			Major:       info.Major,
			BoardGame:   game,
		})
		if err != nil {
			return err
		}
		switch {
		case res.Status == StatusBlocked && blocked == nil:
			blocked = res
		case res.Status != StatusSuccess && firstBad == nil:
			firstBad = res
		}
		c.log.Info("borrow write",
			zap.String("game", game),
			zap.String("student", info.StudentID),
			zap.String("status", res.Status))
	}
	if blocked != nil {
		msg := blocked.Message
		if msg == "" {
			msg = "some games were borrowed by someone else first"
		}
		return &Error{Kind: Rejected, Status: StatusBlocked, Message: msg}
	}
	if firstBad != nil {
		return &Error{Kind: Rejected, Status: firstBad.Status, Message: firstBad.Message}
	}
	return nil
}

// SubmitReturn marks the (studentId, gameName) loan returned. A not_found
// answer means the ledger had no matching open loan; that is a rejection,
// not a transport failure.
func (c *Client) SubmitReturn(ctx context.Context, studentID, gameName string) error {
	res, err := c.post(ctx, returnPayload{
		Action:    "return",
		StudentID: studentID,
		BoardGame: gameName,
	})
	if err != nil {
		return err
	}
	if res.Status != StatusSuccess {
		return &Error{Kind: Rejected, Status: res.Status, Message: res.Message}
	}
	c.log.Info("return recorded",
		zap.String("game", gameName),
		zap.String("student", studentID))
	return nil
}

func (c *Client) get(ctx context.Context, q url.Values) (*apiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"?"+q.Encode(), nil)
	if err != nil {
		return nil, &Error{Kind: Transport, Message: err.Error()}
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, payload any) (*apiResponse, error) {
	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: Transport, Message: err.Error()}
	}
	// Apps Script only avoids a CORS preflight redirect with text/plain.
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*apiResponse, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("ledger unreachable", zap.Error(err))
		return nil, &Error{Kind: Transport, Message: err.Error()}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Kind: Transport, Message: fmt.Sprintf("http %d", resp.StatusCode)}
	}
	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		// malformed body is a transport problem as far as callers care
		return nil, &Error{Kind: Transport, Message: "unparseable response: " + err.Error()}
	}
	return &out, nil
}
