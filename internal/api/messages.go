package api

// Member is a group member with its resolved display label.
type Member struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// User is the public view of an account.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	Password    string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries a session token for the Authorization header.
type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
	User      User   `json:"user"`
}

type MeRequest struct{}

type MeResponse struct {
	User User `json:"user"`
}

// Group lists members in join order.
type Group struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Members   []Member `json:"members"`
	CreatedBy string   `json:"createdBy"`
	CreatedAt int64    `json:"createdAt"`
}

type CreateGroupRequest struct {
	Name string `json:"name"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []Group `json:"groups"`
}

// AddMemberRequest invites a member. When Email is set the member is the
// registered user with that email; otherwise MemberID is used as given and
// Label is optional.
type AddMemberRequest struct {
	GroupID  string `json:"groupId"`
	Email    string `json:"email,omitempty"`
	MemberID string `json:"memberId,omitempty"`
	Label    string `json:"label,omitempty"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"groupId"`
}

type GroupResponse struct {
	Group Group `json:"group"`
}

// DeleteResponse is returned by deletions that have nothing to refresh.
type DeleteResponse struct{}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Plan struct {
	ID          string    `json:"id"`
	GroupID     string    `json:"groupId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    *Location `json:"location,omitempty"`
	CreatedAt   int64     `json:"createdAt"`
}

type CreatePlanRequest struct {
	GroupID     string `json:"groupId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type GetPlanRequest struct {
	PlanID string `json:"planId"`
}

type ListPlansRequest struct {
	GroupID string `json:"groupId"`
}

type ListPlansResponse struct {
	Plans []Plan `json:"plans"`
}

type SetPlanLocationRequest struct {
	PlanID string  `json:"planId"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
}

type DeletePlanRequest struct {
	PlanID string `json:"planId"`
}

type PlanResponse struct {
	Plan Plan `json:"plan"`
}

type Note struct {
	ID        string `json:"id"`
	PlanID    string `json:"planId"`
	Content   string `json:"content"`
	CreatedBy string `json:"createdBy"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt,omitempty"`
}

type AddNoteRequest struct {
	PlanID  string `json:"planId"`
	Content string `json:"content"`
}

type UpdateNoteRequest struct {
	NoteID  string `json:"noteId"`
	Content string `json:"content"`
}

type DeleteNoteRequest struct {
	NoteID string `json:"noteId"`
}

type ListNotesRequest struct {
	PlanID string `json:"planId"`
}

type ListNotesResponse struct {
	Notes []Note `json:"notes"`
}

type NoteResponse struct {
	Note Note `json:"note"`
}

// SplitInput selects how an expense is divided among the group members.
//
// Mode is "equal" (default) or "manual". For manual splits Shares maps a
// member ID to its raw value and Normalization is "normalize" (default),
// "strict" or "raw".
type SplitInput struct {
	Mode          string             `json:"mode,omitempty"`
	Shares        map[string]float64 `json:"shares,omitempty"`
	Normalization string             `json:"normalization,omitempty"`
}

// ShareLine is one member's portion of an expense, rounded for display.
type ShareLine struct {
	MemberID string  `json:"memberId"`
	Label    string  `json:"label"`
	Amount   float64 `json:"amount"`
	Percent  float64 `json:"percent"`
}

type PreviewSplitRequest struct {
	PlanID string     `json:"planId"`
	Amount float64    `json:"amount"`
	Payer  string     `json:"payer"`
	Split  SplitInput `json:"split"`
}

type PreviewSplitResponse struct {
	// Split holds the unrounded fractional shares.
	Split  map[string]float64 `json:"split"`
	Shares []ShareLine        `json:"shares"`
}

type AddExpenseRequest struct {
	PlanID string     `json:"planId"`
	Title  string     `json:"title"`
	Amount float64    `json:"amount"`
	Payer  string     `json:"payer"`
	Split  SplitInput `json:"split"`
}

type AddExpenseResponse struct {
	ExpenseID string     `json:"expenseId"`
	Ledger    PlanLedger `json:"ledger"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

type GetPlanLedgerRequest struct {
	PlanID string `json:"planId"`
}

type RecordSettlementRequest struct {
	PlanID     string  `json:"planId"`
	FromUserID string  `json:"fromUserId"`
	ToUserID   string  `json:"toUserId"`
	Amount     float64 `json:"amount"`
	Note       string  `json:"note,omitempty"`
}

type RecordSettlementResponse struct {
	SettlementID string     `json:"settlementId"`
	Ledger       PlanLedger `json:"ledger"`
}

type DeleteSettlementRequest struct {
	SettlementID string `json:"settlementId"`
}

// LedgerResponse returns the refreshed ledger after a read or a mutation.
type LedgerResponse struct {
	Ledger PlanLedger `json:"ledger"`
}

type ExpenseLine struct {
	ID         string             `json:"id"`
	Title      string             `json:"title"`
	Amount     float64            `json:"amount"`
	Payer      string             `json:"payer"`
	PayerLabel string             `json:"payerLabel"`
	Split      map[string]float64 `json:"split"`
	Shares     []ShareLine        `json:"shares"`
	CreatedBy  string             `json:"createdBy"`
	CreatedAt  int64              `json:"createdAt"`
}

type PayerTotal struct {
	MemberID  string  `json:"memberId"`
	Label     string  `json:"label"`
	TotalPaid float64 `json:"totalPaid"`
}

type Balance struct {
	MemberID   string  `json:"memberId"`
	Label      string  `json:"label"`
	NetBalance float64 `json:"netBalance"`
	TotalPaid  float64 `json:"totalPaid"`
	TotalOwed  float64 `json:"totalOwed"`
}

// Transfer is a suggested payment that settles outstanding balances.
type Transfer struct {
	From      string  `json:"from"`
	FromLabel string  `json:"fromLabel"`
	To        string  `json:"to"`
	ToLabel   string  `json:"toLabel"`
	Amount    float64 `json:"amount"`
}

type Settlement struct {
	ID         string  `json:"id"`
	FromUserID string  `json:"fromUserId"`
	ToUserID   string  `json:"toUserId"`
	Amount     float64 `json:"amount"`
	Note       string  `json:"note,omitempty"`
	CreatedBy  string  `json:"createdBy"`
	CreatedAt  int64   `json:"createdAt"`
}

// PlanLedger is everything the plan page shows about money.
type PlanLedger struct {
	PlanID      string        `json:"planId"`
	Members     []Member      `json:"members"`
	Expenses    []ExpenseLine `json:"expenses"`
	PayerTotals []PayerTotal  `json:"payerTotals"`
	Balances    []Balance     `json:"balances"`
	Transfers   []Transfer    `json:"transfers"`
	Settlements []Settlement  `json:"settlements"`
	Total       float64       `json:"total"`
}
