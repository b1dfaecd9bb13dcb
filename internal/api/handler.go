package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const (
	AuthServiceName    = "tripsplit.v1.AuthService"
	GroupServiceName   = "tripsplit.v1.GroupService"
	PlanServiceName    = "tripsplit.v1.PlanService"
	ExpenseServiceName = "tripsplit.v1.ExpenseService"
)

// Fully-qualified procedure names.
const (
	AuthServiceRegisterProcedure = "/" + AuthServiceName + "/Register"
	AuthServiceLoginProcedure    = "/" + AuthServiceName + "/Login"
	AuthServiceMeProcedure       = "/" + AuthServiceName + "/Me"

	GroupServiceCreateGroupProcedure = "/" + GroupServiceName + "/CreateGroup"
	GroupServiceGetGroupProcedure    = "/" + GroupServiceName + "/GetGroup"
	GroupServiceListGroupsProcedure  = "/" + GroupServiceName + "/ListGroups"
	GroupServiceAddMemberProcedure   = "/" + GroupServiceName + "/AddMember"
	GroupServiceDeleteGroupProcedure = "/" + GroupServiceName + "/DeleteGroup"

	PlanServiceCreatePlanProcedure      = "/" + PlanServiceName + "/CreatePlan"
	PlanServiceGetPlanProcedure         = "/" + PlanServiceName + "/GetPlan"
	PlanServiceListPlansProcedure       = "/" + PlanServiceName + "/ListPlans"
	PlanServiceSetPlanLocationProcedure = "/" + PlanServiceName + "/SetPlanLocation"
	PlanServiceDeletePlanProcedure      = "/" + PlanServiceName + "/DeletePlan"
	PlanServiceAddNoteProcedure         = "/" + PlanServiceName + "/AddNote"
	PlanServiceUpdateNoteProcedure      = "/" + PlanServiceName + "/UpdateNote"
	PlanServiceDeleteNoteProcedure      = "/" + PlanServiceName + "/DeleteNote"
	PlanServiceListNotesProcedure       = "/" + PlanServiceName + "/ListNotes"

	ExpenseServicePreviewSplitProcedure     = "/" + ExpenseServiceName + "/PreviewSplit"
	ExpenseServiceAddExpenseProcedure       = "/" + ExpenseServiceName + "/AddExpense"
	ExpenseServiceDeleteExpenseProcedure    = "/" + ExpenseServiceName + "/DeleteExpense"
	ExpenseServiceGetPlanLedgerProcedure    = "/" + ExpenseServiceName + "/GetPlanLedger"
	ExpenseServiceRecordSettlementProcedure = "/" + ExpenseServiceName + "/RecordSettlement"
	ExpenseServiceDeleteSettlementProcedure = "/" + ExpenseServiceName + "/DeleteSettlement"
)

type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[AuthResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[AuthResponse], error)
	Me(context.Context, *connect.Request[MeRequest]) (*connect.Response[MeResponse], error)
}

type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[GroupResponse], error)
	GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GroupResponse], error)
	ListGroups(context.Context, *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error)
	AddMember(context.Context, *connect.Request[AddMemberRequest]) (*connect.Response[GroupResponse], error)
	DeleteGroup(context.Context, *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteResponse], error)
}

type PlanServiceHandler interface {
	CreatePlan(context.Context, *connect.Request[CreatePlanRequest]) (*connect.Response[PlanResponse], error)
	GetPlan(context.Context, *connect.Request[GetPlanRequest]) (*connect.Response[PlanResponse], error)
	ListPlans(context.Context, *connect.Request[ListPlansRequest]) (*connect.Response[ListPlansResponse], error)
	SetPlanLocation(context.Context, *connect.Request[SetPlanLocationRequest]) (*connect.Response[PlanResponse], error)
	DeletePlan(context.Context, *connect.Request[DeletePlanRequest]) (*connect.Response[DeleteResponse], error)
	AddNote(context.Context, *connect.Request[AddNoteRequest]) (*connect.Response[NoteResponse], error)
	UpdateNote(context.Context, *connect.Request[UpdateNoteRequest]) (*connect.Response[NoteResponse], error)
	DeleteNote(context.Context, *connect.Request[DeleteNoteRequest]) (*connect.Response[DeleteResponse], error)
	ListNotes(context.Context, *connect.Request[ListNotesRequest]) (*connect.Response[ListNotesResponse], error)
}

type ExpenseServiceHandler interface {
	PreviewSplit(context.Context, *connect.Request[PreviewSplitRequest]) (*connect.Response[PreviewSplitResponse], error)
	AddExpense(context.Context, *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[LedgerResponse], error)
	GetPlanLedger(context.Context, *connect.Request[GetPlanLedgerRequest]) (*connect.Response[LedgerResponse], error)
	RecordSettlement(context.Context, *connect.Request[RecordSettlementRequest]) (*connect.Response[RecordSettlementResponse], error)
	DeleteSettlement(context.Context, *connect.Request[DeleteSettlementRequest]) (*connect.Response[LedgerResponse], error)
}

// serviceMux collects the unary handlers of one service.
type serviceMux struct {
	mux  *http.ServeMux
	opts []connect.HandlerOption
}

func newServiceMux(opts []connect.HandlerOption) *serviceMux {
	return &serviceMux{
		mux:  http.NewServeMux(),
		opts: append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...),
	}
}

func handle[Req, Res any](s *serviceMux, procedure string, fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error)) {
	s.mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, s.opts...))
}

// NewAuthServiceHandler returns the mount path and handler for svc.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	s := newServiceMux(opts)
	handle(s, AuthServiceRegisterProcedure, svc.Register)
	handle(s, AuthServiceLoginProcedure, svc.Login)
	handle(s, AuthServiceMeProcedure, svc.Me)
	return "/" + AuthServiceName + "/", s.mux
}

// NewGroupServiceHandler returns the mount path and handler for svc.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	s := newServiceMux(opts)
	handle(s, GroupServiceCreateGroupProcedure, svc.CreateGroup)
	handle(s, GroupServiceGetGroupProcedure, svc.GetGroup)
	handle(s, GroupServiceListGroupsProcedure, svc.ListGroups)
	handle(s, GroupServiceAddMemberProcedure, svc.AddMember)
	handle(s, GroupServiceDeleteGroupProcedure, svc.DeleteGroup)
	return "/" + GroupServiceName + "/", s.mux
}

// NewPlanServiceHandler returns the mount path and handler for svc.
func NewPlanServiceHandler(svc PlanServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	s := newServiceMux(opts)
	handle(s, PlanServiceCreatePlanProcedure, svc.CreatePlan)
	handle(s, PlanServiceGetPlanProcedure, svc.GetPlan)
	handle(s, PlanServiceListPlansProcedure, svc.ListPlans)
	handle(s, PlanServiceSetPlanLocationProcedure, svc.SetPlanLocation)
	handle(s, PlanServiceDeletePlanProcedure, svc.DeletePlan)
	handle(s, PlanServiceAddNoteProcedure, svc.AddNote)
	handle(s, PlanServiceUpdateNoteProcedure, svc.UpdateNote)
	handle(s, PlanServiceDeleteNoteProcedure, svc.DeleteNote)
	handle(s, PlanServiceListNotesProcedure, svc.ListNotes)
	return "/" + PlanServiceName + "/", s.mux
}

// NewExpenseServiceHandler returns the mount path and handler for svc.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	s := newServiceMux(opts)
	handle(s, ExpenseServicePreviewSplitProcedure, svc.PreviewSplit)
	handle(s, ExpenseServiceAddExpenseProcedure, svc.AddExpense)
	handle(s, ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense)
	handle(s, ExpenseServiceGetPlanLedgerProcedure, svc.GetPlanLedger)
	handle(s, ExpenseServiceRecordSettlementProcedure, svc.RecordSettlement)
	handle(s, ExpenseServiceDeleteSettlementProcedure, svc.DeleteSettlement)
	return "/" + ExpenseServiceName + "/", s.mux
}
